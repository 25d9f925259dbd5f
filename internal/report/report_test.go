package report

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
)

func TestStore_Path(t *testing.T) {
	s := NewStore(memfs.New(), "")

	tests := []struct {
		rel  string
		want string
	}{
		{"src/app.ts", "analysis/src/app.ts.md"},
		{"main.ts", "analysis/main.ts.md"},
		{"a/b/c/d.tsx", "analysis/a/b/c/d.tsx.md"},
	}
	for _, tt := range tests {
		if got := s.Path(tt.rel); got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestStore_WriteRead(t *testing.T) {
	s := NewStore(memfs.New(), "")

	text := "## Major Issues\nNone.\n"
	if err := s.Write("src/deep/nested/app.ts", text); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := s.Read("src/deep/nested/app.ts")
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got != text {
		t.Errorf("Read = %q, want %q", got, text)
	}
}

func TestStore_Exists(t *testing.T) {
	s := NewStore(memfs.New(), "")

	if s.Exists("a.ts") {
		t.Error("Exists should be false before Write")
	}
	if err := s.Write("a.ts", "report"); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !s.Exists("a.ts") {
		t.Error("Exists should be true after Write")
	}
}

func TestStore_ReadMissing(t *testing.T) {
	s := NewStore(memfs.New(), "")

	_, err := s.Read("nope.ts")
	if err == nil || !strings.Contains(err.Error(), "no report") {
		t.Errorf("err = %v, want missing-report error", err)
	}
}

func TestStore_CustomDir(t *testing.T) {
	s := NewStore(memfs.New(), "reviews")
	if got := s.Path("x.ts"); got != "reviews/x.ts.md" {
		t.Errorf("Path = %q, want reviews/x.ts.md", got)
	}
}
