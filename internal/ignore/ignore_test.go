package ignore

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestLoad_Match(t *testing.T) {
	fsys := memfs.New()
	util.WriteFile(fsys, ".gitignore", []byte("node_modules/\n*.log\n# comment\n\ndist\n"), 0o644)
	util.WriteFile(fsys, ".botignore", []byte("generated/**\n"), 0o644)

	rules, err := Load(fsys, ".gitignore", ".botignore")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if rules.Len() != 4 {
		t.Errorf("Len = %d, want 4 (comments and blanks skipped)", rules.Len())
	}

	tests := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"node_modules", true, true},
		{"src/node_modules", true, true},
		{"app.log", false, true},
		{"src/deep/app.log", false, true},
		{"dist", true, true},
		{"generated/api/client.ts", false, true},
		{"src/index.ts", false, false},
		{"README.md", false, false},
	}

	for _, tt := range tests {
		if got := rules.Ignored(tt.rel, tt.isDir); got != tt.want {
			t.Errorf("Ignored(%q, %v) = %v, want %v", tt.rel, tt.isDir, got, tt.want)
		}
	}
}

func TestLoad_MissingFilesAreNotErrors(t *testing.T) {
	fsys := memfs.New()

	rules, err := Load(fsys, ".gitignore", ".botignore")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if rules.Ignored("anything.ts", false) {
		t.Error("empty rule set should ignore nothing")
	}
}

func TestIgnored_NilRuleSet(t *testing.T) {
	var rules *RuleSet
	if rules.Ignored("a/b.ts", false) {
		t.Error("nil RuleSet should ignore nothing")
	}
	if rules.Len() != 0 {
		t.Error("nil RuleSet should have zero patterns")
	}
}

func TestIgnored_RootPath(t *testing.T) {
	fsys := memfs.New()
	util.WriteFile(fsys, ".gitignore", []byte("*\n"), 0o644)

	rules, err := Load(fsys, ".gitignore")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if rules.Ignored(".", true) {
		t.Error("the root itself is never ignored")
	}
	if rules.Ignored("", false) {
		t.Error("empty path is never ignored")
	}
}
