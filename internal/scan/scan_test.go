package scan

import (
	"reflect"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/gridaco/bot/internal/ignore"
)

func writeFiles(t *testing.T, fsys billy.Filesystem, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := util.WriteFile(fsys, p, []byte("content"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
}

func TestList_SuffixFilter(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys,
		"src/index.ts",
		"src/util/helpers.ts",
		"src/styles.css",
		"README.md",
	)

	files, err := List(fsys, ".ts", nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	want := []string{"src/index.ts", "src/util/helpers.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("List = %v, want %v", files, want)
	}
}

func TestList_ExcludesGitDir(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys,
		".git/hooks/pre-commit.ts",
		".git/objects/ab/cdef.ts",
		"main.ts",
	)

	files, err := List(fsys, ".ts", nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	want := []string{"main.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("List = %v, want %v", files, want)
	}
}

func TestList_AppliesIgnoreRules(t *testing.T) {
	fsys := memfs.New()
	util.WriteFile(fsys, ".gitignore", []byte("node_modules/\n*.spec.ts\n"), 0o644)
	writeFiles(t, fsys,
		"node_modules/lib/index.ts",
		"src/app.ts",
		"src/app.spec.ts",
	)

	rules, err := ignore.Load(fsys, ".gitignore")
	if err != nil {
		t.Fatalf("ignore.Load error: %v", err)
	}

	files, err := List(fsys, ".ts", rules)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	want := []string{"src/app.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("List = %v, want %v", files, want)
	}
}

func TestList_EmptySuffixMatchesAll(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "a.go", "b/c.md")

	files, err := List(fsys, "", nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("List returned %d files, want 2", len(files))
	}
}

func TestList_SortedOutput(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, "z.ts", "a.ts", "m/b.ts")

	files, err := List(fsys, ".ts", nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	want := []string{"a.ts", "m/b.ts", "z.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("List = %v, want %v", files, want)
	}
}

func TestList_EmptyTree(t *testing.T) {
	fsys := memfs.New()

	files, err := List(fsys, ".ts", nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("List = %v, want empty", files)
	}
}
