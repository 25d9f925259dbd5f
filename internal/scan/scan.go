package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/gridaco/bot/internal/ignore"
)

// List walks fsys from its root and returns slash-separated relative paths of
// regular files whose name ends with suffix, in lexicographic order. The
// .git directory and anything matched by rules are excluded; ignored
// directories are pruned without descending. An empty suffix matches every
// file.
func List(fsys billy.Filesystem, suffix string, rules *ignore.RuleSet) ([]string, error) {
	if _, err := fsys.Stat("."); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat scan root: %w", err)
	}

	var files []string

	err := util.Walk(fsys, ".", func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(filepath.Clean(path))
		if rel == "." {
			return nil
		}

		if info.IsDir() {
			if info.Name() == ".git" || rules.Ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if suffix != "" && !strings.HasSuffix(info.Name(), suffix) {
			return nil
		}
		if rules.Ignored(rel, false) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source tree: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
