package report

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// DefaultDir is the directory under the scan root that holds reports.
const DefaultDir = "analysis"

// Store writes and reads analysis reports rooted at a filesystem. The report
// for a source file keeps the source path with ".md" appended, e.g.
// src/app.ts -> analysis/src/app.ts.md.
type Store struct {
	fsys billy.Filesystem
	dir  string
}

// NewStore creates a Store on fsys. dir is relative to the filesystem root;
// empty means DefaultDir.
func NewStore(fsys billy.Filesystem, dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{fsys: fsys, dir: dir}
}

// Path returns the report path for a source file path relative to the root.
func (s *Store) Path(rel string) string {
	return path.Join(s.dir, rel) + ".md"
}

// Exists reports whether a report for rel has already been written.
func (s *Store) Exists(rel string) bool {
	_, err := s.fsys.Stat(s.Path(rel))
	return err == nil
}

// Write persists text as the report for rel, creating parent directories as
// needed.
func (s *Store) Write(rel, text string) error {
	p := s.Path(rel)
	if err := s.fsys.MkdirAll(path.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := util.WriteFile(s.fsys, p, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", p, err)
	}
	return nil
}

// Read returns the stored report for rel.
func (s *Store) Read(rel string) (string, error) {
	data, err := util.ReadFile(s.fsys, s.Path(rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no report for %s", rel)
		}
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}
