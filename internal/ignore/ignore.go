package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// RuleSet is a compiled set of gitwildmatch patterns. The zero value and the
// nil RuleSet ignore nothing.
type RuleSet struct {
	matcher  gitignore.Matcher
	patterns int
}

// Load reads the named ignore files from the root of fsys and compiles their
// patterns. Files that do not exist are skipped; an unreadable file is an
// error. Patterns from later files stack on top of earlier ones, as if they
// were one file.
func Load(fsys billy.Filesystem, names ...string) (*RuleSet, error) {
	var patterns []gitignore.Pattern
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("opening ignore file %s: %w", name, err)
		}

		s := bufio.NewScanner(f)
		for s.Scan() {
			line := strings.TrimSpace(s.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
		err = s.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading ignore file %s: %w", name, err)
		}
	}

	return &RuleSet{
		matcher:  gitignore.NewMatcher(patterns),
		patterns: len(patterns),
	}, nil
}

// Ignored reports whether the slash-separated path relative to the scan root
// matches any loaded pattern.
func (r *RuleSet) Ignored(rel string, isDir bool) bool {
	if r == nil || r.matcher == nil || r.patterns == 0 {
		return false
	}
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return false
	}
	return r.matcher.Match(strings.Split(rel, "/"), isDir)
}

// Len returns the number of compiled patterns.
func (r *RuleSet) Len() int {
	if r == nil {
		return 0
	}
	return r.patterns
}
