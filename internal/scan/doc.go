// Package scan enumerates review candidates under a source tree.
//
// [List] walks a billy filesystem from its root and returns the relative
// paths of regular files matching a name suffix, pruning the .git directory
// and anything excluded by an [ignore.RuleSet] without descending into it.
// Results are sorted so runs are deterministic.
package scan
