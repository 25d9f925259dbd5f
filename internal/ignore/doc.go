// Package ignore loads gitignore-style exclusion rules for a scan root.
//
// Rules are read from one or more files at the root of the tree (by default
// .gitignore and .botignore) and combined into a single [RuleSet]. Pattern
// syntax is full gitignore wildmatch, including negation and directory-only
// patterns. Missing rule files are not an error; an empty or nil RuleSet
// matches nothing.
package ignore
