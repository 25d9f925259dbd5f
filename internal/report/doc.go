// Package report persists model reviews as markdown files mirroring the
// source tree.
//
// A [Store] maps each source path to <dir>/<path>.md (default dir
// "analysis"), creating parent directories on write. [Store.Exists] is the
// only resume mechanism: a file whose report already exists is skipped unless
// the caller asks to overwrite.
package report
