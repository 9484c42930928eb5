// Package checker walks a declarative tree of file and folder
// expectations against the real filesystem, accumulating every problem it
// finds. A single mismatch never aborts the walk; only genuine I/O faults
// (permission errors, unreadable confirmed files) are fatal.
package checker

import (
	"regexp"

	"github.com/harrison/conform/internal/schema"
	"github.com/harrison/conform/internal/value"
)

// Node is a sealed interface over the expected-tree variants.
type Node interface {
	node() // Sealed - only File, FileAbsent, Folder, FolderAbsent implement it
}

// File requires a regular file to exist, optionally satisfying content
// specs. All specs are checked independently; none suppress the others.
type File struct {
	Name  string
	Specs []FileSpec
}

func (File) node() {}

// FileAbsent forbids a regular file from existing.
type FileAbsent struct {
	Name string
}

func (FileAbsent) node() {}

// Folder requires a directory to exist and recursively checks its
// children in declaration order.
type Folder struct {
	Name     string
	Children []Node
}

func (Folder) node() {}

// FolderAbsent forbids a directory from existing.
type FolderAbsent struct {
	Name string
}

func (FolderAbsent) node() {}

// FileSpec is a sealed interface over per-file content expectations.
type FileSpec interface {
	fileSpec()
}

// HasLength requires the file's byte length to equal N.
type HasLength struct {
	N int64
}

func (HasLength) fileSpec() {}

// MatchesRegex requires the pattern to match somewhere in the file text.
type MatchesRegex struct {
	Pattern *regexp.Regexp
}

func (MatchesRegex) fileSpec() {}

// MatchesSchema requires the file to parse in the given format and the
// parsed value to satisfy the validator.
type MatchesSchema struct {
	Format    value.Format
	Validator schema.Validator
}

func (MatchesSchema) fileSpec() {}
