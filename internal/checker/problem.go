package checker

import (
	"fmt"
	"regexp"

	"github.com/harrison/conform/internal/schema"
	"github.com/harrison/conform/internal/value"
)

// Problem is a reported, non-fatal conformance violation. The taxonomy is
// closed; every variant carries the offending path and implements error.
type Problem interface {
	error
	problem() // Sealed - only the types below implement it
}

// FileNotPresent reports a required file that does not exist as a regular
// file.
type FileNotPresent struct {
	Path string
}

func (FileNotPresent) problem() {}

func (p FileNotPresent) Error() string {
	return fmt.Sprintf("File %s does not exist", p.Path)
}

// DisallowedFile reports a forbidden file that exists.
type DisallowedFile struct {
	Path string
}

func (DisallowedFile) problem() {}

func (p DisallowedFile) Error() string {
	return fmt.Sprintf("File %s is not allowed to exist", p.Path)
}

// FolderNotPresent reports a required folder that does not exist as a
// directory.
type FolderNotPresent struct {
	Path string
}

func (FolderNotPresent) problem() {}

func (p FolderNotPresent) Error() string {
	return fmt.Sprintf("Folder %s does not exist", p.Path)
}

// DisallowedFolder reports a forbidden folder that exists.
type DisallowedFolder struct {
	Path string
}

func (DisallowedFolder) problem() {}

func (p DisallowedFolder) Error() string {
	return fmt.Sprintf("Folder %s is not allowed to exist", p.Path)
}

// IncorrectLength reports a file whose byte length differs from the
// expected length.
type IncorrectLength struct {
	Path     string
	Expected int64
	Actual   int64
}

func (IncorrectLength) problem() {}

func (p IncorrectLength) Error() string {
	return fmt.Sprintf("File %s has length %d, expected %d", p.Path, p.Actual, p.Expected)
}

// RegexNotMatched reports a file whose contents the pattern never matched.
type RegexNotMatched struct {
	Path    string
	Pattern *regexp.Regexp
}

func (RegexNotMatched) problem() {}

func (p RegexNotMatched) Error() string {
	return fmt.Sprintf("File %s does not match regex %s", p.Path, p.Pattern)
}

// InvalidFormat reports a file that could not be parsed in its declared
// format. The run continues; a malformed file is a finding, not a fault.
type InvalidFormat struct {
	Path   string
	Format value.Format
	Cause  error
}

func (InvalidFormat) problem() {}

func (p InvalidFormat) Error() string {
	return fmt.Sprintf("File %s couldn't be read as %s: %v", p.Path, p.Format, p.Cause)
}

func (p InvalidFormat) Unwrap() error {
	return p.Cause
}

// SchemaNotMatched reports a parsed file the schema validator rejected,
// carrying the clause that failed.
type SchemaNotMatched struct {
	Path  string
	Cause schema.Problem
}

func (SchemaNotMatched) problem() {}

func (p SchemaNotMatched) Error() string {
	return fmt.Sprintf("Schema not matched in %s:\n\t%s", p.Path, p.Cause.Error())
}

func (p SchemaNotMatched) Unwrap() error {
	return p.Cause
}
