package checker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/harrison/conform/internal/schema"
	"github.com/harrison/conform/internal/value"
)

// Check walks the expected tree against the filesystem rooted at root and
// returns every problem found, in declaration order. The returned error is
// non-nil only for I/O faults unrelated to existence (permission denied on
// metadata, a confirmed file that cannot be read); problems never abort
// the walk.
func Check(root string, nodes []Node) ([]Problem, error) {
	var problems []Problem
	for _, node := range nodes {
		switch n := node.(type) {
		case File:
			path := filepath.Join(root, n.Name)
			isFile, err := statIsFile(path)
			if err != nil {
				return nil, err
			}
			if !isFile {
				problems = append(problems, FileNotPresent{Path: path})
				continue
			}
			found, err := checkFile(path, n.Specs)
			if err != nil {
				return nil, err
			}
			problems = append(problems, found...)

		case FileAbsent:
			path := filepath.Join(root, n.Name)
			isFile, err := statIsFile(path)
			if err != nil {
				return nil, err
			}
			if isFile {
				problems = append(problems, DisallowedFile{Path: path})
			}

		case Folder:
			path := filepath.Join(root, n.Name)
			isDir, err := statIsDir(path)
			if err != nil {
				return nil, err
			}
			if !isDir {
				problems = append(problems, FolderNotPresent{Path: path})
				continue
			}
			found, err := Check(path, n.Children)
			if err != nil {
				return nil, err
			}
			problems = append(problems, found...)

		case FolderAbsent:
			path := filepath.Join(root, n.Name)
			isDir, err := statIsDir(path)
			if err != nil {
				return nil, err
			}
			if isDir {
				problems = append(problems, DisallowedFolder{Path: path})
			}

		default:
			return nil, fmt.Errorf("checker: unknown node type %T", node)
		}
	}
	return problems, nil
}

// checkFile evaluates every spec against an existing file. Specs are
// independent: a file can fail its length and its schema check in the
// same run, and both are reported.
func checkFile(path string, specs []FileSpec) ([]Problem, error) {
	var problems []Problem
	for _, spec := range specs {
		switch s := spec.(type) {
		case HasLength:
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("couldn't stat %s: %w", path, err)
			}
			if info.Size() != s.N {
				problems = append(problems, IncorrectLength{Path: path, Expected: s.N, Actual: info.Size()})
			}

		case MatchesRegex:
			content, err := os.ReadFile(path)
			if err != nil {
				// Existence was already confirmed; failing to read is a fault.
				return nil, fmt.Errorf("couldn't read %s: %w", path, err)
			}
			if !s.Pattern.Match(content) {
				problems = append(problems, RegexNotMatched{Path: path, Pattern: s.Pattern})
			}

		case MatchesSchema:
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("couldn't read %s: %w", path, err)
			}
			parsed, parseErr := value.Parse(s.Format, content)
			if parseErr != nil {
				problems = append(problems, InvalidFormat{Path: path, Format: s.Format, Cause: parseErr})
				continue
			}
			if p := schema.Validate(s.Validator, parsed); p != nil {
				problems = append(problems, SchemaNotMatched{Path: path, Cause: p})
			}

		default:
			return nil, fmt.Errorf("checker: unknown file spec type %T", spec)
		}
	}
	return problems, nil
}

// statIsFile reports whether path exists as a regular file. Non-existence
// is not an error; anything else from the stat call is.
func statIsFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if statMeansAbsent(err) {
			return false, nil
		}
		return false, fmt.Errorf("couldn't stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// statIsDir reports whether path exists as a directory.
func statIsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if statMeansAbsent(err) {
			return false, nil
		}
		return false, fmt.Errorf("couldn't stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// statMeansAbsent reports whether a stat failure amounts to "the path does
// not exist". ENOTDIR covers a path that traverses a regular file
// (src/lib.rs when src is a file); the target cannot exist there.
func statMeansAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
