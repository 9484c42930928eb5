// Package parser decodes conform specification documents.
//
// A document is a mapping with a `config` sequence of check items and an
// optional `include` sequence of URLs. Check items are key-driven: the
// keys present on an item select its variant, mirroring how the document
// format reads:
//
//	config:
//	- file: Cargo.toml
//	  format: toml
//	  schema:
//	    package:
//	      edition: "2021"
//	- file: Cargo.lock
//	  exists: true
//	- file: src/lib.rs
//	  matches-regex: '(?m)^use'
//	- folder: src
//	  config:
//	  - file: main.rs
//	    exists: true
//	include:
//	- https://example.com/another-conform.yaml
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/harrison/conform/internal/checker"
	"github.com/harrison/conform/internal/schema"
	"github.com/harrison/conform/internal/value"
)

// ErrInvalidDocument indicates the document structure is not a valid
// conform specification.
var ErrInvalidDocument = errors.New("parser: invalid specification document")

// Document is a decoded specification: check items plus include URLs.
// Includes must be resolved before the items are checked.
type Document struct {
	Config  []checker.Node
	Include []string
}

// Format represents the encoding of a specification document.
type Format int

const (
	// FormatYAML is the default document encoding.
	FormatYAML Format = iota
	// FormatJSON is accepted for documents named *.json.
	FormatJSON
)

// DetectFormat picks the document encoding from a filename. Anything that
// is not *.json is treated as YAML.
func DetectFormat(filename string) Format {
	if strings.ToLower(filepath.Ext(filename)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a specification document.
func Parse(format Format, data []byte) (*Document, error) {
	var raw any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}
	return fromRaw(raw)
}

func fromRaw(raw any) (*Document, error) {
	if raw == nil {
		return &Document{}, nil
	}
	top, ok := asStringMap(raw)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidDocument)
	}
	for key := range top {
		if key != "config" && key != "include" {
			return nil, fmt.Errorf("%w: unknown top-level key %q", ErrInvalidDocument, key)
		}
	}

	doc := &Document{}
	if rawConfig, present := top["config"]; present && rawConfig != nil {
		items, ok := rawConfig.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: config must be a sequence", ErrInvalidDocument)
		}
		nodes, err := parseItems(items, "config")
		if err != nil {
			return nil, err
		}
		doc.Config = nodes
	}
	if rawInclude, present := top["include"]; present && rawInclude != nil {
		urls, ok := rawInclude.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: include must be a sequence", ErrInvalidDocument)
		}
		for i, rawURL := range urls {
			url, ok := rawURL.(string)
			if !ok || url == "" {
				return nil, fmt.Errorf("%w: include[%d] must be a non-empty string", ErrInvalidDocument, i)
			}
			doc.Include = append(doc.Include, url)
		}
	}
	return doc, nil
}

func parseItems(items []any, context string) ([]checker.Node, error) {
	nodes := make([]checker.Node, 0, len(items))
	for i, rawItem := range items {
		item, ok := asStringMap(rawItem)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a mapping", ErrInvalidDocument, context, i)
		}
		node, err := parseItem(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", context, i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// parseItem selects the item variant from the keys present.
func parseItem(item map[string]any) (checker.Node, error) {
	_, hasFile := item["file"]
	_, hasFolder := item["folder"]
	switch {
	case hasFile && hasFolder:
		return nil, fmt.Errorf("%w: item cannot name both a file and a folder", ErrInvalidDocument)
	case hasFolder:
		return parseFolderItem(item)
	case hasFile:
		return parseFileItem(item)
	default:
		return nil, fmt.Errorf("%w: item must name a file or a folder", ErrInvalidDocument)
	}
}

func parseFileItem(item map[string]any) (checker.Node, error) {
	name, ok := item["file"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: file must be a non-empty string", ErrInvalidDocument)
	}

	for key := range item {
		switch key {
		case "file", "exists", "format", "schema", "matches-regex", "length":
		default:
			return nil, fmt.Errorf("%w: unknown key %q on file item", ErrInvalidDocument, key)
		}
	}

	_, hasFormat := item["format"]
	_, hasSchema := item["schema"]
	_, hasRegex := item["matches-regex"]
	_, hasLength := item["length"]
	hasContent := hasFormat || hasSchema || hasRegex || hasLength

	if rawExists, present := item["exists"]; present {
		exists, ok := rawExists.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: exists must be a boolean", ErrInvalidDocument)
		}
		if hasContent {
			return nil, fmt.Errorf("%w: exists cannot be combined with content checks", ErrInvalidDocument)
		}
		if exists {
			return checker.File{Name: name}, nil
		}
		return checker.FileAbsent{Name: name}, nil
	}

	if !hasContent {
		return nil, fmt.Errorf("%w: file item needs exists or at least one content check", ErrInvalidDocument)
	}
	if hasFormat != hasSchema {
		return nil, fmt.Errorf("%w: format and schema must be given together", ErrInvalidDocument)
	}

	// Content keys combine freely; every spec on the item is checked
	// independently.
	var specs []checker.FileSpec
	if hasLength {
		n, err := asInt(item["length"])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: length must be a non-negative integer", ErrInvalidDocument)
		}
		specs = append(specs, checker.HasLength{N: n})
	}
	if hasRegex {
		raw, ok := item["matches-regex"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: matches-regex must be a string", ErrInvalidDocument)
		}
		pattern, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid regex %q: %v", ErrInvalidDocument, raw, err)
		}
		specs = append(specs, checker.MatchesRegex{Pattern: pattern})
	}
	if hasSchema {
		rawFormat, ok := item["format"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: format must be a string", ErrInvalidDocument)
		}
		format, err := value.ParseFormat(rawFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		example, err := value.FromAny(item["schema"])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid schema example: %v", ErrInvalidDocument, err)
		}
		specs = append(specs, checker.MatchesSchema{Format: format, Validator: schema.Infer(example)})
	}
	return checker.File{Name: name, Specs: specs}, nil
}

func parseFolderItem(item map[string]any) (checker.Node, error) {
	name, ok := item["folder"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: folder must be a non-empty string", ErrInvalidDocument)
	}

	for key := range item {
		switch key {
		case "folder", "exists", "config":
		default:
			return nil, fmt.Errorf("%w: unknown key %q on folder item", ErrInvalidDocument, key)
		}
	}

	exists := true
	if rawExists, present := item["exists"]; present {
		exists, ok = rawExists.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: exists must be a boolean", ErrInvalidDocument)
		}
	}

	rawChildren, hasChildren := item["config"]
	if !exists {
		if hasChildren {
			return nil, fmt.Errorf("%w: a forbidden folder cannot carry children", ErrInvalidDocument)
		}
		return checker.FolderAbsent{Name: name}, nil
	}

	var children []checker.Node
	if hasChildren && rawChildren != nil {
		items, ok := rawChildren.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: config must be a sequence", ErrInvalidDocument)
		}
		parsed, err := parseItems(items, "config")
		if err != nil {
			return nil, err
		}
		children = parsed
	}
	return checker.Folder{Name: name, Children: children}, nil
}

// asStringMap coerces the mapping shapes the YAML and JSON decoders
// produce into map[string]any.
func asStringMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func asInt(raw any) (int64, error) {
	switch n := raw.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	case float64:
		i := int64(n)
		if float64(i) != n {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return i, nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("not an integer: %T", raw)
	}
}
