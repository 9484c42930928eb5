// Package resolver flattens a specification document and its remote
// includes into a single ordered list of check items.
//
// Includes at each level are fetched concurrently, but the output order
// is deterministic: root items first, in declaration order, followed by
// each include's fully-resolved items in include-declaration order.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harrison/conform/internal/checker"
	"github.com/harrison/conform/internal/parser"
)

// ErrIncludeCycle indicates a document include chain that revisits a URL.
var ErrIncludeCycle = errors.New("resolver: include cycle detected")

// Fetcher retrieves the raw bytes of an included specification document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Resolver resolves documents using the given fetcher.
type Resolver struct {
	fetcher Fetcher
}

// New constructs a Resolver.
func New(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve flattens doc into a single item list with every include
// inlined. Any fetch or parse failure aborts resolution; no partial
// specification is returned.
func (r *Resolver) Resolve(ctx context.Context, doc *parser.Document) ([]checker.Node, error) {
	return r.resolve(ctx, doc, nil)
}

// resolve carries the chain of URLs already being resolved on this
// branch, so a self-referential include set fails instead of looping.
func (r *Resolver) resolve(ctx context.Context, doc *parser.Document, branch []string) ([]checker.Node, error) {
	if len(doc.Include) == 0 {
		return doc.Config, nil
	}

	for _, url := range doc.Include {
		for _, seen := range branch {
			if url == seen {
				return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, url)
			}
		}
	}

	// Fan out one fetch per include; indexed slots keep the merge order
	// independent of completion order.
	resolved := make([][]checker.Node, len(doc.Include))
	errs := make([]error, len(doc.Include))

	var wg sync.WaitGroup
	for i, url := range doc.Include {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			resolved[i], errs[i] = r.resolveInclude(ctx, url, branch)
		}(i, url)
	}
	wg.Wait()

	// All siblings are awaited before reporting, so the first failing
	// include in declaration order wins deterministically.
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("couldn't resolve include %s: %w", doc.Include[i], err)
		}
	}

	items := make([]checker.Node, 0, len(doc.Config))
	items = append(items, doc.Config...)
	for _, nodes := range resolved {
		items = append(items, nodes...)
	}
	return items, nil
}

func (r *Resolver) resolveInclude(ctx context.Context, url string, branch []string) ([]checker.Node, error) {
	data, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := parser.Parse(parser.DetectFormat(url), data)
	if err != nil {
		return nil, err
	}
	child := make([]string, 0, len(branch)+1)
	child = append(child, branch...)
	child = append(child, url)
	return r.resolve(ctx, doc, child)
}
