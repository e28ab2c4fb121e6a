// Package extract implements the extractor chain: an ordered,
// predicate-gated sequence of syntax-aware extractors that assemble an
// immutable ExtractionContext from a test file and its implementation
// file.
package extract

import (
	"sort"

	"jwright/internal/logging"
	"jwright/internal/model"
)

// Extractor is one named, ordered, predicate-gated contributor to the
// extraction context.
type Extractor interface {
	ID() string
	Order() int
	Supports(req *model.ExtractionRequest) bool
	Extract(req *model.ExtractionRequest, b *Builder) error
}

// Chain holds the registered extractors, built once at program start from
// configuration (no runtime scanning, no hidden classpath effects).
type Chain struct {
	extractors []Extractor
}

// NewChain sorts extractors by Order ascending; ties keep the order they
// were passed in (stable sort), matching the discovery-order tie-break.
func NewChain(extractors ...Extractor) *Chain {
	sorted := make([]Extractor, len(extractors))
	copy(sorted, extractors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order() < sorted[j].Order()
	})
	return &Chain{extractors: sorted}
}

// Build runs every extractor whose Supports predicate holds, in order, and
// returns the frozen context. An error from one extractor is logged and
// swallowed so it cannot deny context from the rest of the chain.
func (c *Chain) Build(req *model.ExtractionRequest) *model.ExtractionContext {
	b := NewBuilder()
	b.SetImplSourcePath(req.ImplSourcePath)

	for _, ex := range c.extractors {
		if !ex.Supports(req) {
			continue
		}
		if err := safeExtract(ex, req, b); err != nil {
			logging.ExtractWarn("extractor %q failed, continuing: %v", ex.ID(), err)
		}
	}
	return b.Freeze()
}

// safeExtract recovers a panicking extractor (e.g. a parse failure deep in
// tree-sitter node traversal) so it degrades to a logged-and-skipped
// extractor rather than aborting the whole chain.
func safeExtract(ex Extractor, req *model.ExtractionRequest, b *Builder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{ex.ID(), r}
		}
	}()
	return ex.Extract(req, b)
}

type panicError struct {
	id    string
	value interface{}
}

func (p panicError) Error() string {
	return p.id + " panicked: " + fmtPanic(p.value)
}

func fmtPanic(v interface{}) string {
	if e, ok := v.(error); ok {
		return e.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic"
}
