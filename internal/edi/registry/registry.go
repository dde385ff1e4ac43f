// Package registry maps (format tag, document kind) pairs to decoder
// and builder functions, and format tags to container splitters.
//
// Format bindings register themselves during process start; duplicate
// registration for the same key fails with domain.ErrRegistryConflict.
// After startup the registry is read-only, so concurrent lookups need
// no locking.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// FileData is the payload handed to a decoder: the attachment's bytes,
// its parsed tree when available, and an optional finaliser.
type FileData struct {
	Filename string
	Raw      []byte

	// Tree is the parsed XML tree, nil for non-XML files.
	Tree *etree.Document

	// OnClose, when set, is invoked exactly once after decoding,
	// whether the decoder succeeded or failed.
	OnClose func()
}

// DecodeResult carries non-fatal notes a decoder produced on the
// success path (unmatched partner, unresolvable tax code, ...).
// Recoverable extraction issues belong here, not in the error return.
type DecodeResult struct {
	Notes []string
}

// DecodeFunc applies file data to a draft document. It must be
// side-effect-free on failure: the record filler runs it inside a
// savepoint and rolls back on error.
type DecodeFunc func(ctx context.Context, doc *domain.Document, fd FileData) (*DecodeResult, error)

// BuildFunc serializes a document into the canonical outbound byte
// stream for its format, returning the suggested filename and bytes.
type BuildFunc func(ctx context.Context, doc *domain.Document) (filename string, data []byte, err error)

// SplitFunc splits a multi-document container tree into one serialized
// XML payload per enclosed document. A return of length <= 1 means the
// tree is not a container (or holds a single document) and no siblings
// are produced.
type SplitFunc func(tree *etree.Document) ([][]byte, error)

// Decoder is a registered decoder with its display name (used in audit
// messages).
type Decoder struct {
	Name string
	Fn   DecodeFunc
}

// Builder is a registered builder with its display name.
type Builder struct {
	Name string
	Tag  domain.FormatTag
	Fn   BuildFunc
}

type key struct {
	tag  domain.FormatTag
	kind domain.DocumentKind
}

// Registry holds the process-wide decoder, builder, and splitter
// bindings.
type Registry struct {
	decoders  map[key]Decoder
	builders  map[key]Builder
	splitters map[domain.FormatTag]SplitFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		decoders:  make(map[key]Decoder),
		builders:  make(map[key]Builder),
		splitters: make(map[domain.FormatTag]SplitFunc),
	}
}

// RegisterDecoder binds a decoder to (tag, kind).
func (r *Registry) RegisterDecoder(tag domain.FormatTag, kind domain.DocumentKind, d Decoder) error {
	k := key{tag: tag, kind: kind}
	if _, dup := r.decoders[k]; dup {
		return fmt.Errorf("decoder for (%s, %s): %w", tag, kind, domain.ErrRegistryConflict)
	}
	r.decoders[k] = d
	return nil
}

// RegisterBuilder binds a builder to (tag, kind).
func (r *Registry) RegisterBuilder(tag domain.FormatTag, kind domain.DocumentKind, b Builder) error {
	k := key{tag: tag, kind: kind}
	if _, dup := r.builders[k]; dup {
		return fmt.Errorf("builder for (%s, %s): %w", tag, kind, domain.ErrRegistryConflict)
	}
	b.Tag = tag
	r.builders[k] = b
	return nil
}

// RegisterSplitter binds a container splitter to a format tag.
func (r *Registry) RegisterSplitter(tag domain.FormatTag, fn SplitFunc) error {
	if _, dup := r.splitters[tag]; dup {
		return fmt.Errorf("splitter for %s: %w", tag, domain.ErrRegistryConflict)
	}
	r.splitters[tag] = fn
	return nil
}

// LookupDecoder returns the decoder for (tag, kind), if any.
func (r *Registry) LookupDecoder(tag domain.FormatTag, kind domain.DocumentKind) (Decoder, bool) {
	d, ok := r.decoders[key{tag: tag, kind: kind}]
	return d, ok
}

// LookupBuilder returns the builder for (tag, kind), if any.
func (r *Registry) LookupBuilder(tag domain.FormatTag, kind domain.DocumentKind) (Builder, bool) {
	b, ok := r.builders[key{tag: tag, kind: kind}]
	return b, ok
}

// LookupSplitter returns the splitter for a tag, if any.
func (r *Registry) LookupSplitter(tag domain.FormatTag) (SplitFunc, bool) {
	fn, ok := r.splitters[tag]
	return fn, ok
}

// BuildersFor returns every builder registered for the kind, in
// deterministic tag order.
func (r *Registry) BuildersFor(kind domain.DocumentKind) []Builder {
	var out []Builder
	for k, b := range r.builders {
		if k.kind == kind {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}
