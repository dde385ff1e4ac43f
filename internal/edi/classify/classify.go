// Package classify assigns a format tag to inbound attachments.
//
// Format bindings register named classifiers at startup. All registered
// classifiers are consulted for each attachment; the highest-priority
// match wins, ties broken by registration order. Classifiers are pure
// functions of the attachment's filename, MIME type, raw bytes, and
// (lazily) its parsed XML tree; they never mutate the attachment.
package classify

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Input is what a classifier may look at.
type Input struct {
	Filename string
	Mime     string
	Raw      []byte

	// Tree lazily loads the parsed XML tree. Returns false when the
	// bytes are not XML; classifiers that need the tree skip such files.
	Tree func() (*etree.Document, bool)
}

// Func inspects an attachment and returns (tag, true) on a match.
type Func func(in Input) (domain.FormatTag, bool)

// Result is a classification verdict.
type Result struct {
	Tag      domain.FormatTag
	Priority int
}

type entry struct {
	name     string
	priority int
	fn       Func
}

// Set is an ordered collection of classifiers. Register during startup,
// then only Classify; concurrent Classify calls are safe because the
// set is read-only after startup.
type Set struct {
	entries []entry
}

// NewSet creates an empty classifier set.
func NewSet() *Set {
	return &Set{}
}

// Register adds a classifier with the given name and priority.
// Priority must be non-negative; a negative priority is a programmer
// error and fails registration.
func (s *Set) Register(name string, priority int, fn Func) error {
	if priority < 0 {
		return fmt.Errorf("classifier %q: negative priority %d: %w", name, priority, domain.ErrValidation)
	}
	if fn == nil {
		return fmt.Errorf("classifier %q: nil func: %w", name, domain.ErrValidation)
	}
	s.entries = append(s.entries, entry{name: name, priority: priority, fn: fn})
	return nil
}

// MustRegister is Register that panics on programmer error. Intended
// for startup wiring.
func (s *Set) MustRegister(name string, priority int, fn Func) {
	if err := s.Register(name, priority, fn); err != nil {
		panic(err)
	}
}

// Classify consults every registered classifier and returns the match
// with the greatest priority, or false if nothing matched. Ties are
// broken by registration order (stable: the earliest registration wins).
func (s *Set) Classify(in Input) (Result, bool) {
	best := Result{Priority: -1}
	found := false

	for _, e := range s.entries {
		tag, ok := e.fn(in)
		if !ok {
			continue
		}
		if e.priority > best.Priority {
			best = Result{Tag: tag, Priority: e.priority}
			found = true
		}
	}

	return best, found
}
