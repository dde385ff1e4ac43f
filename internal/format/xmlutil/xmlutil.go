// Package xmlutil provides namespace-agnostic element lookups over
// etree trees. EDI documents arrive with arbitrary namespace prefixes,
// so bindings match elements by local name only.
package xmlutil

import (
	"strings"

	"github.com/beevik/etree"
)

// Child returns the first direct child with the given local name,
// ignoring the namespace prefix.
func Child(el *etree.Element, name string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

// Children returns all direct children with the given local name.
func Children(el *etree.Element, name string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// Find descends through the path of local names and returns the first
// match at each step, or nil if any step is missing.
func Find(el *etree.Element, path ...string) *etree.Element {
	for _, name := range path {
		el = Child(el, name)
		if el == nil {
			return nil
		}
	}
	return el
}

// Text returns the trimmed text at the path, or "" if missing.
func Text(el *etree.Element, path ...string) string {
	found := Find(el, path...)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}
