// Package xmltree turns attachment bytes into parsed XML trees on
// demand, at most once per attachment.
//
// Parsing is attempted in three stages: strict, permissive, and, when
// the bytes look like a PKCS#7 signature envelope (.xml.p7m), with the
// envelope stripped. Malformed content is never an error: the
// attachment simply has no tree, and tree-dependent classifiers skip it.
package xmltree

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log/slog"
	"sync"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.mozilla.org/pkcs7"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Loader parses and caches attachment XML trees.
type Loader struct {
	log *slog.Logger

	mu    sync.Mutex
	cache map[uuid.UUID]cacheEntry
}

type cacheEntry struct {
	sum  [32]byte
	tree *etree.Document
	ok   bool
}

// NewLoader creates a Loader with an empty cache.
func NewLoader(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		log:   log,
		cache: make(map[uuid.UUID]cacheEntry),
	}
}

// Load returns the parsed tree for the attachment, or false when the
// bytes are not XML under any of the fallback strategies. The result is
// cached by attachment identity; replacing the raw bytes invalidates
// the cached tree. Callers get a deep copy, so mutating the returned
// tree never reaches the cache or other callers.
func (l *Loader) Load(att *domain.Attachment) (*etree.Document, bool) {
	sum := sha256.Sum256(att.Raw)

	l.mu.Lock()
	if e, hit := l.cache[att.ID]; hit && e.sum == sum {
		l.mu.Unlock()
		return copyTree(e.tree), e.ok
	}
	l.mu.Unlock()

	tree, ok := Parse(att.Raw)
	if !ok {
		l.log.Debug("attachment is not XML", "attachment", att.ID, "filename", att.Filename)
	}

	l.mu.Lock()
	l.cache[att.ID] = cacheEntry{sum: sum, tree: tree, ok: ok}
	l.mu.Unlock()

	return copyTree(tree), ok
}

func copyTree(tree *etree.Document) *etree.Document {
	if tree == nil {
		return nil
	}
	return tree.Copy()
}

// Parse runs the strict → permissive → signature-stripped cascade on
// raw bytes without touching the cache.
func Parse(raw []byte) (*etree.Document, bool) {
	if doc, ok := read(raw, false); ok {
		return doc, true
	}
	if doc, ok := read(raw, true); ok {
		return doc, true
	}

	stripped, ok := StripSignature(raw)
	if !ok {
		return nil, false
	}
	if doc, ok := read(stripped, false); ok {
		return doc, true
	}
	return read(stripped, true)
}

func read(raw []byte, permissive bool) (*etree.Document, bool) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = permissive
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		// Unknown charsets are read as-is rather than rejected.
		return input, nil
	}
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, false
	}
	if doc.Root() == nil {
		return nil, false
	}
	return doc, true
}

// StripSignature extracts the signed content from a PKCS#7 envelope.
// DER and base64-encoded envelopes are both handled; when ASN.1 parsing
// fails, it falls back to slicing the payload between the first '<' and
// the last '>' byte.
func StripSignature(raw []byte) ([]byte, bool) {
	der := raw
	if decoded, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(raw))); err == nil && len(decoded) > 0 {
		der = decoded
	}

	if p7, err := pkcs7.Parse(der); err == nil && len(p7.Content) > 0 {
		return p7.Content, true
	}

	start := bytes.IndexByte(der, '<')
	end := bytes.LastIndexByte(der, '>')
	if start < 0 || end <= start {
		return nil, false
	}
	return der[start : end+1], true
}
