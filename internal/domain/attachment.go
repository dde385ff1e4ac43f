package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Attachment is a stored inbound or outbound file. Raw bytes are
// immutable once stored; everything derived from them (the parsed XML
// tree) is cached outside the entity and keyed by identity.
type Attachment struct {
	ID       uuid.UUID
	Filename string
	MimeType string
	Raw      []byte

	// Classification result. Zero FormatTag means unclassified (or
	// unrecognized after classification ran).
	FormatTag FormatTag
	Priority  int

	// Link to the document the attachment was applied to.
	ResModel DocumentKind
	ResID    *uuid.UUID

	// RootAttachmentID links a split sibling back to its container.
	// Nil for originals.
	RootAttachmentID *uuid.UUID

	CreatedAt time.Time
}

// Validate checks the attachment invariants.
func (a *Attachment) Validate() error {
	if a.Filename == "" {
		return NewValidationError("filename", "must not be empty")
	}
	if len(a.Raw) == 0 {
		return NewValidationError("raw", "must not be empty")
	}
	return nil
}

// IsSibling reports whether the attachment was produced by splitting a
// multi-document container.
func (a *Attachment) IsSibling() bool {
	return a.RootAttachmentID != nil
}

// IsLinked reports whether the attachment has been applied to a document.
func (a *Attachment) IsLinked() bool {
	return a.ResID != nil
}

// SiblingFilename synthesizes the filename for the k-th document of a
// split container: "stem_k.ext" (k >= 2). Signed containers keep their
// double extension, e.g. "IT01_abcd.xml.p7m" → "IT01_abcd_2.xml.p7m".
func SiblingFilename(filename string, k int) string {
	stem := filename
	ext := ""
	for {
		i := strings.LastIndex(stem, ".")
		if i < 0 {
			break
		}
		ext = stem[i:] + ext
		stem = stem[:i]
		if !strings.EqualFold(ext, ".p7m") {
			break
		}
	}
	return fmt.Sprintf("%s_%d%s", stem, k, ext)
}
