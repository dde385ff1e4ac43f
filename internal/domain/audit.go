package domain

import (
	"time"

	"github.com/google/uuid"
)

// SystemAuthor is the privileged author used for pipeline-generated
// audit messages.
const SystemAuthor = "system"

// AuditMessage is an append-only note on a document. The pipeline posts
// one on every decode attempt: which format was imported, per-file
// errors, extraction warnings, and follow-up activities.
type AuditMessage struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Author     string
	Kind       MessageKind
	Body       string

	// AttachmentIDs references the files the message is about.
	AttachmentIDs []uuid.UUID

	CreatedAt time.Time
}

// Validate checks the audit message invariants.
func (m *AuditMessage) Validate() error {
	if m.DocumentID == uuid.Nil {
		return NewValidationError("document_id", "must not be empty")
	}
	if m.Body == "" {
		return NewValidationError("body", "must not be empty")
	}
	if !m.Kind.IsValid() {
		return NewValidationError("kind", "unknown message kind")
	}
	return nil
}
