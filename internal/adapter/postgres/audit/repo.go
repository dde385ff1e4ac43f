// Package audit implements the audit message repository using PostgreSQL.
// It provides append-only operations: messages are created and listed,
// never updated or deleted.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Repo provides audit message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO audit_messages (id, document_id, author, kind, body, attachment_ids, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listByDocumentSQL = `
SELECT id, document_id, author, kind, body, attachment_ids, created_at
FROM audit_messages WHERE document_id = $1
ORDER BY created_at, id`

// Post appends an audit message to a document's log.
func (r *Repo) Post(ctx context.Context, msg domain.AuditMessage) (domain.AuditMessage, error) {
	if msg.Author == "" {
		msg.Author = domain.SystemAuthor
	}
	if err := msg.Validate(); err != nil {
		return domain.AuditMessage{}, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := q.Exec(ctx, insertSQL,
		msg.ID, msg.DocumentID, msg.Author, msg.Kind.String(),
		msg.Body, msg.AttachmentIDs, msg.CreatedAt,
	)
	if err != nil {
		return domain.AuditMessage{}, postgres.MapError(err, "audit_message", msg.ID)
	}

	return msg, nil
}

// ListByDocument returns the full audit log for a document, oldest first.
func (r *Repo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.AuditMessage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByDocumentSQL, docID)
	if err != nil {
		return nil, fmt.Errorf("list audit messages: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditMessage
	for rows.Next() {
		var (
			msg  domain.AuditMessage
			kind string
		)
		if err := rows.Scan(&msg.ID, &msg.DocumentID, &msg.Author, &kind,
			&msg.Body, &msg.AttachmentIDs, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit message: %w", err)
		}
		msg.Kind = domain.MessageKind(kind)
		out = append(out, msg)
	}
	return out, rows.Err()
}
