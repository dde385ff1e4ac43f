// Package attachment implements the Attachment repository using PostgreSQL.
package attachment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Repo provides attachment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attachment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const attachmentColumns = `id, filename, mime_type, raw, format_tag, priority,
       res_model, res_id, root_attachment_id, created_at`

const insertSQL = `
INSERT INTO attachments (id, filename, mime_type, raw, format_tag, priority,
                         res_model, res_id, root_attachment_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getByIDSQL = `
SELECT ` + attachmentColumns + `
FROM attachments WHERE id = $1`

const getByIDsSQL = `
SELECT ` + attachmentColumns + `
FROM attachments WHERE id = ANY($1::uuid[])`

const linkSQL = `
UPDATE attachments SET res_model = $2, res_id = $3 WHERE id = $1`

const classifySQL = `
UPDATE attachments SET format_tag = $2, priority = $3 WHERE id = $1`

const listByDocumentSQL = `
SELECT ` + attachmentColumns + `
FROM attachments WHERE res_model = $1 AND res_id = $2
ORDER BY created_at, id`

// Create inserts a new attachment and returns it with server-side fields set.
func (r *Repo) Create(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error) {
	if err := att.Validate(); err != nil {
		return nil, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	out := *att
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	_, err := q.Exec(ctx, insertSQL,
		out.ID, out.Filename, out.MimeType, out.Raw,
		nullTag(out.FormatTag), out.Priority,
		nullKind(out.ResModel), out.ResID, out.RootAttachmentID, out.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "attachment", out.ID)
	}

	return &out, nil
}

// GetByID returns an attachment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	att, err := scanAttachment(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "attachment", id)
	}
	return att, nil
}

// GetByIDs returns attachments for the given ids, in input order.
// Missing ids yield domain.ErrNotFound.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get attachments by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.Attachment, len(ids))
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		byID[att.ID] = att
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}

	out := make([]*domain.Attachment, 0, len(ids))
	for _, id := range ids {
		att, ok := byID[id]
		if !ok {
			return nil, postgres.MapError(pgx.ErrNoRows, "attachment", id)
		}
		out = append(out, att)
	}
	return out, nil
}

// Link points the attachment at the document it was applied to.
func (r *Repo) Link(ctx context.Context, id uuid.UUID, kind domain.DocumentKind, docID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, linkSQL, id, kind.String(), docID)
	if err != nil {
		return postgres.MapError(err, "attachment", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "attachment", id)
	}
	return nil
}

// SetClassification stores the classifier verdict on the attachment.
func (r *Repo) SetClassification(ctx context.Context, id uuid.UUID, tag domain.FormatTag, priority int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := q.Exec(ctx, classifySQL, id, nullTag(tag), priority)
	if err != nil {
		return postgres.MapError(err, "attachment", id)
	}
	if ct.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "attachment", id)
	}
	return nil
}

// ListByDocument returns all attachments linked to a document.
func (r *Repo) ListByDocument(ctx context.Context, kind domain.DocumentKind, docID uuid.UUID) ([]*domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByDocumentSQL, kind.String(), docID)
	if err != nil {
		return nil, fmt.Errorf("list attachments by document: %w", err)
	}
	defer rows.Close()

	var out []*domain.Attachment
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		out = append(out, att)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func scanAttachment(row pgx.Row) (*domain.Attachment, error) {
	var (
		att      domain.Attachment
		tag      *string
		resModel *string
	)
	err := row.Scan(
		&att.ID, &att.Filename, &att.MimeType, &att.Raw,
		&tag, &att.Priority,
		&resModel, &att.ResID, &att.RootAttachmentID, &att.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		att.FormatTag = domain.FormatTag(*tag)
	}
	if resModel != nil {
		att.ResModel = domain.DocumentKind(*resModel)
	}
	return &att, nil
}

func nullTag(t domain.FormatTag) *string {
	if t == "" {
		return nil
	}
	s := string(t)
	return &s
}

func nullKind(k domain.DocumentKind) *string {
	if k == "" {
		return nil
	}
	s := string(k)
	return &s
}
