// Package document implements the business-document repository using
// PostgreSQL. Simple CRUD uses raw SQL consts; the list query is built
// dynamically with squirrel.
package document

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

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const documentColumns = `id, kind, state, partner_name, partner_vat, currency,
       reference, issue_date, created_at, updated_at`

const insertSQL = `
INSERT INTO documents (id, kind, state, partner_name, partner_vat, currency,
                       reference, issue_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getByIDSQL = `
SELECT ` + documentColumns + `
FROM documents WHERE id = $1`

const updateSQL = `
UPDATE documents
SET partner_name = $2, partner_vat = $3, currency = $4,
    reference = $5, issue_date = $6, updated_at = $7
WHERE id = $1 AND state = 'DRAFT'`

const updateStateSQL = `
UPDATE documents SET state = $2, updated_at = $3
WHERE id = $1 AND state = $4`

const deleteLinesSQL = `
DELETE FROM document_lines WHERE document_id = $1`

const insertLineSQL = `
INSERT INTO document_lines (id, document_id, position, description, quantity, unit_price, tax_rate)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const getLinesSQL = `
SELECT id, document_id, position, description, quantity, unit_price, tax_rate
FROM document_lines WHERE document_id = $1
ORDER BY position`

// Create inserts a fresh draft document.
func (r *Repo) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if !doc.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown document kind")
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	out := *doc
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.State == "" {
		out.State = domain.DocumentStateDraft
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := q.Exec(ctx, insertSQL,
		out.ID, out.Kind.String(), out.State.String(),
		out.PartnerName, out.PartnerVAT, out.Currency,
		out.Reference, out.IssueDate, out.CreatedAt, out.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "document", out.ID)
	}

	return &out, nil
}

// GetByID returns a document with its lines.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	doc, err := scanDocument(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	lines, err := r.getLines(ctx, q, id)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines

	return doc, nil
}

// Save persists the decoder-written header fields and replaces the line
// set. Lines are deleted and re-inserted so that applying the same
// decoder twice yields the same rows instead of appending. Only draft
// documents are writable.
func (r *Repo) Save(ctx context.Context, doc *domain.Document) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC()
	tag, err := q.Exec(ctx, updateSQL,
		doc.ID, doc.PartnerName, doc.PartnerVAT, doc.Currency,
		doc.Reference, doc.IssueDate, now,
	)
	if err != nil {
		return postgres.MapError(err, "document", doc.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s is not draft: %w", doc.ID, domain.ErrConflict)
	}
	doc.UpdatedAt = now

	if _, err := q.Exec(ctx, deleteLinesSQL, doc.ID); err != nil {
		return postgres.MapError(err, "document", doc.ID)
	}

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.DocumentID = doc.ID
		line.Position = i + 1
		if _, err := q.Exec(ctx, insertLineSQL,
			line.ID, line.DocumentID, line.Position,
			line.Description, line.Quantity, line.UnitPrice, line.TaxRate,
		); err != nil {
			return postgres.MapError(err, "document_line", line.ID)
		}
	}

	return nil
}

// UpdateState transitions a document between lifecycle states. The
// expected state guards against concurrent transitions (linearized).
func (r *Repo) UpdateState(ctx context.Context, id uuid.UUID, from, to domain.DocumentState) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateStateSQL, id, to.String(), time.Now().UTC(), from.String())
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s not in state %s: %w", id, from, domain.ErrConflict)
	}
	return nil
}

func (r *Repo) getLines(ctx context.Context, q postgres.Querier, docID uuid.UUID) ([]domain.DocumentLine, error) {
	rows, err := q.Query(ctx, getLinesSQL, docID)
	if err != nil {
		return nil, fmt.Errorf("get document lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.DocumentLine
	for rows.Next() {
		var l domain.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.Position, &l.Description,
			&l.Quantity, &l.UnitPrice, &l.TaxRate); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		doc   domain.Document
		kind  string
		state string
	)
	err := row.Scan(
		&doc.ID, &kind, &state,
		&doc.PartnerName, &doc.PartnerVAT, &doc.Currency,
		&doc.Reference, &doc.IssueDate, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Kind = domain.DocumentKind(kind)
	doc.State = domain.DocumentState(state)
	return &doc, nil
}
