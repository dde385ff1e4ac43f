package document

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// normalize applies defaults and clamps pagination values.
func normalize(f *domain.DocumentFilter) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns documents matching the filter, newest first, plus the
// total count ignoring pagination.
func (r *Repo) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error) {
	normalize(&filter)

	q := postgres.QuerierFromCtx(ctx, r.pool)
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	where := sq.And{}
	if filter.Kind != nil {
		where = append(where, sq.Eq{"kind": filter.Kind.String()})
	}
	if filter.State != nil {
		where = append(where, sq.Eq{"state": filter.State.String()})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"partner_name": pattern},
			sq.ILike{"reference": pattern},
		})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("documents").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	listSQL, listArgs, err := psql.
		Select("id", "kind", "state", "partner_name", "partner_vat", "currency",
			"reference", "issue_date", "created_at", "updated_at").
		From("documents").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	return out, total, rows.Err()
}
