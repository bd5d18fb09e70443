// Copyright (c) 2026 D42X. All rights reserved.

package suggest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/database/schema"
	"github.com/d42x/d42x-api/internal/platform/dberr"
	"github.com/d42x/d42x-api/pkg/catlist"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// PostgresRepository implements [Repository] on top of pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed suggestion repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, suggestion *Suggestion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, 'pending')
	`,
		schema.RefSuggest.Table,
		schema.RefSuggest.ID, schema.RefSuggest.MemeID,
		schema.RefSuggest.BeforeCategories, schema.RefSuggest.AfterCategories,
		schema.RefSuggest.Status)

	_, err := repository.db.Exec(ctx, query,
		suggestion.ID, suggestion.MemeID,
		catlist.Encode(suggestion.Before), catlist.Encode(suggestion.After))
	if err != nil {
		return dberr.Wrap(err, "create_suggestion")
	}
	return nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Suggestion, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefSuggest.ID, schema.RefSuggest.MemeID,
		schema.RefSuggest.BeforeCategories, schema.RefSuggest.AfterCategories,
		schema.RefSuggest.ApplyUserID, schema.RefSuggest.Status, schema.RefSuggest.CreatedAt,
		schema.RefSuggest.Table, schema.RefSuggest.ID)

	suggestion, err := scanSuggestion(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_suggestion")
	}
	return suggestion, nil
}

func (repository *PostgresRepository) ListPaginated(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Suggestion], error) {
	var empty pagination.Page[*Suggestion]

	where := "TRUE"
	args := make([]any, 0, 3)
	if status != "" {
		args = append(args, status)
		where = fmt.Sprintf("%s = $%d", schema.RefSuggest.Status, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.RefSuggest.Table, where)
	var totalRows int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&totalRows); err != nil {
		return empty, dberr.Wrap(err, "count_suggestions")
	}

	args = append(args, params.Size, params.Offset())
	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d
	`,
		schema.RefSuggest.ID, schema.RefSuggest.MemeID,
		schema.RefSuggest.BeforeCategories, schema.RefSuggest.AfterCategories,
		schema.RefSuggest.ApplyUserID, schema.RefSuggest.Status, schema.RefSuggest.CreatedAt,
		schema.RefSuggest.Table, where, schema.RefSuggest.CreatedAt,
		len(args)-1, len(args))

	rows, err := repository.db.Query(ctx, listQuery, args...)
	if err != nil {
		return empty, dberr.Wrap(err, "list_suggestions")
	}
	defer rows.Close()

	suggestions := make([]*Suggestion, 0)
	for rows.Next() {
		suggestion, err := scanSuggestion(rows)
		if err != nil {
			return empty, dberr.Wrap(err, "scan_suggestion")
		}
		suggestions = append(suggestions, suggestion)
	}

	return pagination.NewPage(params.Page, params.Size, totalRows, suggestions), nil
}

func (repository *PostgresRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status, operator uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3 AND %s = 'pending'`,
		schema.RefSuggest.Table, schema.RefSuggest.Status, schema.RefSuggest.ApplyUserID,
		schema.RefSuggest.ID, schema.RefSuggest.Status)

	tag, err := repository.db.Exec(ctx, query, status, operator, id)
	if err != nil {
		return dberr.Wrap(err, "set_suggestion_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Pending suggestion")
	}
	return nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (*Suggestion, error) {
	s := &Suggestion{}
	var before, after string

	err := row.Scan(&s.ID, &s.MemeID, &before, &after, &s.ApplyUserID, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	s.Before = catlist.Decode(before)
	s.After = catlist.Decode(after)
	return s, nil
}
