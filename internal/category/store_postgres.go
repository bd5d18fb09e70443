// Copyright (c) 2026 D42X. All rights reserved.

package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/database/schema"
	"github.com/d42x/d42x-api/internal/platform/dberr"
	"github.com/d42x/d42x-api/pkg/catlist"
)

// PostgresRepository implements [Repository] on top of pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed category repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	// The per-category count scans the meme table's delimited category
	// column. Acceptable because this query sits behind the read cache.
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s,
		       (SELECT COUNT(*) FROM %s m
		        WHERE m.%s LIKE '%%' || '%s' || c.%s || '%s' || '%%'
		          AND m.%s = 'published') AS meme_count
		FROM %s c
		WHERE c.%s IS NULL
		ORDER BY c.%s ASC
	`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Parent, schema.RefCategory.CreatedAt,
		schema.RefMeme.Table,
		schema.RefMeme.Categories, catlist.Delimiter, schema.RefCategory.Name, catlist.Delimiter,
		schema.RefMeme.Status,
		schema.RefCategory.Table,
		schema.RefCategory.Parent,
		schema.RefCategory.Name,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Parent, &c.CreatedAt, &c.MemeCount); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) AppendCategories(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING`,
		schema.RefCategory.Table, schema.RefCategory.ID, schema.RefCategory.Name,
		schema.RefCategory.Name)

	for _, name := range names {
		if _, err := repository.db.Exec(ctx, query, uuid.New(), name); err != nil {
			return dberr.Wrap(err, "append_category")
		}
	}
	return nil
}

func (repository *PostgresRepository) UpdateCategories(ctx context.Context, memeID uuid.UUID, names []string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefMeme.Table, schema.RefMeme.Categories, schema.RefMeme.ID)

	tag, err := repository.db.Exec(ctx, query, catlist.Encode(names), memeID)
	if err != nil {
		return dberr.Wrap(err, "update_meme_categories")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Meme")
	}
	return nil
}
