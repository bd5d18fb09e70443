// Copyright (c) 2026 D42X. All rights reserved.

package meme

import (
	"context"
	"fmt"
	"strings"

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

// NewPostgresRepository creates a Postgres-backed meme repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// memeColumns is the SELECT column list shared by every meme query.
func memeColumns(alias string) string {
	columns := []string{
		schema.RefMeme.ID, schema.RefMeme.Categories, schema.RefMeme.Nickname,
		schema.RefMeme.Message, schema.RefMeme.ShowAt, schema.RefMeme.Status,
		schema.RefMeme.Likes, schema.RefMeme.Unlikes, schema.RefMeme.CreatedAt,
	}
	for i, column := range columns {
		columns[i] = alias + "." + column
	}
	return strings.Join(columns, ", ")
}

func (repository *PostgresRepository) ListPublished(ctx context.Context, page int, category string) (pagination.Page[*Meme], error) {
	var empty pagination.Page[*Meme]

	where := fmt.Sprintf("m.%s = 'published' AND m.%s <= NOW()", schema.RefMeme.Status, schema.RefMeme.ShowAt)
	args := make([]any, 0, 3)
	if category != "" {
		args = append(args, catlist.Pattern(category))
		where += fmt.Sprintf(" AND m.%s LIKE $%d", schema.RefMeme.Categories, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s m WHERE %s`, schema.RefMeme.Table, where)
	var totalRows int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&totalRows); err != nil {
		return empty, dberr.Wrap(err, "count_published_memes")
	}

	params := pagination.Params{Page: page, Size: PublicPageSize}
	args = append(args, params.Size, params.Offset())
	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s m
		WHERE %s
		ORDER BY m.%s DESC
		LIMIT $%d OFFSET $%d
	`,
		memeColumns("m"), schema.RefMeme.Table, where, schema.RefMeme.ShowAt,
		len(args)-1, len(args))

	memes, err := repository.queryMemes(ctx, listQuery, args...)
	if err != nil {
		return empty, err
	}

	return pagination.NewPage(page, PublicPageSize, totalRows, memes), nil
}

func (repository *PostgresRepository) ListAll(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Meme], error) {
	var empty pagination.Page[*Meme]

	where := "TRUE"
	args := make([]any, 0, 3)
	if status != "" {
		args = append(args, status)
		where = fmt.Sprintf("m.%s = $%d", schema.RefMeme.Status, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s m WHERE %s`, schema.RefMeme.Table, where)
	var totalRows int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&totalRows); err != nil {
		return empty, dberr.Wrap(err, "count_all_memes")
	}

	args = append(args, params.Size, params.Offset())
	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s m
		WHERE %s
		ORDER BY m.%s DESC
		LIMIT $%d OFFSET $%d
	`,
		memeColumns("m"), schema.RefMeme.Table, where, schema.RefMeme.CreatedAt,
		len(args)-1, len(args))

	memes, err := repository.queryMemes(ctx, listQuery, args...)
	if err != nil {
		return empty, err
	}

	return pagination.NewPage(params.Page, params.Size, totalRows, memes), nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Meme, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s m WHERE m.%s = $1`,
		memeColumns("m"), schema.RefMeme.Table, schema.RefMeme.ID)

	memes, err := repository.queryMemes(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(memes) == 0 {
		return nil, apperr.NotFound("Meme")
	}
	return memes[0], nil
}

func (repository *PostgresRepository) Interactions(ctx context.Context, ids []uuid.UUID) ([]*Interaction, error) {
	if len(ids) == 0 {
		return []*Interaction{}, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.RefMeme.ID, schema.RefMeme.Likes, schema.RefMeme.Unlikes,
		schema.RefMeme.Table, schema.RefMeme.ID)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_interactions")
	}
	defer rows.Close()

	interactions := make([]*Interaction, 0, len(ids))
	for rows.Next() {
		i := &Interaction{}
		if err := rows.Scan(&i.ID, &i.Likes, &i.Unlikes); err != nil {
			return nil, dberr.Wrap(err, "scan_interaction")
		}
		interactions = append(interactions, i)
	}
	return interactions, nil
}

func (repository *PostgresRepository) PostMemes(ctx context.Context, posts []PostMeme) error {
	if len(posts) == 0 {
		return apperr.ValidationError("No memes to post")
	}

	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "post_memes_begin")
	}
	defer transaction.Rollback(ctx)

	memeQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, 'published')
	`,
		schema.RefMeme.Table,
		schema.RefMeme.ID, schema.RefMeme.Categories, schema.RefMeme.Nickname,
		schema.RefMeme.Message, schema.RefMeme.ShowAt, schema.RefMeme.Status)

	urlQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.RefMemeURL.Table,
		schema.RefMemeURL.ID, schema.RefMemeURL.MemeID, schema.RefMemeURL.URL,
		schema.RefMemeURL.Cover, schema.RefMemeURL.Format, schema.RefMemeURL.Sort)

	for _, post := range posts {
		memeID := uuid.New()
		_, err := transaction.Exec(ctx, memeQuery,
			memeID, catlist.Encode(post.Categories), post.Nickname, post.Message, post.ShowAt)
		if err != nil {
			return dberr.Wrap(err, "insert_meme")
		}

		for _, postURL := range post.URLs {
			_, err := transaction.Exec(ctx, urlQuery,
				uuid.New(), memeID, postURL.URL, postURL.Cover, postURL.Format, postURL.Sort)
			if err != nil {
				return dberr.Wrap(err, "insert_meme_url")
			}
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "post_memes_commit")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = 'deleted' WHERE %s = $1`,
		schema.RefMeme.Table, schema.RefMeme.Status, schema.RefMeme.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_meme")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Meme")
	}
	return nil
}

func (repository *PostgresRepository) IncreaseLike(ctx context.Context, id uuid.UUID) error {
	return repository.bumpCounter(ctx, schema.RefMeme.Likes, id)
}

func (repository *PostgresRepository) IncreaseUnlike(ctx context.Context, id uuid.UUID) error {
	return repository.bumpCounter(ctx, schema.RefMeme.Unlikes, id)
}

// bumpCounter atomically increments a vote column.
func (repository *PostgresRepository) bumpCounter(ctx context.Context, column string, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.RefMeme.Table, column, column, schema.RefMeme.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "bump_"+column)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Meme")
	}
	return nil
}

// queryMemes runs a meme SELECT and attaches each meme's URLs.
func (repository *PostgresRepository) queryMemes(ctx context.Context, query string, args ...any) ([]*Meme, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_memes")
	}
	defer rows.Close()

	memes := make([]*Meme, 0)
	memeMap := make(map[uuid.UUID]*Meme)
	var encodedCategories string

	for rows.Next() {
		m := &Meme{URLs: make([]MemeURL, 0)}
		err := rows.Scan(&m.ID, &encodedCategories, &m.Nickname, &m.Message,
			&m.ShowAt, &m.Status, &m.Likes, &m.Unlikes, &m.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_meme")
		}
		m.Categories = catlist.Decode(encodedCategories)
		memes = append(memes, m)
		memeMap[m.ID] = m
	}
	rows.Close()

	if len(memes) == 0 {
		return memes, nil
	}

	ids := make([]uuid.UUID, 0, len(memes))
	for _, m := range memes {
		ids = append(ids, m.ID)
	}

	urlQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC
	`,
		schema.RefMemeURL.ID, schema.RefMemeURL.MemeID, schema.RefMemeURL.URL,
		schema.RefMemeURL.Cover, schema.RefMemeURL.Format, schema.RefMemeURL.Sort,
		schema.RefMemeURL.Table, schema.RefMemeURL.MemeID, schema.RefMemeURL.Sort)

	urlRows, err := repository.db.Query(ctx, urlQuery, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_meme_urls")
	}
	defer urlRows.Close()

	for urlRows.Next() {
		var memeID uuid.UUID
		u := MemeURL{}
		if err := urlRows.Scan(&u.ID, &memeID, &u.URL, &u.Cover, &u.Format, &u.Sort); err != nil {
			return nil, dberr.Wrap(err, "scan_meme_url")
		}
		if m, ok := memeMap[memeID]; ok {
			m.URLs = append(m.URLs, u)
		}
	}

	return memes, nil
}
