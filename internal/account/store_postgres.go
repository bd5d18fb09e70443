// Copyright (c) 2026 D42X. All rights reserved.

package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/d42x/d42x-api/internal/platform/database/schema"
	"github.com/d42x/d42x-api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on top of pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) FindAdminByUsername(ctx context.Context, username string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = TRUE`,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.HashedPassword,
		schema.RefAccount.IsAdmin, schema.RefAccount.UsualAddress, schema.RefAccount.LastActivityAt,
		schema.RefAccount.CreatedAt,
		schema.RefAccount.Table, schema.RefAccount.Username, schema.RefAccount.IsAdmin)

	return repository.scanOne(ctx, query, username)
}

func (repository *PostgresRepository) FindAdminByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = TRUE`,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.HashedPassword,
		schema.RefAccount.IsAdmin, schema.RefAccount.UsualAddress, schema.RefAccount.LastActivityAt,
		schema.RefAccount.CreatedAt,
		schema.RefAccount.Table, schema.RefAccount.ID, schema.RefAccount.IsAdmin)

	return repository.scanOne(ctx, query, id)
}

func (repository *PostgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefAccount.Table, schema.RefAccount.HashedPassword, schema.RefAccount.ID)

	if _, err := repository.db.Exec(ctx, query, hashedPassword, id); err != nil {
		return dberr.Wrap(err, "account_update_password")
	}
	return nil
}

func (repository *PostgresRepository) UpdateActivity(ctx context.Context, id uuid.UUID, address string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = $1 WHERE %s = $2`,
		schema.RefAccount.Table, schema.RefAccount.LastActivityAt, schema.RefAccount.UsualAddress,
		schema.RefAccount.ID)

	if _, err := repository.db.Exec(ctx, query, address, id); err != nil {
		return dberr.Wrap(err, "account_update_activity")
	}
	return nil
}

// scanOne runs a single-row account query.
func (repository *PostgresRepository) scanOne(ctx context.Context, query string, arg any) (*Account, error) {
	acc := &Account{}
	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&acc.ID, &acc.Username, &acc.HashedPassword,
		&acc.IsAdmin, &acc.UsualAddress, &acc.LastActivityAt,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "account_find_admin")
	}
	return acc, nil
}
