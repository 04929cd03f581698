package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
)

const uniqueViolation = "23505"

// AccountRepository is a pgx-backed repository.AccountRepository bound to
// one table per account kind (buyers or sellers).
type AccountRepository struct {
	pool  *pgxpool.Pool
	kind  entity.AccountKind
	table string
}

func NewAccountRepository(pool *pgxpool.Pool, kind entity.AccountKind) *AccountRepository {
	table := "buyers"
	if kind == entity.KindSeller {
		table = "sellers"
	}
	return &AccountRepository{pool: pool, kind: kind, table: table}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.table), a.Name, a.Email, a.Password)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	a.Kind = r.kind
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *AccountRepository) getBy(ctx context.Context, cond string, arg any) (*entity.Account, error) {
	a := &entity.Account{Kind: r.kind}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, name, email, password_hash,
		       COALESCE(access_token, ''), COALESCE(refresh_token, ''),
		       created_at, updated_at
		FROM %s
		WHERE %s
	`, r.table, cond), arg)

	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password,
		&a.AccessToken, &a.RefreshToken, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

func (r *AccountRepository) UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string) error {
	res, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET access_token = $1, refresh_token = $2, updated_at = now()
		WHERE id = $3
	`, r.table), accessToken, refreshToken, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) ClearTokens(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET access_token = NULL, refresh_token = NULL, updated_at = now()
		WHERE id = $1
	`, r.table), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
