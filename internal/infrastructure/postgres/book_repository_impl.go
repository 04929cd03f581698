package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
)

const bookColumns = `id, title, author, published_date, price, COALESCE(cover_url, ''), seller_id, created_at, updated_at`

// BookRepository is the pgx-backed repository.BookRepository.
type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Price,
		&b.CoverURL, &b.SellerID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	b := &entity.Book{}
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns), id)
	if err := scanBook(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookRepository) Count(ctx context.Context, sellerID int64) (int64, error) {
	var n int64
	var err error
	if sellerID > 0 {
		err = r.pool.QueryRow(ctx, `SELECT count(id) FROM books WHERE seller_id = $1`, sellerID).Scan(&n)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT count(id) FROM books`).Scan(&n)
	}
	return n, err
}

// List returns one page of books. p.SortColumn is interpolated into the
// query and must come from the service allow-list.
func (r *BookRepository) List(ctx context.Context, p repository.BookListParams) ([]entity.Book, error) {
	dir := "ASC"
	if p.Descending {
		dir = "DESC"
	}

	var (
		rows pgx.Rows
		err  error
	)
	if p.SellerID > 0 {
		rows, err = r.pool.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM books
			WHERE seller_id = $1
			ORDER BY %s %s
			OFFSET $2 LIMIT $3
		`, bookColumns, p.SortColumn, dir), p.SellerID, p.Offset, p.Limit)
	} else {
		rows, err = r.pool.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM books
			ORDER BY %s %s
			OFFSET $1 LIMIT $2
		`, bookColumns, p.SortColumn, dir), p.Offset, p.Limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]entity.Book, 0, p.Limit)
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// CreateMany inserts all books in one transaction via a pgx batch and
// fills the generated ids and timestamps back into the slice.
func (r *BookRepository) CreateMany(ctx context.Context, books []entity.Book) ([]entity.Book, error) {
	if len(books) == 0 {
		return books, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, b := range books {
		batch.Queue(`
			INSERT INTO books (title, author, published_date, price, seller_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, b.Title, b.Author, b.PublishedDate, b.Price, b.SellerID)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range books {
		if err := br.QueryRow().Scan(&books[i].ID, &books[i].CreatedAt, &books[i].UpdatedAt); err != nil {
			_ = br.Close()
			return nil, err
		}
	}
	if err := br.Close(); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE books
		SET title = $1, author = $2, price = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, b.Title, b.Author, b.Price, b.ID)
	if err := row.Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *BookRepository) UpdateCoverURL(ctx context.Context, id int64, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE books SET cover_url = $1, updated_at = now() WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookRepository) DeleteBySeller(ctx context.Context, sellerID int64) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE seller_id = $1`, sellerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
