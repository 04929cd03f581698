package repository

import (
	"context"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
)

// BookListParams describes one page of a sorted listing query.
// SortColumn must come from the service-level allow-list; it is
// interpolated into the ORDER BY clause.
type BookListParams struct {
	SellerID   int64 // 0 means global scope (all sellers)
	Offset     int
	Limit      int
	SortColumn string
	Descending bool
}

// BookRepository persists book listings.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Book, error)
	Count(ctx context.Context, sellerID int64) (int64, error)
	List(ctx context.Context, p BookListParams) ([]entity.Book, error)
	// CreateMany inserts books in a single transaction and fills in the
	// generated ids and timestamps.
	CreateMany(ctx context.Context, books []entity.Book) ([]entity.Book, error)
	Update(ctx context.Context, b *entity.Book) error
	UpdateCoverURL(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
	// DeleteBySeller removes every book owned by the seller and reports
	// how many were removed.
	DeleteBySeller(ctx context.Context, sellerID int64) (int64, error)
}
