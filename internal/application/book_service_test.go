package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
)

func newBookService() (*BookService, *fakeBookStore) {
	store := newFakeBookStore()
	return NewBookService(store, nil, "", nil, "", nil), store
}

func seedBooks(store *fakeBookStore, sellerID int64, n int) {
	for i := 0; i < n; i++ {
		store.add(entity.Book{
			Title:         fmt.Sprintf("Book %02d", i+1),
			Author:        "Some Author",
			PublishedDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Price:         9.99,
			SellerID:      sellerID,
		})
	}
}

func TestListPagination(t *testing.T) {
	svc, store := newBookService()
	seedBooks(store, 1, 37)
	ctx := context.Background()

	books, pg, err := svc.List(ctx, 0, 1, 10, "createdAt", "asc")
	require.NoError(t, err)
	assert.Len(t, books, 10)
	assert.Equal(t, int64(37), pg.TotalItems)
	assert.Equal(t, int64(4), pg.TotalPages)
	assert.Equal(t, 1, pg.CurrentPage)
	assert.Equal(t, 10, pg.ItemsPerPage)
	assert.True(t, pg.HasNextPage)

	books, pg, err = svc.List(ctx, 0, 4, 10, "createdAt", "asc")
	require.NoError(t, err)
	assert.Len(t, books, 7)
	assert.False(t, pg.HasNextPage)

	_, _, err = svc.List(ctx, 0, 5, 10, "createdAt", "asc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDefaultsAndScope(t *testing.T) {
	svc, store := newBookService()
	seedBooks(store, 1, 3)
	seedBooks(store, 2, 2)
	ctx := context.Background()

	// page/limit below 1 fall back to 1/10
	books, pg, err := svc.List(ctx, 0, 0, -5, "createdAt", "asc")
	require.NoError(t, err)
	assert.Len(t, books, 5)
	assert.Equal(t, 1, pg.CurrentPage)
	assert.Equal(t, 10, pg.ItemsPerPage)

	// seller scope only counts that seller's books
	books, pg, err = svc.List(ctx, 2, 1, 10, "createdAt", "asc")
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, int64(2), pg.TotalItems)
	for _, b := range books {
		assert.Equal(t, int64(2), b.SellerID)
	}
}

func TestListSortAllowList(t *testing.T) {
	svc, store := newBookService()
	seedBooks(store, 1, 2)
	ctx := context.Background()

	_, _, err := svc.List(ctx, 0, 1, 10, "price", "DESC")
	require.NoError(t, err)
	assert.Equal(t, "price", store.lastList.SortColumn)
	assert.True(t, store.lastList.Descending, "sort order is case-insensitive")

	_, _, err = svc.List(ctx, 0, 1, 10, "publishedDate", "asc")
	require.NoError(t, err)
	assert.Equal(t, "published_date", store.lastList.SortColumn)

	// unknown sort keys fall back to created_at instead of failing
	_, _, err = svc.List(ctx, 0, 1, 10, "password; DROP TABLE books", "asc")
	require.NoError(t, err)
	assert.Equal(t, "created_at", store.lastList.SortColumn)

	_, _, err = svc.List(ctx, 0, 1, 10, "", "nonsense")
	require.NoError(t, err)
	assert.Equal(t, "created_at", store.lastList.SortColumn)
	assert.False(t, store.lastList.Descending)
}

func TestGetOne(t *testing.T) {
	svc, store := newBookService()
	b := store.add(entity.Book{Title: "T", Author: "A", SellerID: 1})
	ctx := context.Background()

	got, err := svc.GetOne(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)

	_, err = svc.GetOne(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.GetOne(ctx, -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.GetOne(ctx, b.ID+99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditEnforcesOwnership(t *testing.T) {
	svc, store := newBookService()
	b := store.add(entity.Book{Title: "Old", Author: "A", Price: 5, SellerID: 1})
	ctx := context.Background()

	_, err := svc.Edit(ctx, 2, b.ID, "New", "B", 10)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Edit(ctx, 1, b.ID, "New", "B", 10)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "B", got.Author)
	assert.Equal(t, 10.0, got.Price)

	stored, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Title)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc, store := newBookService()
	b := store.add(entity.Book{Title: "T", Author: "A", SellerID: 1})
	ctx := context.Background()

	err := svc.Delete(ctx, 2, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, 1, b.ID))
	_, err = store.GetByID(ctx, b.ID)
	assert.Error(t, err)

	err = svc.Delete(ctx, 1, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllIsScopedToSeller(t *testing.T) {
	svc, store := newBookService()
	seedBooks(store, 1, 3)
	seedBooks(store, 2, 4)
	ctx := context.Background()

	n, err := svc.DeleteAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	left, err := store.Count(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), left)
}

func TestSearchWithoutESIsEmpty(t *testing.T) {
	svc, _ := newBookService()

	out, err := svc.Search(context.Background(), "clean architecture", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
