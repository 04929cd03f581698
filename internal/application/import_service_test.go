package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func assertRemoved(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "import file must be removed")
}

func TestImportFromFile(t *testing.T) {
	svc, store := newBookService()
	path := writeImportFile(t,
		"title,author,publishedDate,price\n"+
			"The Go Programming Language,Alan Donovan,2015-10-26,39.99\n"+
			"Learning Go,Jon Bodner,2021-03-02,49.50\n")

	n, err := svc.ImportFromFile(context.Background(), path, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assertRemoved(t, path)

	require.Len(t, store.lastCreate, 2)
	for _, b := range store.lastCreate {
		assert.Equal(t, int64(7), b.SellerID)
		assert.NotZero(t, b.ID)
	}
	assert.Equal(t, "The Go Programming Language", store.lastCreate[0].Title)
	assert.Equal(t, "2015-10-26", store.lastCreate[0].PublishedDate.Format("2006-01-02"))
	assert.Equal(t, 49.50, store.lastCreate[1].Price)
}

func TestImportHeaderOnly(t *testing.T) {
	svc, store := newBookService()
	path := writeImportFile(t, "title,author,publishedDate,price\n")

	_, err := svc.ImportFromFile(context.Background(), path, 7)
	assert.ErrorIs(t, err, ErrEmptyImport)
	assert.Zero(t, store.createOps, "empty input must not reach the store")
	assertRemoved(t, path)
}

func TestImportHeaderIsAlwaysDropped(t *testing.T) {
	svc, store := newBookService()
	// first row is data-shaped but is still treated as the header
	path := writeImportFile(t,
		"Some Real Book,Jane Doe,2019-05-01,12.00\n"+
			"Another Book,John Roe,2020-06-02,13.00\n")

	n, err := svc.ImportFromFile(context.Background(), path, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, store.lastCreate, 1)
	assert.Equal(t, "Another Book", store.lastCreate[0].Title)
}

func TestImportMalformedRowFailsWhole(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{"bad date", "Bad Book,Author,not-a-date,10.00"},
		{"bad price", "Bad Book,Author,2020-01-01,free"},
		{"negative price", "Bad Book,Author,2020-01-01,-3.50"},
		{"missing field", "Bad Book,Author,2020-01-01"},
		{"empty title", " ,Author,2020-01-01,10.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newBookService()
			path := writeImportFile(t,
				"title,author,publishedDate,price\n"+
					"Good Book,Author,2020-01-01,10.00\n"+
					tc.row+"\n")

			_, err := svc.ImportFromFile(context.Background(), path, 7)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.ErrorContains(t, err, "row 3")
			assert.Zero(t, store.createOps, "a bad row must fail the whole import")
			assertRemoved(t, path)
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	svc, store := newBookService()

	_, err := svc.ImportFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), 7)
	assert.Error(t, err)
	assert.Zero(t, store.createOps)
}
