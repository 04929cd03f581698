package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
)

// CSV import expects 4 positional columns: title, author, publishedDate,
// price. The first row is always treated as a header and discarded.
const importFieldCount = 4

const publishedDateLayout = "2006-01-02"

// ImportFromFile parses the uploaded file into books owned by sellerID
// and bulk-inserts them. The file is removed on every exit path.
// A header-only file fails with ErrEmptyImport before any store call;
// a malformed row fails the whole import with a row-numbered error.
func (s *BookService) ImportFromFile(ctx context.Context, path string, sellerID int64) (int64, error) {
	defer func() {
		if err := os.Remove(path); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("path", path).Warn("import file cleanup failed")
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	books, err := parseBookRows(f, sellerID)
	if err != nil {
		return 0, err
	}
	if len(books) == 0 {
		return 0, ErrEmptyImport
	}

	created, err := s.Books.CreateMany(ctx, books)
	if err != nil {
		return 0, err
	}

	for i := range created {
		s.indexBook(ctx, &created[i])
	}

	if s.Logger != nil {
		s.Logger.WithFields(map[string]any{"seller_id": sellerID, "count": len(created)}).Info("books imported")
	}
	return int64(len(created)), nil
}

func parseBookRows(r io.Reader, sellerID int64) ([]entity.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width validated per record
	reader.TrimLeadingSpace = true

	var books []entity.Book
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidArgument, line+1, err)
		}
		line++
		if line == 1 {
			// header, dropped unconditionally
			continue
		}

		b, err := parseBookRow(record, sellerID)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidArgument, line, err)
		}
		books = append(books, b)
	}
	return books, nil
}

func parseBookRow(record []string, sellerID int64) (entity.Book, error) {
	if len(record) != importFieldCount {
		return entity.Book{}, fmt.Errorf("expected %d fields, got %d", importFieldCount, len(record))
	}

	title := strings.TrimSpace(record[0])
	author := strings.TrimSpace(record[1])
	if title == "" || author == "" {
		return entity.Book{}, fmt.Errorf("title and author are required")
	}

	published, err := time.Parse(publishedDateLayout, strings.TrimSpace(record[2]))
	if err != nil {
		return entity.Book{}, fmt.Errorf("invalid published date %q", record[2])
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || price < 0 {
		return entity.Book{}, fmt.Errorf("invalid price %q", record[3])
	}

	return entity.Book{
		Title:         title,
		Author:        author,
		PublishedDate: published,
		Price:         price,
		SellerID:      sellerID,
	}, nil
}
