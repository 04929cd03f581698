package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
)

// sortColumns is the allow-list of sortable fields; anything else falls
// back to createdAt.
var sortColumns = map[string]string{
	"title":         "title",
	"author":        "author",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"publishedDate": "published_date",
	"price":         "price",
}

const defaultSortColumn = "created_at"

// Pagination describes the page returned by List.
type Pagination struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
}

// BookService covers listing queries, single-book CRUD with ownership
// checks, cover uploads and search. GCS and Elasticsearch are optional;
// a nil client disables the corresponding feature.
type BookService struct {
	Books        repository.BookRepository
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESBooksIndex string
	Logger       *logrus.Logger
}

func NewBookService(books repository.BookRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esBooksIndex string, logger *logrus.Logger) *BookService {
	return &BookService{
		Books:        books,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESBooksIndex: esBooksIndex,
		Logger:       logger,
	}
}

// List returns one page of books, scoped to a seller when sellerID > 0
// or global otherwise. An empty page fails with ErrNotFound, including
// pages past the end.
func (s *BookService) List(ctx context.Context, sellerID int64, page, limit int, sortBy, sortOrder string) ([]entity.Book, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = defaultSortColumn
	}
	descending := strings.EqualFold(sortOrder, "desc")

	total, err := s.Books.Count(ctx, sellerID)
	if err != nil {
		return nil, Pagination{}, err
	}

	books, err := s.Books.List(ctx, repository.BookListParams{
		SellerID:   sellerID,
		Offset:     (page - 1) * limit,
		Limit:      limit,
		SortColumn: column,
		Descending: descending,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	if len(books) == 0 {
		return nil, Pagination{}, ErrNotFound
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return books, Pagination{
		TotalItems:   total,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: limit,
		HasNextPage:  int64(page) < totalPages,
	}, nil
}

// GetOne fetches a single book by id.
func (s *BookService) GetOne(ctx context.Context, bookID int64) (*entity.Book, error) {
	if bookID <= 0 {
		return nil, ErrInvalidArgument
	}
	b, err := s.Books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ownedBook loads the book and verifies the acting seller owns it.
func (s *BookService) ownedBook(ctx context.Context, sellerID, bookID int64) (*entity.Book, error) {
	b, err := s.GetOne(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b.SellerID != sellerID {
		return nil, ErrForbidden
	}
	return b, nil
}

// Edit updates title, price and author of a book owned by sellerID.
func (s *BookService) Edit(ctx context.Context, sellerID, bookID int64, title, author string, price float64) (*entity.Book, error) {
	b, err := s.ownedBook(ctx, sellerID, bookID)
	if err != nil {
		return nil, err
	}

	b.Title = title
	b.Author = author
	b.Price = price
	if err := s.Books.Update(ctx, b); err != nil {
		return nil, err
	}

	s.indexBook(ctx, b)
	return b, nil
}

// Delete removes a single book owned by sellerID.
func (s *BookService) Delete(ctx context.Context, sellerID, bookID int64) error {
	b, err := s.ownedBook(ctx, sellerID, bookID)
	if err != nil {
		return err
	}
	if err := s.Books.Delete(ctx, b.ID); err != nil {
		return err
	}
	s.removeBookIndex(ctx, b.ID)
	return nil
}

// DeleteAll removes every book owned by the seller.
func (s *BookService) DeleteAll(ctx context.Context, sellerID int64) (int64, error) {
	n, err := s.Books.DeleteBySeller(ctx, sellerID)
	if err != nil {
		return 0, err
	}
	s.removeSellerIndex(ctx, sellerID)
	return n, nil
}

// UploadCover stores a cover image in GCS and saves its public URL on the
// book. Ownership is enforced like edit/delete.
func (s *BookService) UploadCover(ctx context.Context, sellerID, bookID int64, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	b, err := s.ownedBook(ctx, sellerID, bookID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", strconv.FormatInt(sellerID, 10), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	if err := s.Books.UpdateCoverURL(ctx, b.ID, url); err != nil {
		return "", err
	}
	b.CoverURL = url
	s.indexBook(ctx, b)
	return url, nil
}

// Search performs a multi_match query on title and author.
func (s *BookService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "author"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESBooksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// indexBook indexes a book best-effort; failures are logged, never returned.
func (s *BookService) indexBook(ctx context.Context, b *entity.Book) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":             b.ID,
		"title":          b.Title,
		"author":         b.Author,
		"published_date": b.PublishedDate.Format("2006-01-02"),
		"price":          b.Price,
		"cover_url":      b.CoverURL,
		"seller_id":      b.SellerID,
		"created_at":     b.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":     b.UpdatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESBooksIndex,
		DocumentID: strconv.FormatInt(b.ID, 10),
		Body:       strings.NewReader(string(body)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("book_id", b.ID).Warn("es index response error")
	}
}

func (s *BookService) removeBookIndex(ctx context.Context, bookID int64) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESBooksIndex, DocumentID: strconv.FormatInt(bookID, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", bookID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *BookService) removeSellerIndex(ctx context.Context, sellerID int64) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"seller_id": sellerID},
		},
	}
	body, _ := json.Marshal(query)
	req := esapi.DeleteByQueryRequest{
		Index: []string{s.ESBooksIndex},
		Body:  strings.NewReader(string(body)),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("seller_id", sellerID).Warn("es delete-by-query failed")
		}
		return
	}
	_ = res.Body.Close()
}
