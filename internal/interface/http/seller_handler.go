package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bookhaven/bookstore-backend/internal/application"
	"github.com/bookhaven/bookstore-backend/pkg/response"
	"github.com/bookhaven/bookstore-backend/pkg/validation"
)

// SellerHandler serves the seller-facing book management endpoints.
// Every operation acts on behalf of the authenticated seller.
type SellerHandler struct {
	Books  *application.BookService
	Logger *logrus.Logger
}

func NewSellerHandler(books *application.BookService, logger *logrus.Logger) *SellerHandler {
	return &SellerHandler{Books: books, Logger: logger}
}

type editBookRequest struct {
	BookID int64   `json:"bookId" binding:"required,gt=0"`
	Title  string  `json:"title" binding:"required"`
	Author string  `json:"author" binding:"required"`
	Price  float64 `json:"price" binding:"required,gt=0"`
}

// ImportBooks bulk-imports books from an uploaded tabular file.
func (h *SellerHandler) ImportBooks(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required")
		return
	}

	// Spool to a temp path; the import service removes it on every path.
	dst := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("saving uploaded file failed")
		}
		response.Error(c, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	count, err := h.Books.ImportFromFile(c.Request.Context(), dst, accountID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count},
		fmt.Sprintf("%d books added successfully", count))
}

// ListBooks lists the authenticated seller's own books, paginated.
func (h *SellerHandler) ListBooks(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	books, pagination, err := h.Books.List(c.Request.Context(), accountID(c), q.Page, q.Limit, q.SortBy, q.SortType)
	if err != nil {
		if err == application.ErrNotFound {
			response.Error(c, http.StatusNotFound, "no books found")
			return
		}
		respondError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"books":      toBookResponses(books),
		"pagination": pagination,
	}, "all books fetched successfully")
}

// EditBook updates title, price and author of one owned book.
func (h *SellerHandler) EditBook(c *gin.Context) {
	var req editBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	b, err := h.Books.Edit(c.Request.Context(), accountID(c), req.BookID, req.Title, req.Author, req.Price)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBookResponse(b), "book edited successfully")
}

// DeleteBook removes one owned book.
func (h *SellerHandler) DeleteBook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid book id")
		return
	}

	if err := h.Books.Delete(c.Request.Context(), accountID(c), bookID); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "book deleted successfully")
}

// DeleteAllBooks removes every book owned by the seller.
func (h *SellerHandler) DeleteAllBooks(c *gin.Context) {
	n, err := h.Books.DeleteAll(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, "all books deleted successfully")
}

// UploadCover stores a cover image for one owned book.
func (h *SellerHandler) UploadCover(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid book id")
		return
	}

	fh, err := c.FormFile("cover")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cover file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Books.UploadCover(c.Request.Context(), accountID(c), bookID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"coverUrl": url}, "cover uploaded successfully")
}
