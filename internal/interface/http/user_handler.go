package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookhaven/bookstore-backend/internal/application"
	"github.com/bookhaven/bookstore-backend/pkg/response"
)

// UserHandler serves the buyer-facing catalog endpoints.
type UserHandler struct {
	Books  *application.BookService
	Logger *logrus.Logger
}

func NewUserHandler(books *application.BookService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Books: books, Logger: logger}
}

// GetAllBooks lists the whole catalog, paginated and sortable.
func (h *UserHandler) GetAllBooks(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	books, pagination, err := h.Books.List(c.Request.Context(), 0, q.Page, q.Limit, q.SortBy, q.SortType)
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

// GetABook fetches a single book by id.
func (h *UserHandler) GetABook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid book id")
		return
	}

	b, err := h.Books.GetOne(c.Request.Context(), bookID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBookResponse(b), "book fetched successfully")
}

// SearchBooks runs a full-text search over title and author.
func (h *UserHandler) SearchBooks(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	hits, err := h.Books.Search(c.Request.Context(), q, size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"books": hits}, "search results")
}
