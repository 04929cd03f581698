package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookhaven/bookstore-backend/internal/application"
	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/interface/middleware"
	"github.com/bookhaven/bookstore-backend/pkg/response"
)

// bookResponse is the wire shape of a book, field names matching the
// public API contract.
type bookResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedDate string    `json:"publishedDate"`
	Price         float64   `json:"price"`
	CoverURL      string    `json:"coverUrl,omitempty"`
	SellerID      int64     `json:"sellerId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toBookResponse(b *entity.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: b.PublishedDate.Format("2006-01-02"),
		Price:         b.Price,
		CoverURL:      b.CoverURL,
		SellerID:      b.SellerID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookResponses(books []entity.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	return out
}

// listQuery reads the shared pagination/sort query params with the
// listing defaults.
type listQuery struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
	SortBy   string `form:"sortBy,default=createdAt"`
	SortType string `form:"sortType,default=asc"`
}

func accountID(c *gin.Context) int64 {
	return c.GetInt64(middleware.CtxAccountIDKey)
}

// respondError maps the service error taxonomy onto the error envelope.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidArgument):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrEmptyImport):
		response.Error(c, http.StatusBadRequest, application.ErrEmptyImport.Error())
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusConflict, application.ErrEmailTaken.Error())
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, application.ErrInvalidCredentials.Error())
	case errors.Is(err, application.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Error())
	case errors.Is(err, application.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, application.ErrInvalidToken.Error())
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "only the owning seller may modify this book")
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found")
	default:
		if logger != nil {
			logger.WithError(err).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
