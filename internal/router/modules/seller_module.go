package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookhaven/bookstore-backend/internal/container"
	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
	handlers "github.com/bookhaven/bookstore-backend/internal/interface/http"
	"github.com/bookhaven/bookstore-backend/internal/interface/middleware"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
)

// SellerModule wires the seller-facing routes under /seller.
// Public: register, login. Protected: session management and book CRUD,
// bulk import, cover upload.
type SellerModule struct {
	Sessions *handlers.SessionHandler
	Handler  *handlers.SellerHandler
	Buyers   repository.AccountRepository
	Sellers  repository.AccountRepository
	JWT      *helpers.JWTManager
}

func NewSellerModule(sessions *handlers.SessionHandler, h *handlers.SellerHandler, buyers, sellers repository.AccountRepository, jwt *helpers.JWTManager) *SellerModule {
	return &SellerModule{Sessions: sessions, Handler: h, Buyers: buyers, Sellers: sellers, JWT: jwt}
}

func (m *SellerModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	seller := rg.Group("/seller")
	seller.POST("/register", registerLimiter, m.Sessions.Register)
	seller.POST("/login", loginLimiter, m.Sessions.Login)

	auth := seller.Group("/")
	auth.Use(middleware.Auth(m.Buyers, m.Sellers, m.JWT))
	auth.Use(middleware.RequireKind(entity.KindSeller))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil),
	)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)
	{
		auth.POST("/refresh-token", refreshLimiter, m.Sessions.Refresh)
		auth.POST("/logout", m.Sessions.Logout)

		auth.POST("/books", m.Handler.ImportBooks)
		auth.GET("/books", m.Handler.ListBooks)
		auth.PATCH("/books", m.Handler.EditBook)
		auth.DELETE("/books", m.Handler.DeleteAllBooks)
		auth.DELETE("/book/:bookId", m.Handler.DeleteBook)
		auth.POST("/book/:bookId/cover", m.Handler.UploadCover)
	}
}
