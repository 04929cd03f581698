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

// UserModule wires the buyer-facing routes under /user.
// Public: register, login. Protected: refresh-token, logout, catalog reads.
type UserModule struct {
	Sessions *handlers.SessionHandler
	Handler  *handlers.UserHandler
	Buyers   repository.AccountRepository
	Sellers  repository.AccountRepository
	JWT      *helpers.JWTManager
}

func NewUserModule(sessions *handlers.SessionHandler, h *handlers.UserHandler, buyers, sellers repository.AccountRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Sessions: sessions, Handler: h, Buyers: buyers, Sellers: sellers, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	user := rg.Group("/user")
	user.POST("/register", registerLimiter, m.Sessions.Register)
	user.POST("/login", loginLimiter, m.Sessions.Login)

	auth := user.Group("/")
	auth.Use(middleware.Auth(m.Buyers, m.Sellers, m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil),
	)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)
	// Session routes act on the buyer row behind the token, so they are
	// buyer-only. Catalog reads stay open to any authenticated account.
	buyerOnly := middleware.RequireKind(entity.KindBuyer)
	{
		auth.POST("/refresh-token", buyerOnly, refreshLimiter, m.Sessions.Refresh)
		auth.POST("/logout", buyerOnly, m.Sessions.Logout)
		auth.GET("/getAllBooks", m.Handler.GetAllBooks)
		auth.GET("/getABook/:bookId", m.Handler.GetABook)
		auth.GET("/searchBooks", m.Handler.SearchBooks)
	}
}
