package router

import (
	"github.com/bookhaven/bookstore-backend/internal/application"
	"github.com/bookhaven/bookstore-backend/internal/container"
	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
	pginfra "github.com/bookhaven/bookstore-backend/internal/infrastructure/postgres"
	handlers "github.com/bookhaven/bookstore-backend/internal/interface/http"
	"github.com/bookhaven/bookstore-backend/internal/router/modules"
)

// Deps holds the shared repositories and services the modules are built on.
type Deps struct {
	Buyers  repository.AccountRepository
	Sellers repository.AccountRepository
	Books   repository.BookRepository

	Sessions *application.SessionService
	BookSvc  *application.BookService
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	buyers := pginfra.NewAccountRepository(pool, entity.KindBuyer)
	sellers := pginfra.NewAccountRepository(pool, entity.KindSeller)
	books := pginfra.NewBookRepository(pool)

	sessions := application.NewSessionService(
		buyers,
		sellers,
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
	)

	bookSvc := application.NewBookService(
		books,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESBooksIndex,
		logger,
	)

	return Deps{
		Buyers:   buyers,
		Sellers:  sellers,
		Books:    books,
		Sessions: sessions,
		BookSvc:  bookSvc,
	}
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	deps := buildDeps()

	userSessions := handlers.NewSessionHandler(entity.KindBuyer, deps.Sessions, logger, cfg.CookieDomain, cfg.CookieSecure)
	sellerSessions := handlers.NewSessionHandler(entity.KindSeller, deps.Sessions, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(deps.BookSvc, logger)
	sellerHandler := handlers.NewSellerHandler(deps.BookSvc, logger)

	r.Add(modules.NewUserModule(userSessions, userHandler, deps.Buyers, deps.Sellers, container.GetJWT()))
	r.Add(modules.NewSellerModule(sellerSessions, sellerHandler, deps.Buyers, deps.Sellers, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
