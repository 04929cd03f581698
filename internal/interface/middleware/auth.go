package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/domain/repository"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
	"github.com/bookhaven/bookstore-backend/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxAccountIDKey    = "accountID"
	CtxAccountNameKey  = "accountName"
	CtxAccountEmailKey = "accountEmail"
	CtxAccountKindKey  = "accountKind"
)

// tokenFromRequest extracts the access token: the cookie takes
// precedence over the Authorization: Bearer header.
func tokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessTokenCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// Auth validates the access token and resolves the account in the store
// matching the token's kind claim. Buyer tokens resolve against the
// buyer store and seller tokens against the seller store; ids may
// collide across the two tables.
func Auth(buyers, sellers repository.AccountRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized request")
			return
		}

		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		kind, err := entity.ParseAccountKind(claims.Kind)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		store := buyers
		if kind == entity.KindSeller {
			store = sellers
		}

		a, err := store.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil || a == nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		c.Set(CtxAccountIDKey, a.ID)
		c.Set(CtxAccountNameKey, a.Name)
		c.Set(CtxAccountEmailKey, a.Email)
		c.Set(CtxAccountKindKey, kind.String())
		c.Next()
	}
}

// RequireKind restricts a route to accounts of one kind. It must run
// after Auth, which stores the resolved kind in context. Buyer and
// seller ids live in separate tables and may collide, so an account id
// alone never authorizes a kind-scoped route.
func RequireKind(kind entity.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxAccountKindKey) != kind.String() {
			response.AbortError(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
