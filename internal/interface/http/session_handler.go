package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookhaven/bookstore-backend/internal/application"
	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/interface/middleware"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
	"github.com/bookhaven/bookstore-backend/pkg/response"
	"github.com/bookhaven/bookstore-backend/pkg/validation"
)

// SessionHandler serves register/login/refresh/logout for one account
// kind. The user and seller modules each own an instance bound to their
// kind.
type SessionHandler struct {
	Kind    entity.AccountKind
	Svc     *application.SessionService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewSessionHandler(kind entity.AccountKind, svc *application.SessionService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *SessionHandler {
	return &SessionHandler{
		Kind:    kind,
		Svc:     svc,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
		Logger:  logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *SessionHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Register(c.Request.Context(), h.Kind, req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"kind": h.Kind, "account_id": a.ID}).Info("account registered")
	}
	response.Success(c, http.StatusCreated, gin.H{}, h.Kind.String()+" registered successfully")
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	_, pair, err := h.Svc.Login(c.Request.Context(), h.Kind, req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	// Tokens are echoed in the body for non-cookie clients.
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "logged in successfully")
}

// sameKind verifies the authenticated account's kind matches the
// handler's kind. The account id is meaningless across kinds (buyer
// and seller ids may collide), so a mismatched token must never reach
// the session service.
func (h *SessionHandler) sameKind(c *gin.Context) bool {
	return c.GetString(middleware.CtxAccountKindKey) == h.Kind.String()
}

// Refresh rotates the session pair. The presented refresh token comes
// from the cookie or, failing that, the request body.
func (h *SessionHandler) Refresh(c *gin.Context) {
	if !h.sameKind(c) {
		response.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	presented, _ := c.Cookie(helpers.RefreshTokenCookie)
	if presented == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		presented = req.RefreshToken
	}

	pair, err := h.Svc.Refresh(c.Request.Context(), h.Kind, presented, accountID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token refreshed")
}

func (h *SessionHandler) Logout(c *gin.Context) {
	if !h.sameKind(c) {
		response.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.Svc.Logout(c.Request.Context(), h.Kind, accountID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{}, "logged out successfully")
}
