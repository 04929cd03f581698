package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/internal/interface/middleware"
)

// The gatekeeper admits either account kind, so the session endpoints
// double-check that the resolved kind matches the module they serve.
// A mismatched kind must be rejected before the session service runs.
func TestSessionHandlerRejectsForeignKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &SessionHandler{Kind: entity.KindBuyer}

	cases := []struct {
		name    string
		handler gin.HandlerFunc
	}{
		{"refresh", h.Refresh},
		{"logout", h.Logout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
			c.Set(middleware.CtxAccountIDKey, int64(1))
			c.Set(middleware.CtxAccountKindKey, entity.KindSeller.String())

			tc.handler(c)

			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}
