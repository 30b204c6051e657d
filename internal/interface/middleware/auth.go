package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

const (
	CtxCallerKey = "caller"
	CtxUserIDKey = "userID"
)

// SessionLookup reads the session hash of a user. Implementations that are
// not backed by a store report Enabled false and the token claims are trusted.
type SessionLookup interface {
	Enabled() bool
	Get(ctx context.Context, userID int64) (map[string]string, error)
}

// Auth validates the access token from the Authorization header or the
// access_token cookie. When sessions are enabled the session hash must exist
// and its role overrides the role claim.
func Auth(sessions SessionLookup, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		role := entity.Role(claims.Role)
		if sessions != nil && sessions.Enabled() {
			data, err := sessions.Get(c.Request.Context(), claims.UserID)
			if err != nil || len(data) == 0 {
				response.Error(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			if r := entity.Role(data["role"]); r != "" {
				role = r
			}
			c.Set("userName", data["name"])
			c.Set("userEmail", data["email"])
		}

		c.Set(CtxCallerKey, &entity.Caller{UserID: claims.UserID, Role: role})
		c.Set(CtxUserIDKey, strconv.FormatInt(claims.UserID, 10))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil {
		return tok
	}
	return ""
}

// CallerFrom returns the authenticated caller set by Auth, or nil.
func CallerFrom(c *gin.Context) *entity.Caller {
	if v, ok := c.Get(CtxCallerKey); ok {
		if caller, ok := v.(*entity.Caller); ok {
			return caller
		}
	}
	return nil
}
