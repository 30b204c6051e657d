package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.AuthCookies
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.AuthCookies, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type tokenResponse struct {
	*application.LoginResponse
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func newTokenResponse(res *application.LoginResponse, pair application.TokenPair) tokenResponse {
	return tokenResponse{
		LoginResponse:    res,
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessTokenExpiry,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshTokenExpiry,
	}
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Logger, bindError(err))
		return
	}
	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, newTokenResponse(res, pair), "login successful")
}

// Refresh POST /api/refresh. The refresh token comes from the cookie or the
// JSON body {refresh_token}.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, _ := c.Cookie(helpers.RefreshCookie)
	if refresh == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&body)
		refresh = body.RefreshToken
	}
	if refresh == "" {
		writeError(c, h.Logger, apperr.Unauthenticated("missing refresh token"))
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, newTokenResponse(nil, pair), "token refreshed")
}

// Logout POST /api/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if caller := middleware.CallerFrom(c); caller != nil {
		if err := h.Svc.Logout(c.Request.Context(), caller.UserID); err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", caller.UserID).Warn("session delete failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, map[string]any{"logged_out": true}, "logged out")
}
