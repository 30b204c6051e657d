package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// AuthCookies writes the HttpOnly token pair. Secure deployments get
// SameSite=Strict, local http gets Lax so the dev front-end keeps working.
type AuthCookies struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *AuthCookies {
	return &AuthCookies{Domain: domain, Secure: secure}
}

func (a *AuthCookies) sameSite() http.SameSite {
	if a.Secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func (a *AuthCookies) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(a.sameSite())
	c.SetCookie(name, value, maxAge, "/", a.Domain, a.Secure, true)
}

func (a *AuthCookies) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	a.set(c, AccessCookie, access, secondsUntil(aexp))
	a.set(c, RefreshCookie, refresh, secondsUntil(rexp))
}

func (a *AuthCookies) Clear(c *gin.Context) {
	a.set(c, AccessCookie, "", -1)
	a.set(c, RefreshCookie, "", -1)
}

func secondsUntil(exp time.Time) int {
	if d := time.Until(exp); d > 0 {
		return int(d / time.Second)
	}
	return 0
}
