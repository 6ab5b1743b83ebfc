package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authCookieName    = "jwt"
	countryCookieName = "user-country"

	authCookieMaxAge    = 7 * 24 * 60 * 60
	countryCookieMaxAge = 30 * 24 * 60 * 60
)

// bearerToken pulls the visitor's token from the auth cookie, falling back
// to the Authorization header for non-browser clients.
func (s *Server) bearerToken(c *gin.Context) string {
	if token, err := c.Cookie(authCookieName); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func (s *Server) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, token, authCookieMaxAge, "/", "", s.cfg.AuthCookieSecure, true)
}

func (s *Server) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
}

// CountryCookie pins the visitor's country from the edge geo header on
// first contact so pricing stays stable across requests. The cookie is
// readable by the storefront, hence not HttpOnly.
func (s *Server) CountryCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := c.Cookie(countryCookieName); err == nil {
			c.Next()
			return
		}

		country := strings.ToUpper(strings.TrimSpace(c.GetHeader(s.cfg.GeoCountryHeader)))
		if country == "" {
			country = s.cfg.DefaultCountry
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(countryCookieName, country, countryCookieMaxAge, "/", "", s.cfg.AuthCookieSecure, false)
		c.Next()
	}
}
