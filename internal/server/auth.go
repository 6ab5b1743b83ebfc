package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
)

func (s *Server) Login(c *gin.Context) {
	var req identitydomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	auth, err := s.identitySvc.Login(c.Request.Context(), identitydomain.LoginRequest{
		Identifier: strings.TrimSpace(req.Identifier),
		Password:   req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.setAuthCookie(c, auth.JWT)
	c.JSON(http.StatusOK, gin.H{"user": auth.User})
}

func (s *Server) Register(c *gin.Context) {
	var req identitydomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	auth, err := s.identitySvc.Register(c.Request.Context(), identitydomain.RegisterRequest{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.setAuthCookie(c, auth.JWT)
	c.JSON(http.StatusOK, gin.H{"user": auth.User})
}

func (s *Server) Logout(c *gin.Context) {
	s.clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) CheckAuth(c *gin.Context) {
	token := s.bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	if _, err := s.identitySvc.Profile(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (s *Server) UserProfile(c *gin.Context) {
	user, err := s.identitySvc.Profile(c.Request.Context(), s.bearerToken(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
