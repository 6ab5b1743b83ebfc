package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	contactdomain "github.com/cremaciondirecta/checkout/internal/contact/domain"
)

func (s *Server) Contact(c *gin.Context) {
	var req contactdomain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.contactSvc.Relay(c.Request.Context(), contactdomain.ContactRequest{
		UserEmail: strings.TrimSpace(req.UserEmail),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
