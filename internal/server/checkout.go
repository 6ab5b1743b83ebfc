package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	checkoutdomain "github.com/cremaciondirecta/checkout/internal/checkout/domain"
)

func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req checkoutdomain.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkoutSvc.Initiate(c.Request.Context(), s.bearerToken(c), checkoutdomain.InitiateRequest{
		PriceID: strings.TrimSpace(req.PriceID),
		Mode:    req.Mode,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ResolveCheckoutSession(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("sessionId"))
	if sessionID == "" {
		AbortWithError(c, newValidationError("sessionId", "invalid_request", "sessionId is required"))
		return
	}

	resp, err := s.checkoutSvc.ResolveCompletion(c.Request.Context(), s.bearerToken(c), sessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
