package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPricing(c *gin.Context) {
	country := strings.TrimSpace(c.Param("country"))
	plans, err := s.catalogSvc.Plans(c.Request.Context(), country)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": plans})
}
