package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YaSanyaBeats/baseline-sub000/internal/engine"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/services"
)

// RestAnalyticsHandler handles REST requests for occupancy analytics.
type RestAnalyticsHandler struct {
	analyticsService services.IAnalyticsService
}

// NewRestAnalyticsHandler creates a new RestAnalyticsHandler.
func NewRestAnalyticsHandler(analyticsService services.IAnalyticsService) *RestAnalyticsHandler {
	return &RestAnalyticsHandler{analyticsService: analyticsService}
}

// BuildReport handles POST /v1/analytics
func (h *RestAnalyticsHandler) BuildReport(c *gin.Context) {
	var req models.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response, err := h.analyticsService.BuildReport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to build analytics report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, response)
}
