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

// RestCommissionHandler handles REST requests for commission reports.
type RestCommissionHandler struct {
	commissionService services.ICommissionService
}

// NewRestCommissionHandler creates a new RestCommissionHandler.
func NewRestCommissionHandler(commissionService services.ICommissionService) *RestCommissionHandler {
	return &RestCommissionHandler{commissionService: commissionService}
}

// BuildReport handles POST /v1/commission
func (h *RestCommissionHandler) BuildReport(c *gin.Context) {
	var req models.CommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.commissionService.BuildReport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to build commission report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
