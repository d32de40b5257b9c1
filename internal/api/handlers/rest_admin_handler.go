package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/tasks"
)

// IAsynqClient defines the interface for the Asynq client methods used by the handler.
// This allows easier mocking than using the concrete asynq.Client.
type IAsynqClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RestAdminHandler handles administrative REST requests.
type RestAdminHandler struct {
	taskClient IAsynqClient
}

// NewRestAdminHandler creates a new RestAdminHandler.
func NewRestAdminHandler(taskClient IAsynqClient) *RestAdminHandler {
	return &RestAdminHandler{taskClient: taskClient}
}

// WarmReport handles POST /v1/admin/report/warm. It enqueues a background
// task that precomputes the given analytics report into the cache.
func (h *RestAdminHandler) WarmReport(c *gin.Context) {
	var req models.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	task, err := tasks.NewReportWarmTask(req)
	if err != nil {
		log.Printf("Failed to create report warm task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	info, err := h.taskClient.EnqueueContext(c.Request.Context(), task, asynq.Queue("low"))
	if err != nil {
		log.Printf("Failed to enqueue report warm task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"taskId": info.ID, "queue": info.Queue})
}
