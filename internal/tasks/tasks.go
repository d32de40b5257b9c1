package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/services"
)

// TaskType defines the type of a background task.
const (
	TypeReportWarm = "report:warm"
)

// ReportWarmPayload is the payload for a cache warming task: the analytics
// request to compute ahead of time.
type ReportWarmPayload struct {
	Request models.AnalyticsRequest `json:"request"`
}

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// NewReportWarmTask creates a task that precomputes one analytics report.
func NewReportWarmTask(req models.AnalyticsRequest) (*asynq.Task, error) {
	payload, err := json.Marshal(ReportWarmPayload{Request: req})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report warm payload: %w", err)
	}
	return asynq.NewTask(TypeReportWarm, payload), nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg              *config.Config
	analyticsService services.IAnalyticsService
}

func NewTaskProcessor(cfg *config.Config, analyticsService services.IAnalyticsService) *TaskProcessor {
	return &TaskProcessor{
		cfg:              cfg,
		analyticsService: analyticsService,
	}
}

// HandleReportWarmTask computes the report so the response lands in the
// cache before a user asks for it. A malformed payload is not retried.
func (p *TaskProcessor) HandleReportWarmTask(ctx context.Context, t *asynq.Task) error {
	var payload ReportWarmPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal report warm payload: %v: %w", err, asynq.SkipRetry)
	}

	if _, err := p.analyticsService.BuildReport(ctx, payload.Request); err != nil {
		return fmt.Errorf("failed to warm report for objects %v: %w", payload.Request.Objects, err)
	}
	log.Printf("Warmed analytics report for objects %v (%s..%s)", payload.Request.Objects, payload.Request.StartDate, payload.Request.EndDate)
	return nil
}

// SetupServer configures and returns an Asynq server instance.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReportWarm, processor.HandleReportWarmTask)

	return srv, mux
}
