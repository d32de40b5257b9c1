package tasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/tasks"
)

// --- Mocks ---

// MockAnalyticsService implements services.IAnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) BuildReport(ctx context.Context, req models.AnalyticsRequest) (*models.AnalyticsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsResponse), args.Error(1)
}

// --- Tests ---

func warmRequest() models.AnalyticsRequest {
	return models.AnalyticsRequest{
		Objects:    []int{1, 2},
		StartDate:  "2024-01-01",
		EndDate:    "2024-12-31",
		Step:       30,
		PeriodMode: models.PeriodModeCustom,
	}
}

func TestNewReportWarmTask(t *testing.T) {
	task, err := tasks.NewReportWarmTask(warmRequest())
	assert.NoError(t, err)
	assert.Equal(t, tasks.TypeReportWarm, task.Type())

	var payload tasks.ReportWarmPayload
	assert.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, warmRequest(), payload.Request)
}

func TestHandleReportWarmTask_Success(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	mockAnalytics.On("BuildReport", mock.Anything, warmRequest()).
		Return(&models.AnalyticsResponse{}, nil).Once()

	processor := tasks.NewTaskProcessor(&config.Config{}, mockAnalytics)

	task, err := tasks.NewReportWarmTask(warmRequest())
	assert.NoError(t, err)

	err = processor.HandleReportWarmTask(context.Background(), task)
	assert.NoError(t, err)
	mockAnalytics.AssertExpectations(t)
}

func TestHandleReportWarmTask_ServiceError(t *testing.T) {
	boom := errors.New("mongo down")
	mockAnalytics := new(MockAnalyticsService)
	mockAnalytics.On("BuildReport", mock.Anything, mock.Anything).
		Return(nil, boom).Once()

	processor := tasks.NewTaskProcessor(&config.Config{}, mockAnalytics)

	task, err := tasks.NewReportWarmTask(warmRequest())
	assert.NoError(t, err)

	err = processor.HandleReportWarmTask(context.Background(), task)
	assert.Error(t, err)
	assert.ErrorIs(t, err, boom)
	// Transient failures should be retried.
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	mockAnalytics.AssertExpectations(t)
}

func TestHandleReportWarmTask_MalformedPayloadNotRetried(t *testing.T) {
	mockAnalytics := new(MockAnalyticsService)
	processor := tasks.NewTaskProcessor(&config.Config{}, mockAnalytics)

	task := asynq.NewTask(tasks.TypeReportWarm, []byte("{not json"))
	err := processor.HandleReportWarmTask(context.Background(), task)
	assert.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	mockAnalytics.AssertNotCalled(t, "BuildReport")
}
