package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/YaSanyaBeats/baseline-sub000/internal/api/handlers"
	"github.com/YaSanyaBeats/baseline-sub000/internal/engine"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

func setupCommissionRouter(svc *MockCommissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := handlers.NewRestCommissionHandler(svc)
	r.POST("/v1/commission", handler.BuildReport)
	return r
}

func TestCommissionHandler_Success(t *testing.T) {
	expected := models.CommissionRequest{
		ObjectID: 1,
		RoomID:   models.RoomSelector{All: true},
		MonthKey: "2024-01",
		SchemeID: 2,
	}

	mockSvc := new(MockCommissionService)
	mockSvc.On("BuildReport", mock.Anything, expected).
		Return(&models.CommissionReport{TotalCommission: 1700}, nil).Once()

	r := setupCommissionRouter(mockSvc)
	w := postJSON(r, "/v1/commission", map[string]interface{}{
		"objectId": 1,
		"roomId":   "all",
		"monthKey": "2024-01",
		"schemeId": 2,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report models.CommissionReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.InDelta(t, 1700, report.TotalCommission, 1e-9)
	mockSvc.AssertExpectations(t)
}

func TestCommissionHandler_NumericRoomSelector(t *testing.T) {
	expected := models.CommissionRequest{
		ObjectID: 1,
		RoomID:   models.RoomSelector{ID: 11},
		MonthKey: "2024-01",
		SchemeID: 1,
	}

	mockSvc := new(MockCommissionService)
	mockSvc.On("BuildReport", mock.Anything, expected).
		Return(&models.CommissionReport{}, nil).Once()

	r := setupCommissionRouter(mockSvc)
	w := postJSON(r, "/v1/commission", map[string]interface{}{
		"objectId": 1,
		"roomId":   11,
		"monthKey": "2024-01",
		"schemeId": 1,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCommissionHandler_BindingErrors(t *testing.T) {
	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing object", map[string]interface{}{"monthKey": "2024-01", "schemeId": 1}},
		{"missing month", map[string]interface{}{"objectId": 1, "schemeId": 1}},
		{"missing scheme", map[string]interface{}{"objectId": 1, "monthKey": "2024-01"}},
		{"bad room selector", map[string]interface{}{"objectId": 1, "roomId": "penthouse", "monthKey": "2024-01", "schemeId": 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := new(MockCommissionService)
			r := setupCommissionRouter(mockSvc)
			w := postJSON(r, "/v1/commission", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockSvc.AssertNotCalled(t, "BuildReport")
		})
	}
}

func TestCommissionHandler_InvalidScheme(t *testing.T) {
	mockSvc := new(MockCommissionService)
	mockSvc.On("BuildReport", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown commission scheme 99", engine.ErrInvalidArgument)).Once()

	r := setupCommissionRouter(mockSvc)
	w := postJSON(r, "/v1/commission", map[string]interface{}{
		"objectId": 1,
		"roomId":   "all",
		"monthKey": "2024-01",
		"schemeId": 99,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown commission scheme")
}
