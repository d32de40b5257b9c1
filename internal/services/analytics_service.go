package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/engine"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/utils"
)

// IAnalyticsService defines the interface for portfolio occupancy reports.
type IAnalyticsService interface {
	BuildReport(ctx context.Context, req models.AnalyticsRequest) (*models.AnalyticsResponse, error)
}

const analyticsCachePrefix = "analytics:"

// analyticsService implements IAnalyticsService.
type analyticsService struct {
	cfg            *config.Config
	rdb            *redis.Client // nil disables caching
	objectService  IObjectService
	bookingService IBookingService
}

// NewAnalyticsService creates a new AnalyticsService. rdb may be nil, in
// which case responses are computed fresh on every call.
func NewAnalyticsService(cfg *config.Config, rdb *redis.Client, objectService IObjectService, bookingService IBookingService) IAnalyticsService {
	return &analyticsService{
		cfg:            cfg,
		rdb:            rdb,
		objectService:  objectService,
		bookingService: bookingService,
	}
}

// objectFetch carries one object's raw data from the fetch stage into the
// aggregation stage, keyed by its position in the request.
type objectFetch struct {
	object   models.RentalObject
	bookings []models.Booking
}

func (s *analyticsService) BuildReport(ctx context.Context, req models.AnalyticsRequest) (*models.AnalyticsResponse, error) {
	start, end, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	if cached := s.cacheGet(ctx, req); cached != nil {
		return cached, nil
	}

	periods, err := engine.GeneratePeriods(req.PeriodMode, start, end, req.Step)
	if err != nil {
		return nil, err
	}

	objects, err := s.objectService.FindByIDs(ctx, req.Objects)
	if err != nil {
		return nil, fmt.Errorf("failed to load objects: %w", err)
	}

	fetches, err := s.fetchBookings(ctx, objects, start, end)
	if err != nil {
		return nil, err
	}

	results := make([]models.ObjectResult, len(fetches))
	for i, fetch := range fetches {
		results[i] = engine.BuildObjectResult(fetch.object, fetch.bookings, periods, req.StartMedian, req.EndMedian, s.cfg.LowPriceThreshold)
	}

	header := engine.BuildHeader(periods, results)

	pointers := make([]*models.ObjectResult, len(results))
	for i := range results {
		pointers[i] = &results[i]
	}
	engine.ApplyDeviation(pointers, header, s.cfg.MaxDeviationPct)

	response := &models.AnalyticsResponse{
		Header: header,
		Data:   results,
	}
	s.cacheSet(ctx, req, response)
	return response, nil
}

// fetchBookings loads each object's bookings concurrently, at most
// ReportConcurrency objects in flight. The first error cancels the rest.
func (s *analyticsService) fetchBookings(ctx context.Context, objects []models.RentalObject, start, end time.Time) ([]objectFetch, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fetches := make([]objectFetch, len(objects))
	errs := make([]error, len(objects))
	sem := make(chan struct{}, s.cfg.ReportConcurrency)
	var wg sync.WaitGroup

	for i, object := range objects {
		wg.Add(1)
		go func(i int, object models.RentalObject) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}

			bookings, err := s.bookingService.FindByObjectAndRange(ctx, object.ID, start, end.AddDate(0, 0, 1))
			if err != nil {
				errs[i] = fmt.Errorf("failed to load bookings for object %d: %w", object.ID, err)
				cancel()
				return
			}
			fetches[i] = objectFetch{object: object, bookings: bookings}
		}(i, object)
	}
	wg.Wait()

	// Prefer a real fetch failure over the cancellations it triggered.
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return fetches, nil
}

func (s *analyticsService) validate(req models.AnalyticsRequest) (start, end time.Time, err error) {
	start, err = utils.ParseDay(req.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("%w: invalid startDate %q", engine.ErrInvalidArgument, req.StartDate)
	}
	end, err = utils.ParseDay(req.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("%w: invalid endDate %q", engine.ErrInvalidArgument, req.EndDate)
	}
	if req.StartMedian < 0 || req.StartMedian > 1 || req.EndMedian < 0 || req.EndMedian > 1 {
		return start, end, fmt.Errorf("%w: medians must be within [0, 1]", engine.ErrInvalidArgument)
	}
	return start, end, nil
}

func (s *analyticsService) cacheKey(req models.AnalyticsRequest) string {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return analyticsCachePrefix + hex.EncodeToString(sum[:])
}

func (s *analyticsService) cacheGet(ctx context.Context, req models.AnalyticsRequest) *models.AnalyticsResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, s.cacheKey(req)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("analytics cache read failed: %v", err)
		}
		return nil
	}
	var response models.AnalyticsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		log.Printf("analytics cache entry corrupt, ignoring: %v", err)
		return nil
	}
	return &response
}

func (s *analyticsService) cacheSet(ctx context.Context, req models.AnalyticsRequest, response *models.AnalyticsResponse) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, s.cacheKey(req), payload, s.cfg.ReportCacheTTL).Err(); err != nil {
		log.Printf("analytics cache write failed: %v", err)
	}
}
