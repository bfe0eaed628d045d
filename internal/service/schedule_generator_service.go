package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/summit-sms/timetable-engine/internal/dto"
	"github.com/summit-sms/timetable-engine/internal/models"
	"github.com/summit-sms/timetable-engine/internal/scheduling"
	appErrors "github.com/summit-sms/timetable-engine/pkg/errors"
)

// ScheduleGeneratorConfig governs the solver budget and the day/period grid.
type ScheduleGeneratorConfig struct {
	Days        int
	Periods     int
	TimeLimit   time.Duration
	Workers     int
	OverloadCap int
	CacheTTL    time.Duration
}

// ScheduleGeneratorService orchestrates the constraint solver for /schedule,
// the stand-alone conflict detector for /validate, and the sort-only pass
// for /optimize. It never persists anything; every call solves (or checks)
// fresh, with an optional cache in front of the solve path.
type ScheduleGeneratorService struct {
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ScheduleGeneratorConfig
}

// NewScheduleGeneratorService wires the generator's dependencies.
func NewScheduleGeneratorService(
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleGeneratorConfig,
) *ScheduleGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGeneratorService{cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// Generate builds a weekly timetable for the given instance, or returns a
// memoized result for an identical instance seen within the cache TTL.
func (s *ScheduleGeneratorService) Generate(ctx context.Context, req dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule request")
	}

	cacheKey := s.cacheKey(req)
	var cached dto.ScheduleResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		s.logger.Debug("schedule cache hit", zap.String("key", cacheKey))
		return &cached, nil
	}

	days := scheduling.DaysForCount(s.cfg.Days)
	start := time.Now()
	result, err := s.solve(req, days)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	s.metrics.ObserveSolve(result.Outcome, time.Since(start))

	resp := &dto.ScheduleResponse{Statistics: &result.Statistics}
	switch result.Outcome {
	case models.OutcomeOptimal, models.OutcomeFeasible:
		resp.Status = "success"
		resp.Message = "timetable generated"
		resp.Timetable = result.Timetable
	case models.OutcomeInfeasible:
		resp.Status = "infeasible"
		resp.Message = appErrors.ErrInfeasible.Message
	}

	if resp.Status == "success" {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache schedule result", zap.Error(err))
		}
	}

	return resp, nil
}

// solve isolates the call into internal/scheduling so a panic deep in model
// construction or extraction never escapes past the service boundary as a
// bare crash.
func (s *ScheduleGeneratorService) solve(req dto.ScheduleRequest, days []string) (result *scheduling.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during solve", zap.Any("recover", r))
			err = appErrors.ErrInternal
		}
	}()

	return scheduling.Solve(req.Classes, req.Teachers, req.Subjects, req.FixedSlots, days, s.cfg.Periods, scheduling.SolveConfig{
		TimeLimit:   s.cfg.TimeLimit,
		Workers:     s.cfg.Workers,
		OverloadCap: s.cfg.OverloadCap,
	})
}

// Validate runs the stand-alone conflict detector over a supplied timetable.
// It never touches the solver.
func (s *ScheduleGeneratorService) Validate(ctx context.Context, req dto.ValidateRequest) (*dto.ValidateResponse, error) {
	conflicts := scheduling.DetectConflicts(req.Timetable)
	resp := &dto.ValidateResponse{
		Valid:     len(conflicts) == 0,
		Conflicts: conflicts,
	}
	if resp.Valid {
		resp.Message = "no conflicts found"
	} else {
		resp.Message = "conflicts found"
	}
	return resp, nil
}

// Optimize sorts a timetable into canonical (day index, period) order. No
// solver work is performed; this exists for API completeness (SPEC_FULL
// §6.1).
func (s *ScheduleGeneratorService) Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error) {
	cells := make([]models.ScheduleCell, len(req.Timetable))
	copy(cells, req.Timetable)

	scheduling.SortCells(cells, scheduling.DaysForCount(s.cfg.Days))

	return &dto.OptimizeResponse{Timetable: cells, Message: "timetable sorted"}, nil
}

// cacheKey hashes the normalized request payload so identical instances
// (down to field order via JSON marshaling) share a cache entry.
func (s *ScheduleGeneratorService) cacheKey(req dto.ScheduleRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return "schedule:unkeyed"
	}
	sum := sha256.Sum256(payload)
	return "schedule:" + hex.EncodeToString(sum[:])
}
