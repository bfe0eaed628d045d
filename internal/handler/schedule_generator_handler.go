package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/summit-sms/timetable-engine/internal/dto"
	appErrors "github.com/summit-sms/timetable-engine/pkg/errors"
	"github.com/summit-sms/timetable-engine/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.ScheduleRequest) (*dto.ScheduleResponse, error)
	Validate(ctx context.Context, req dto.ValidateRequest) (*dto.ValidateResponse, error)
	Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error)
}

// ScheduleGeneratorHandler exposes the scheduling endpoints: generate,
// validate, optimize.
type ScheduleGeneratorHandler struct {
	service scheduleGenerator
}

// NewScheduleGeneratorHandler constructs the handler.
func NewScheduleGeneratorHandler(svc scheduleGenerator) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Description Builds a timetable over classes, teachers and subjects, honoring hard constraints and minimizing overload/period-bias cost
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleRequest true "Schedule request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleGeneratorHandler) Generate(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.Status == "infeasible" {
		status = http.StatusBadRequest
	}
	response.JSON(c, status, result)
}

// Validate godoc
// @Summary Check a timetable for resource conflicts
// @Description Runs the stand-alone conflict detector over a supplied timetable; never invokes the solver
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.ValidateRequest true "Validate request"
// @Success 200 {object} response.Envelope
// @Router /validate [post]
func (h *ScheduleGeneratorHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validate payload"))
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Optimize godoc
// @Summary Sort a timetable into canonical day/period order
// @Description Exists for API completeness; performs no solver work
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.OptimizeRequest true "Optimize request"
// @Success 200 {object} response.Envelope
// @Router /optimize [post]
func (h *ScheduleGeneratorHandler) Optimize(c *gin.Context) {
	var req dto.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid optimize payload"))
		return
	}

	result, err := h.service.Optimize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
