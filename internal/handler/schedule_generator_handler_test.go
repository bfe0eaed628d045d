package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/summit-sms/timetable-engine/internal/dto"
	"github.com/summit-sms/timetable-engine/internal/models"
	appErrors "github.com/summit-sms/timetable-engine/pkg/errors"
)

type scheduleGeneratorMock struct {
	generateReq  dto.ScheduleRequest
	generateResp *dto.ScheduleResponse
	generateErr  error

	validateReq  dto.ValidateRequest
	validateResp *dto.ValidateResponse
	validateErr  error

	optimizeReq  dto.OptimizeRequest
	optimizeResp *dto.OptimizeResponse
	optimizeErr  error
}

func (m *scheduleGeneratorMock) Generate(ctx context.Context, req dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	m.generateReq = req
	return m.generateResp, m.generateErr
}

func (m *scheduleGeneratorMock) Validate(ctx context.Context, req dto.ValidateRequest) (*dto.ValidateResponse, error) {
	m.validateReq = req
	return m.validateResp, m.validateErr
}

func (m *scheduleGeneratorMock) Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error) {
	m.optimizeReq = req
	return m.optimizeResp, m.optimizeErr
}

func newTestContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestScheduleGeneratorHandlerGenerateSuccess(t *testing.T) {
	mock := &scheduleGeneratorMock{
		generateResp: &dto.ScheduleResponse{Status: "success", Message: "timetable generated"},
	}
	handler := NewScheduleGeneratorHandler(mock)

	payload := []byte(`{"classes":[{"id":"10A","subjects":[]}],"teachers":[{"id":"t1"}],"subjects":[{"id":"math"}]}`)
	c, w := newTestContext(http.MethodPost, "/schedule", payload)

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "10A", mock.generateReq.Classes[0].ID)
}

func TestScheduleGeneratorHandlerGenerateInfeasibleReturnsBadRequest(t *testing.T) {
	mock := &scheduleGeneratorMock{
		generateResp: &dto.ScheduleResponse{Status: "infeasible", Message: appErrors.ErrInfeasible.Message},
	}
	handler := NewScheduleGeneratorHandler(mock)

	payload := []byte(`{"classes":[{"id":"10A","subjects":[]}],"teachers":[{"id":"t1"}],"subjects":[{"id":"math"}]}`)
	c, w := newTestContext(http.MethodPost, "/schedule", payload)

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorHandlerGenerateMalformedBody(t *testing.T) {
	handler := NewScheduleGeneratorHandler(&scheduleGeneratorMock{})
	c, w := newTestContext(http.MethodPost, "/schedule", []byte(`{"classes":`))

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorHandlerValidateReportsConflicts(t *testing.T) {
	mock := &scheduleGeneratorMock{
		validateResp: &dto.ValidateResponse{
			Valid:     false,
			Conflicts: []models.Conflict{{Type: models.ConflictTeacherDoubleBooking}},
			Message:   "conflicts found",
		},
	}
	handler := NewScheduleGeneratorHandler(mock)

	payload := []byte(`{"timetable":[{"classId":"10A","day":"Monday","period":1,"subjectId":"math","teacherId":"t1"}]}`)
	c, w := newTestContext(http.MethodPost, "/validate", payload)

	handler.Validate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mock.validateReq.Timetable, 1)
	require.Contains(t, w.Body.String(), string(models.ConflictTeacherDoubleBooking))
}

func TestScheduleGeneratorHandlerOptimizeForwardsTimetable(t *testing.T) {
	mock := &scheduleGeneratorMock{
		optimizeResp: &dto.OptimizeResponse{Message: "timetable sorted"},
	}
	handler := NewScheduleGeneratorHandler(mock)

	payload := []byte(`{"timetable":[{"classId":"10A","day":"Tuesday","period":1,"subjectId":"math","teacherId":"t1"}]}`)
	c, w := newTestContext(http.MethodPost, "/optimize", payload)

	handler.Optimize(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Tuesday", mock.optimizeReq.Timetable[0].Day)
}
