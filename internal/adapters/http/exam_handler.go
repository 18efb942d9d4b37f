package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/infrastructure/config"
	"github.com/pruefungsplaner/core/internal/infrastructure/logger"
	"github.com/pruefungsplaner/core/internal/ports"
)

// ExamHandler handles exam and calendar requests
type ExamHandler struct {
	examService ports.ExamService
	calendarCfg config.CalendarConfig
	logger      *logger.Logger
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examService ports.ExamService, calendarCfg config.CalendarConfig, logger *logger.Logger) *ExamHandler {
	return &ExamHandler{
		examService: examService,
		calendarCfg: calendarCfg,
		logger:      logger,
	}
}

// ListExams returns all exam records of the authenticated user
func (h *ExamHandler) ListExams(c echo.Context) error {
	exams, err := h.examService.ListExams(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return examError(err)
	}
	return c.JSON(http.StatusOK, exams)
}

// CreateExam records a new exam
func (h *ExamHandler) CreateExam(c echo.Context) error {
	var req ports.ExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	exam, err := h.examService.CreateExam(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		h.logger.Error("Create exam failed", "error", err)
		return examError(err)
	}

	return c.JSON(http.StatusCreated, exam)
}

// UpdateExam replaces the record with the given id
func (h *ExamHandler) UpdateExam(c echo.Context) error {
	var req ports.ExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	exam, err := h.examService.UpdateExam(c.Request().Context(), getUserIDFromContext(c), c.Param("id"), req)
	if err != nil {
		h.logger.Error("Update exam failed", "error", err, "exam_id", c.Param("id"))
		return examError(err)
	}

	return c.JSON(http.StatusOK, exam)
}

// DeleteExam removes the record with the given id
func (h *ExamHandler) DeleteExam(c echo.Context) error {
	err := h.examService.DeleteExam(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.logger.Error("Delete exam failed", "error", err, "exam_id", c.Param("id"))
		return examError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Upcoming returns the exams inside the configured window, soonest first.
// ?days overrides the window; -1 lifts the upper bound.
func (h *ExamHandler) Upcoming(c echo.Context) error {
	windowDays := h.calendarCfg.WindowDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < -1 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be -1 or a non-negative integer")
		}
		windowDays = parsed
	}

	today := entities.DateOf(time.Now())
	exams, err := h.examService.Upcoming(c.Request().Context(), getUserIDFromContext(c), today, windowDays)
	if err != nil {
		return examError(err)
	}

	return c.JSON(http.StatusOK, exams)
}

// MonthView returns the month grid with the exams of each day.
// ?start=sunday|monday overrides the configured week start.
func (h *ExamHandler) MonthView(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month, want 1-12")
	}

	weekdayCfg := h.calendarCfg
	if start := c.QueryParam("start"); start != "" {
		weekdayCfg.FirstWeekday = start
	}
	firstWeekday, err := weekdayCfg.ParseFirstWeekday()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be sunday or monday")
	}

	view, err := h.examService.MonthView(c.Request().Context(), getUserIDFromContext(c), year, time.Month(month), firstWeekday)
	if err != nil {
		return examError(err)
	}

	return c.JSON(http.StatusOK, view)
}
