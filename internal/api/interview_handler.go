package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type InterviewHandler struct {
	service domain.InterviewService
	logger  logger.Logger
}

type scheduleRequest struct {
	ApplicationID int64  `json:"applicationId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time"`
}

func NewInterviewHandler(service domain.InterviewService, logger logger.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger,
	}
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req scheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := parseInterviewDate(req.Date, req.Time)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	interview, err := h.service.ScheduleInterview(c.Request.Context(), req.ApplicationID, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Interview scheduled successfully", "interview": interview})
}

// parseInterviewDate accepts a full RFC 3339 timestamp, or a calendar date
// with an optional HH:MM clock time interpreted as UTC.
func parseInterviewDate(date, clock string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, nil
	}

	layout, value := "2006-01-02", date
	if clock != "" {
		layout, value = "2006-01-02 15:04", date+" "+clock
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q %q: %w", date, clock, domain.ErrInvalidInterviewDate)
	}
	return t, nil
}
