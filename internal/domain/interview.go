package domain

import (
	"context"
	"time"
)

type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

type Interview struct {
	ID            int64           `json:"id"`
	ApplicationID int64           `json:"applicationId"`
	Date          time.Time       `json:"date"`
	Status        InterviewStatus `json:"status"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
}

type InterviewService interface {
	ScheduleInterview(ctx context.Context, applicationID int64, date time.Time) (*Interview, error)
}
