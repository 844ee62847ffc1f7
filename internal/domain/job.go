package domain

import (
	"context"
	"time"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Type        string    `json:"type,omitempty"`
	Status      JobStatus `json:"status"`
	Salary      *float64  `json:"salary,omitempty"`
	PostedBy    int64     `json:"postedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobSummary is the subset of a job embedded in application listings.
type JobSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Salary      *float64  `json:"salary,omitempty"`
	Status      JobStatus `json:"status"`
	Description string    `json:"description"`
}

type JobUpdate struct {
	Title       *string
	Description *string
	Company     *string
	Location    *string
	Type        *string
	Status      *JobStatus
	Salary      *float64
}

type JobRepository interface {
	FindByID(ctx context.Context, id int64) (*Job, error)
	FindAll(ctx context.Context) ([]*Job, error)
	FindByOwner(ctx context.Context, postedBy int64) ([]*Job, error)
	FindByTitleAndOwner(ctx context.Context, title string, postedBy int64) (*Job, error)
	Create(ctx context.Context, job *Job) error
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobService interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJobByID(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context) ([]*Job, error)
	ListJobsByOwner(ctx context.Context, postedBy int64) ([]*Job, error)
	UpdateJob(ctx context.Context, id int64, update JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, id int64) error
}
