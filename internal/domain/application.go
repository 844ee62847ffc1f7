package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusHired       ApplicationStatus = "hired"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusInterviewed, ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID        int64             `json:"id"`
	JobID     int64             `json:"jobId"`
	UserID    int64             `json:"userId"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}

// ApplicationView is an application with its job and applicant expanded.
// Job or User is nil when the referenced row no longer exists.
type ApplicationView struct {
	Application
	Job  *JobSummary  `json:"job"`
	User *UserSummary `json:"user"`
}

// TransitionPolicy decides whether an application may move between statuses.
type TransitionPolicy interface {
	Allow(from, to ApplicationStatus) bool
	Name() string
}

// PermissiveTransitions allows every move, including regressions such as
// hired -> applied.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allow(from, to ApplicationStatus) bool { return true }
func (PermissiveTransitions) Name() string                         { return "permissive" }

// StrictTransitions follows the forward-only workflow; hired and rejected
// are terminal. Re-applying the current status is always allowed.
type StrictTransitions struct{}

var strictTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:     {ApplicationStatusInterviewed, ApplicationStatusHired, ApplicationStatusRejected},
	ApplicationStatusInterviewed: {ApplicationStatusHired, ApplicationStatusRejected},
}

func (StrictTransitions) Allow(from, to ApplicationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (StrictTransitions) Name() string { return "strict" }

// ApplicationPolicy groups the hardening switches of the ledger.
type ApplicationPolicy struct {
	Transitions      TransitionPolicy
	VerifyReferences bool
	RejectDuplicates bool
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	FindByID(ctx context.Context, id int64) (*Application, error)
	FindViewByID(ctx context.Context, id int64) (*ApplicationView, error)
	FindAllViews(ctx context.Context) ([]*ApplicationView, error)
	FindViewsByUser(ctx context.Context, userID int64) ([]*ApplicationView, error)
	ExistsForJobAndUser(ctx context.Context, jobID, userID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
	Delete(ctx context.Context, id int64) error
}

type ApplicationService interface {
	Apply(ctx context.Context, jobID, userID int64) (*Application, error)
	SetStatus(ctx context.Context, id int64, status ApplicationStatus) (*Application, error)
	GetApplication(ctx context.Context, id int64) (*ApplicationView, error)
	ListApplications(ctx context.Context) ([]*ApplicationView, error)
	ListUserApplications(ctx context.Context, userID int64) ([]*ApplicationView, error)
	DeleteApplication(ctx context.Context, id int64) error
}
