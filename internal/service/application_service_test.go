package service

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"hirehub/internal/domain"
)

func TestApplyDefaultsToNoReferenceChecks(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).applications(domain.ApplicationPolicy{})
	ctx := context.Background()

	app, err := svc.Apply(ctx, 404, 405)
	c.Assert(err, qt.IsNil)
	c.Assert(app.Status, qt.Equals, domain.ApplicationStatusApplied)
	c.Assert(app.AppliedAt.IsZero(), qt.IsFalse)

	_, err = svc.Apply(ctx, 404, 405)
	c.Assert(err, qt.IsNil)

	views, err := svc.ListUserApplications(ctx, 405)
	c.Assert(err, qt.IsNil)
	c.Assert(views, qt.HasLen, 2)
	c.Assert(views[0].Job, qt.IsNil)
	c.Assert(views[0].User, qt.IsNil)
}

func TestApplyVerifiesReferences(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	svc := env.applications(domain.ApplicationPolicy{VerifyReferences: true})
	ctx := context.Background()

	user, err := env.users().Register(ctx, "ada", "ada@example.com", "pw")
	c.Assert(err, qt.IsNil)

	_, err = svc.Apply(ctx, 404, user.User.ID)
	c.Assert(errors.Is(err, domain.ErrJobNotFound), qt.IsTrue)

	job := newJob("Backend", 1)
	c.Assert(env.jobs().CreateJob(ctx, job), qt.IsNil)

	_, err = svc.Apply(ctx, job.ID, 999)
	c.Assert(errors.Is(err, domain.ErrUserNotFound), qt.IsTrue)

	_, err = svc.Apply(ctx, job.ID, user.User.ID)
	c.Assert(err, qt.IsNil)
}

func TestApplyRejectsDuplicates(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).applications(domain.ApplicationPolicy{RejectDuplicates: true})
	ctx := context.Background()

	_, err := svc.Apply(ctx, 1, 2)
	c.Assert(err, qt.IsNil)

	_, err = svc.Apply(ctx, 1, 2)
	c.Assert(errors.Is(err, domain.ErrDuplicateApplication), qt.IsTrue)

	_, err = svc.Apply(ctx, 2, 2)
	c.Assert(err, qt.IsNil)
}

func TestSetStatusPermissiveAllowsRegression(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).applications(domain.ApplicationPolicy{})
	ctx := context.Background()

	app, err := svc.Apply(ctx, 1, 2)
	c.Assert(err, qt.IsNil)

	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationStatusHired,
		domain.ApplicationStatusApplied,
		domain.ApplicationStatusRejected,
	} {
		got, err := svc.SetStatus(ctx, app.ID, status)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Status, qt.Equals, status)
	}
}

func TestSetStatusStrict(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).applications(domain.ApplicationPolicy{Transitions: domain.StrictTransitions{}})
	ctx := context.Background()

	app, err := svc.Apply(ctx, 1, 2)
	c.Assert(err, qt.IsNil)

	_, err = svc.SetStatus(ctx, app.ID, domain.ApplicationStatusInterviewed)
	c.Assert(err, qt.IsNil)
	_, err = svc.SetStatus(ctx, app.ID, domain.ApplicationStatusHired)
	c.Assert(err, qt.IsNil)
	_, err = svc.SetStatus(ctx, app.ID, domain.ApplicationStatusHired)
	c.Assert(err, qt.IsNil)

	_, err = svc.SetStatus(ctx, app.ID, domain.ApplicationStatusApplied)
	c.Assert(errors.Is(err, domain.ErrInvalidTransition), qt.IsTrue)

	view, err := svc.GetApplication(ctx, app.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(view.Status, qt.Equals, domain.ApplicationStatusHired)
}

func TestStrictTransitionTable(t *testing.T) {
	c := qt.New(t)
	strict := domain.StrictTransitions{}

	tests := []struct {
		from, to domain.ApplicationStatus
		allowed  bool
	}{
		{domain.ApplicationStatusApplied, domain.ApplicationStatusInterviewed, true},
		{domain.ApplicationStatusApplied, domain.ApplicationStatusHired, true},
		{domain.ApplicationStatusApplied, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusInterviewed, domain.ApplicationStatusHired, true},
		{domain.ApplicationStatusInterviewed, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusInterviewed, domain.ApplicationStatusApplied, false},
		{domain.ApplicationStatusHired, domain.ApplicationStatusRejected, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusInterviewed, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusRejected, true},
	}
	for _, test := range tests {
		c.Check(strict.Allow(test.from, test.to), qt.Equals, test.allowed, qt.Commentf("%s -> %s", test.from, test.to))
	}
}

func TestSetStatusErrors(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).applications(domain.ApplicationPolicy{})
	ctx := context.Background()

	app, err := svc.Apply(ctx, 1, 2)
	c.Assert(err, qt.IsNil)

	_, err = svc.SetStatus(ctx, app.ID, "shortlisted")
	c.Assert(errors.Is(err, domain.ErrInvalidApplicationStatus), qt.IsTrue)

	c.Assert(svc.DeleteApplication(ctx, app.ID), qt.IsNil)

	_, err = svc.SetStatus(ctx, app.ID, domain.ApplicationStatusHired)
	c.Assert(errors.Is(err, domain.ErrApplicationNotFound), qt.IsTrue)

	c.Assert(errors.Is(svc.DeleteApplication(ctx, app.ID), domain.ErrApplicationNotFound), qt.IsTrue)

	_, err = svc.GetApplication(ctx, app.ID)
	c.Assert(errors.Is(err, domain.ErrApplicationNotFound), qt.IsTrue)
}

func TestHiringScenario(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.users()
	apps := env.applications(domain.ApplicationPolicy{})

	applicant, err := users.Register(ctx, "applicant", "a@example.com", "pw")
	c.Assert(err, qt.IsNil)
	recruiter, err := users.CreateUserWithRole(ctx, "recruiter", "r@example.com", "pw", domain.RoleRecruiter)
	c.Assert(err, qt.IsNil)

	job := newJob("Backend", recruiter.User.ID)
	c.Assert(env.jobs().CreateJob(ctx, job), qt.IsNil)

	app, err := apps.Apply(ctx, job.ID, applicant.User.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(app.Status, qt.Equals, domain.ApplicationStatusApplied)

	_, err = apps.SetStatus(ctx, app.ID, domain.ApplicationStatusHired)
	c.Assert(err, qt.IsNil)

	view, err := apps.GetApplication(ctx, app.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(view.Status, qt.Equals, domain.ApplicationStatusHired)
	c.Assert(view.Job.Title, qt.Equals, "Backend")
	c.Assert(view.User.Email, qt.Equals, "a@example.com")

	c.Assert(users.DeleteUser(ctx, applicant.User.ID), qt.IsNil)

	views, err := apps.ListApplications(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(views, qt.HasLen, 1)
	c.Assert(views[0].User, qt.IsNil)
	c.Assert(views[0].Job, qt.Not(qt.IsNil))
	c.Assert(views[0].Status, qt.Equals, domain.ApplicationStatusHired)
}

func TestScheduleInterview(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()
	date := time.Date(2026, 11, 3, 10, 0, 0, 0, time.UTC)

	interview, err := env.interviews(false).ScheduleInterview(ctx, 77, date)
	c.Assert(err, qt.IsNil)
	c.Assert(interview.Status, qt.Equals, domain.InterviewStatusScheduled)
	c.Assert(interview.Date.Equal(date), qt.IsTrue)

	_, err = env.interviews(false).ScheduleInterview(ctx, 77, time.Time{})
	c.Assert(errors.Is(err, domain.ErrInvalidInterviewDate), qt.IsTrue)

	_, err = env.interviews(true).ScheduleInterview(ctx, 77, date)
	c.Assert(errors.Is(err, domain.ErrApplicationNotFound), qt.IsTrue)

	app, err := env.applications(domain.ApplicationPolicy{}).Apply(ctx, 1, 1)
	c.Assert(err, qt.IsNil)
	_, err = env.interviews(true).ScheduleInterview(ctx, app.ID, date)
	c.Assert(err, qt.IsNil)

	logs, err := env.auditSvc.GetAllLogs(ctx, 1, 50)
	c.Assert(err, qt.IsNil)
	var interviews int
	for _, l := range logs {
		if l.EntityType == domain.EntityTypeInterview {
			interviews++
		}
	}
	c.Assert(interviews, qt.Equals, 2)
}
