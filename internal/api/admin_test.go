package api

import (
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"

	"hirehub/internal/domain"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	c := qt.New(t)
	srv := newTestServer(t)
	_, userToken := srv.account(c, "ada", domain.RoleUser)
	_, recToken := srv.account(c, "rec", domain.RoleRecruiter)

	for _, bearer := range []string{userToken, recToken} {
		w := srv.do(http.MethodGet, "/api/admin/users", bearer, nil)
		c.Assert(w.Code, qt.Equals, http.StatusForbidden)
		c.Assert(msgOf(c, w), qt.Equals, "Access denied")
	}

	w := srv.do(http.MethodGet, "/api/admin/users", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
}

func TestAdminManagesUsers(t *testing.T) {
	c := qt.New(t)
	srv := newTestServer(t)
	_, adminToken := srv.account(c, "root", domain.RoleAdmin)
	adaID, _ := srv.account(c, "ada", domain.RoleUser)

	w := srv.do(http.MethodPost, "/api/admin/create_recruiter", adminToken, map[string]string{
		"username": "rec",
		"email":    "rec@example.com",
		"password": "hunter2",
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	var created userEnvelope
	decode(c, w, &created)
	c.Assert(created.User.Role, qt.Equals, domain.RoleRecruiter)

	w = srv.do(http.MethodPost, "/api/admin/create_recruiter", adminToken, map[string]string{
		"username": "boss",
		"email":    "boss@example.com",
		"password": "x",
		"role":     "overlord",
	})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(msgOf(c, w), qt.Equals, "Invalid role")

	w = srv.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var users []domain.User
	decode(c, w, &users)
	c.Assert(users, qt.HasLen, 3)

	w = srv.do(http.MethodPut, "/api/admin/user/edit/"+itoa(adaID), adminToken, map[string]string{
		"role":     "recruiter",
		"password": "new-secret",
	})
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var updated userEnvelope
	decode(c, w, &updated)
	c.Assert(updated.User.Role, qt.Equals, domain.RoleRecruiter)

	w = srv.do(http.MethodPost, "/api/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "new-secret",
	})
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = srv.do(http.MethodDelete, "/api/admin/user/"+itoa(adaID), adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = srv.do(http.MethodGet, "/api/admin/user/"+itoa(adaID), adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
	c.Assert(msgOf(c, w), qt.Equals, "User not found")
}

func TestAdminAuditLogs(t *testing.T) {
	c := qt.New(t)
	srv := newTestServer(t)
	_, adminToken := srv.account(c, "root", domain.RoleAdmin)
	recID, recToken := srv.account(c, "rec", domain.RoleRecruiter)
	job := createJob(c, srv, recID, recToken, "Go Engineer")

	w := srv.do(http.MethodGet, "/api/admin/audit-logs?page=1&page_size=2", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	var logs []domain.AuditLog
	decode(c, w, &logs)
	c.Assert(logs, qt.HasLen, 2)
	c.Assert(logs[0].EntityType, qt.Equals, domain.EntityTypeJob)

	w = srv.do(http.MethodGet, "/api/admin/audit-logs/job/"+itoa(job.ID), adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	decode(c, w, &logs)
	c.Assert(logs, qt.HasLen, 1)
	c.Assert(logs[0].Action, qt.Equals, domain.ActionTypeCreate)

	w = srv.do(http.MethodGet, "/api/admin/audit-logs/invoice/1", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	w = srv.do(http.MethodGet, "/api/admin/audit-logs?page_size=500", adminToken, nil)
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
}
