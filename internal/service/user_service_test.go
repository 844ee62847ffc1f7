package service

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/crypto/bcrypt"

	"hirehub/internal/domain"
)

func TestRegister(t *testing.T) {
	c := qt.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.users().Register(ctx, "ada", " Ada@Example.com ", "s3cret")
	c.Assert(err, qt.IsNil)
	c.Assert(res.User.Role, qt.Equals, domain.RoleUser)
	c.Assert(res.User.Email, qt.Equals, "ada@example.com")
	c.Assert(res.User.PasswordHash, qt.Not(qt.Equals), "s3cret")
	c.Assert(bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("s3cret")), qt.IsNil)

	claims, err := env.tokens.Parse(res.Token)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.UserID, qt.Equals, res.User.ID)
	c.Assert(claims.Role, qt.Equals, domain.RoleUser)

	logs, err := env.auditSvc.GetEntityLogs(ctx, domain.EntityTypeUser, res.User.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(logs, qt.HasLen, 1)
	c.Assert(logs[0].Action, qt.Equals, domain.ActionTypeCreate)
}

func TestRegisterTwiceIsConflict(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).users()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "pw")
	c.Assert(err, qt.IsNil)

	_, err = svc.Register(ctx, "someone else", "ada@example.com", "other")
	c.Assert(errors.Is(err, domain.ErrUserAlreadyExists), qt.IsTrue)
}

func TestRegisterRequiresFields(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).users()

	_, err := svc.Register(context.Background(), "", "a@example.com", "pw")
	c.Assert(errors.Is(err, domain.ErrMissingField), qt.IsTrue)

	_, err = svc.Register(context.Background(), "ada", "a@example.com", "")
	c.Assert(errors.Is(err, domain.ErrMissingField), qt.IsTrue)
}

func TestAuthenticateHidesWhichCredentialFailed(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).users()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "right")
	c.Assert(err, qt.IsNil)

	res, err := svc.Authenticate(ctx, "ada@example.com", "right")
	c.Assert(err, qt.IsNil)
	c.Assert(res.Token, qt.Not(qt.Equals), "")

	_, wrongPassword := svc.Authenticate(ctx, "ada@example.com", "wrong")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@example.com", "right")
	c.Assert(wrongPassword, qt.Equals, domain.ErrInvalidCredentials)
	c.Assert(unknownEmail, qt.Equals, domain.ErrInvalidCredentials)
}

func TestCreateUserWithRole(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).users()
	ctx := context.Background()

	res, err := svc.CreateUserWithRole(ctx, "rita", "rita@example.com", "pw", "")
	c.Assert(err, qt.IsNil)
	c.Assert(res.User.Role, qt.Equals, domain.RoleRecruiter)

	_, err = svc.CreateUserWithRole(ctx, "rita", "rita@example.com", "pw", domain.RoleAdmin)
	c.Assert(errors.Is(err, domain.ErrUserAlreadyExists), qt.IsTrue)

	_, err = svc.CreateUserWithRole(ctx, "x", "x@example.com", "pw", "superuser")
	c.Assert(errors.Is(err, domain.ErrInvalidRole), qt.IsTrue)
}

func TestUpdateUser(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).users()
	ctx := context.Background()

	ada, err := svc.Register(ctx, "ada", "ada@example.com", "pw")
	c.Assert(err, qt.IsNil)
	_, err = svc.Register(ctx, "bob", "bob@example.com", "pw")
	c.Assert(err, qt.IsNil)

	taken := "bob@example.com"
	_, err = svc.UpdateUser(ctx, ada.User.ID, domain.UserUpdate{Email: &taken})
	c.Assert(errors.Is(err, domain.ErrUserAlreadyExists), qt.IsTrue)

	name := "lovelace"
	skills := []string{" go ", "", "sql"}
	role := domain.RoleRecruiter
	password := "new-password"
	updated, err := svc.UpdateUser(ctx, ada.User.ID, domain.UserUpdate{
		Username: &name,
		Skills:   &skills,
		Role:     &role,
		Password: &password,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Username, qt.Equals, "lovelace")
	c.Assert(updated.Skills, qt.DeepEquals, []string{"go", "sql"})
	c.Assert(updated.Role, qt.Equals, domain.RoleRecruiter)

	_, err = svc.Authenticate(ctx, "ada@example.com", "new-password")
	c.Assert(err, qt.IsNil)

	bad := domain.Role("owner")
	_, err = svc.UpdateUser(ctx, ada.User.ID, domain.UserUpdate{Role: &bad})
	c.Assert(errors.Is(err, domain.ErrInvalidRole), qt.IsTrue)

	_, err = svc.UpdateUser(ctx, 999, domain.UserUpdate{Username: &name})
	c.Assert(errors.Is(err, domain.ErrUserNotFound), qt.IsTrue)
}

func TestDeleteUser(t *testing.T) {
	c := qt.New(t)
	svc := newTestEnv(t).users()
	ctx := context.Background()

	res, err := svc.Register(ctx, "ada", "ada@example.com", "pw")
	c.Assert(err, qt.IsNil)

	c.Assert(svc.DeleteUser(ctx, res.User.ID), qt.IsNil)

	_, err = svc.GetUserByID(ctx, res.User.ID)
	c.Assert(errors.Is(err, domain.ErrUserNotFound), qt.IsTrue)

	err = svc.DeleteUser(ctx, res.User.ID)
	c.Assert(errors.Is(err, domain.ErrUserNotFound), qt.IsTrue)
}
