package token

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/golang-jwt/jwt/v5"

	"hirehub/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	c := qt.New(t)
	m := NewManager("secret", time.Hour)

	raw, err := m.Issue(&domain.User{ID: 7, Role: domain.RoleRecruiter})
	c.Assert(err, qt.IsNil)

	claims, err := m.Parse(raw)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.UserID, qt.Equals, int64(7))
	c.Assert(claims.Role, qt.Equals, domain.RoleRecruiter)
	c.Assert(claims.Subject, qt.Equals, "7")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	c := qt.New(t)

	raw, err := NewManager("one", time.Hour).Issue(&domain.User{ID: 1, Role: domain.RoleUser})
	c.Assert(err, qt.IsNil)

	_, err = NewManager("two", time.Hour).Parse(raw)
	c.Assert(errors.Is(err, ErrInvalidToken), qt.IsTrue)
}

func TestParseRejectsExpired(t *testing.T) {
	c := qt.New(t)
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, err := m.Issue(&domain.User{ID: 1, Role: domain.RoleUser})
	c.Assert(err, qt.IsNil)

	m.now = time.Now
	_, err = m.Parse(raw)
	c.Assert(errors.Is(err, ErrInvalidToken), qt.IsTrue)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	c := qt.New(t)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 1, Role: domain.RoleAdmin}).SignedString([]byte("secret"))
	c.Assert(err, qt.IsNil)

	_, err = NewManager("secret", time.Hour).Parse(raw)
	c.Assert(errors.Is(err, ErrInvalidToken), qt.IsTrue)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	c := qt.New(t)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, Role: "root"}).SignedString([]byte("secret"))
	c.Assert(err, qt.IsNil)

	_, err = NewManager("secret", time.Hour).Parse(raw)
	c.Assert(errors.Is(err, ErrInvalidToken), qt.IsTrue)
}
