package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleUser      Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              Role      `json:"role"`
	Skills            []string  `json:"skills"`
	Resume            string    `json:"resume,omitempty"`
	ResumeContentType string    `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// UserSummary is the subset of a user embedded in application listings.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Skills   *[]string
	Password *string
	Role     *Role
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string
	User  *User
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	UpdateResume(ctx context.Context, id int64, path, contentType string) error
	Delete(ctx context.Context, id int64) error
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	CreateUserWithRole(ctx context.Context, username, email, password string, role Role) (*AuthResult, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
