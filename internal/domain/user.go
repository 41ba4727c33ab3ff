package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleJobSeeker   = "JOB_SEEKER"
	RoleJobProvider = "JOB_PROVIDER"
	RoleAdmin       = "ADMIN"
)

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// AuthResult is returned on successful login/registration
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type AuthUsecase interface {
	Register(ctx context.Context, fullName, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
