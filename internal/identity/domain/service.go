package domain

import (
	"context"
	"errors"
)

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Service interface {
	// Resolve returns the user for the token with the customer link
	// populated from the full backend record. The "me" projection alone is
	// not trusted because it may omit relational fields.
	Resolve(ctx context.Context, token string) (User, error)

	// Profile returns the plain "me" projection for the profile page.
	Profile(ctx context.Context, token string) (User, error)

	Login(ctx context.Context, req LoginRequest) (Auth, error)
	Register(ctx context.Context, req RegisterRequest) (Auth, error)
}

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrCustomerNotLinked  = errors.New("customer_not_linked")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrBackendUnavailable = errors.New("backend_unavailable")
)
