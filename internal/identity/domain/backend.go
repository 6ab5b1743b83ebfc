package domain

import "context"

// Backend is the content-backend surface the identity service depends on.
type Backend interface {
	// Me authenticates with the user's own token.
	Me(ctx context.Context, token string) (User, error)
	// User fetches the full record, including the customer relation, with
	// the service credential.
	User(ctx context.Context, id int) (User, error)

	UsersByEmail(ctx context.Context, email string) ([]User, error)
	UsersByUsername(ctx context.Context, username string) ([]User, error)

	Login(ctx context.Context, identifier, password string) (Auth, error)
	Register(ctx context.Context, email, username, password string) (Auth, error)
}
