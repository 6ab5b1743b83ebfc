package strapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
)

func (c *Client) Me(ctx context.Context, token string) (identitydomain.User, error) {
	var user identitydomain.User
	if err := c.do(ctx, http.MethodGet, "users/me", token, nil, &user); err != nil {
		switch {
		case isStatus(err, http.StatusUnauthorized, http.StatusForbidden):
			return identitydomain.User{}, identitydomain.ErrUnauthenticated
		case isTransport(err):
			return identitydomain.User{}, identitydomain.ErrBackendUnavailable
		default:
			return identitydomain.User{}, err
		}
	}
	return user, nil
}

func (c *Client) User(ctx context.Context, id int) (identitydomain.User, error) {
	var user identitydomain.User
	path := fmt.Sprintf("users/%d?populate=stripe_customer", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &user); err != nil {
		if isTransport(err) {
			return identitydomain.User{}, identitydomain.ErrBackendUnavailable
		}
		return identitydomain.User{}, err
	}
	return user, nil
}

func (c *Client) UsersByEmail(ctx context.Context, email string) ([]identitydomain.User, error) {
	return c.usersByFilter(ctx, "email", email)
}

func (c *Client) UsersByUsername(ctx context.Context, username string) ([]identitydomain.User, error) {
	return c.usersByFilter(ctx, "username", username)
}

func (c *Client) usersByFilter(ctx context.Context, field, value string) ([]identitydomain.User, error) {
	var users []identitydomain.User
	path := fmt.Sprintf("users?filters[%s][$eq]=%s", field, url.QueryEscape(value))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &users); err != nil {
		if isTransport(err) {
			return nil, identitydomain.ErrBackendUnavailable
		}
		return nil, err
	}
	return users, nil
}

func (c *Client) Login(ctx context.Context, identifier, password string) (identitydomain.Auth, error) {
	body := map[string]string{"identifier": identifier, "password": password}
	var auth identitydomain.Auth
	if err := c.do(ctx, http.MethodPost, "auth/local", "", body, &auth); err != nil {
		switch {
		case isStatus(err, http.StatusBadRequest, http.StatusUnauthorized):
			return identitydomain.Auth{}, identitydomain.ErrInvalidCredentials
		case isTransport(err):
			return identitydomain.Auth{}, identitydomain.ErrBackendUnavailable
		default:
			return identitydomain.Auth{}, err
		}
	}
	return auth, nil
}

func (c *Client) Register(ctx context.Context, email, username, password string) (identitydomain.Auth, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var auth identitydomain.Auth
	if err := c.do(ctx, http.MethodPost, "auth/local/register", "", body, &auth); err != nil {
		switch {
		case isStatus(err, http.StatusBadRequest):
			return identitydomain.Auth{}, identitydomain.ErrUserExists
		case isTransport(err):
			return identitydomain.Auth{}, identitydomain.ErrBackendUnavailable
		default:
			return identitydomain.Auth{}, err
		}
	}
	return auth, nil
}
