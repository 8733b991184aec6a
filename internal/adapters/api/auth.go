package api

import (
	"context"
	"net/http"
	"net/url"

	"luxe_haven/internal/domain"
)

var _ domain.AuthAPI = (*Client)(nil)

func (c *Client) Login(ctx context.Context, cr domain.Credentials) (domain.AuthResult, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/users/login", path: "/users/login", body: cr})
	if err != nil {
		return domain.AuthResult{}, err
	}
	return authResult(body)
}

func (c *Client) Signup(ctx context.Context, in domain.SignupInput) (domain.AuthResult, error) {
	body, err := c.do(ctx, request{method: http.MethodPost, route: "/users/signup", path: "/users/signup", body: in})
	if err != nil {
		return domain.AuthResult{}, err
	}
	return authResult(body)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/users/forgot-password",
		path:   "/users/forgot-password",
		body:   map[string]string{"email": email},
	})
	return err
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPatch,
		route:  "/users/reset-password/{token}",
		path:   "/users/reset-password/" + url.PathEscape(token),
		body:   map[string]string{"password": password},
	})
	return err
}

func authResult(body []byte) (domain.AuthResult, error) {
	m := decodeMap(body)
	out := domain.AuthResult{
		AccessToken:  firstString(m, "token", "accessToken", "data.token", "data.accessToken"),
		RefreshToken: firstString(m, "refreshToken", "data.refreshToken"),
	}
	u, err := unwrapOne[domain.User](body, "user")
	if err == nil {
		out.User = u
	}
	if out.AccessToken == "" {
		return out, domain.ErrUnauthorized
	}
	return out, nil
}
