// internal/adapters/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"luxe_haven/internal/adapters/observability"
	"luxe_haven/internal/domain"
)

const (
	refreshPath = "/users/refresh-token"
	loginRoute  = "/login"
	userAgent   = "luxe-haven-frontdesk/1.0"
)

// Tokens is the slice of the session the client needs.
type Tokens interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Config struct {
	Base      string
	RPS       int
	Timeout   time.Duration
	Tokens    Tokens
	Notifier  domain.Notifier
	Navigator domain.Navigator
	Logger    zerolog.Logger
	// HTTP overrides the default client (tests).
	HTTP *http.Client
}

type Client struct {
	base   string
	hc     *http.Client
	rl     *rate.Limiter
	tokens Tokens
	notify domain.Notifier
	nav    domain.Navigator
	log    zerolog.Logger

	refreshes singleflight.Group
}

func New(cfg Config) (*Client, error) {
	if cfg.Base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if cfg.Tokens == nil || cfg.Notifier == nil || cfg.Navigator == nil {
		return nil, fmt.Errorf("api: tokens, notifier and navigator are required")
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	hc := cfg.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		base:   strings.TrimRight(cfg.Base, "/"),
		hc:     hc,
		rl:     rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
		tokens: cfg.Tokens,
		notify: cfg.Notifier,
		nav:    cfg.Navigator,
		log:    cfg.Logger,
	}, nil
}

// request describes one logical call. route is the metrics label
// ("/rooms/{id}"), path the concrete one.
type request struct {
	method  string
	route   string
	path    string
	query   url.Values
	body    any
	headers map[string]string
}

func isAuthEndpoint(path string) bool {
	for _, p := range []string{"/login", "/signup", "/forgot-password", "/reset-password"} {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// do sends r, refreshing the access token and replaying once on a 401 from a
// protected endpoint. Failures are announced through the notifier except on
// auth endpoints, whose screens show their own messages.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", r.route, err)
		}
		payload = b
	}
	auth := isAuthEndpoint(r.path)

	status, body, err := c.send(ctx, r, payload, c.tokens.AccessToken())
	if err != nil {
		return nil, c.networkFailure(ctx, r, auth, err)
	}

	if status == http.StatusUnauthorized && !auth {
		token, rerr := c.refresh(ctx)
		if rerr != nil {
			if cerr := ctx.Err(); cerr != nil {
				// the caller gave up; the refresh token may still be good
				return nil, cerr
			}
			return nil, c.expire(ctx, rerr)
		}
		status, body, err = c.send(ctx, r, payload, token)
		if err != nil {
			return nil, c.networkFailure(ctx, r, auth, err)
		}
	}

	if status >= 200 && status < 300 {
		return body, nil
	}
	ae := &APIError{Status: status, Message: errorMessage(status, body), Method: r.method, Path: r.path, announced: !auth}
	if !auth {
		c.notify.Error(ae.Message)
	}
	return nil, ae
}

func (c *Client) send(ctx context.Context, r request, payload []byte, token string) (int, []byte, error) {
	u := c.base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(r.route, r.method, 0, time.Since(start))
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	observability.ObserveExternal(r.route, r.method, resp.StatusCode, time.Since(start))
	if err != nil {
		return 0, nil, err
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api")
	return resp.StatusCode, body, nil
}

// refresh exchanges the refresh token for a new access token and persists
// it. Concurrent callers share one exchange, which runs detached from any
// single caller so a cancelled view cannot abort it halfway.
func (c *Client) refresh(ctx context.Context) (string, error) {
	bg := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		token, err := c.exchange(bg)
		observability.ObserveRefresh(err == nil)
		return token, err
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) exchange(ctx context.Context) (string, error) {
	rt := c.tokens.RefreshToken()
	if rt == "" {
		return "", errors.New("no refresh token")
	}
	payload, _ := json.Marshal(map[string]string{"refreshToken": rt})
	status, body, err := c.send(ctx, request{method: http.MethodPost, route: refreshPath, path: refreshPath}, payload, "")
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("refresh: status %d", status)
	}
	token := firstString(decodeMap(body), "token", "accessToken", "data.token", "data.accessToken")
	if token == "" {
		return "", errors.New("refresh: no token in response")
	}
	if err := c.tokens.SetAccessToken(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

func (c *Client) expire(ctx context.Context, cause error) error {
	c.log.Warn().Err(cause).Msg("token refresh failed, signing out")
	if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Error().Err(err).Msg("clear session")
	}
	if c.nav.Current() != loginRoute {
		c.nav.Navigate(loginRoute)
	}
	return fmt.Errorf("%w: %v", domain.ErrSessionExpired, cause)
}

func (c *Client) networkFailure(ctx context.Context, r request, auth bool, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return err
	}
	if !auth {
		c.notify.Error(networkMessage)
	}
	return &networkError{op: r.method + " " + r.path, cause: err, announced: !auth}
}

func errorMessage(status int, body []byte) string {
	if msg := firstString(decodeMap(body), "message", "error"); msg != "" {
		return msg
	}
	return fmt.Sprintf("Request failed with status %d", status)
}
