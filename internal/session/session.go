// Package session is the device's auth state: tokens and the cached user
// profile, persisted to a durable client store. Changes are pushed to
// subscribers instead of being polled.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"

	"luxe_haven/internal/domain"
)

// Fixed keys in the durable store.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
)

type Snapshot struct {
	AccessToken   string
	RefreshToken  string
	User          *domain.User
	Authenticated bool
}

type Session struct {
	kv  domain.KV
	log zerolog.Logger

	mu      sync.RWMutex
	access  string
	refresh string
	user    *domain.User

	subMu  sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

func New(kv domain.KV, l zerolog.Logger) *Session {
	return &Session{kv: kv, log: l, subs: map[int]chan Snapshot{}}
}

// Load reads the persisted values. A corrupt profile is dropped, not fatal.
func (s *Session) Load(ctx context.Context) error {
	access, _, err := s.kv.Get(ctx, KeyAccessToken)
	if err != nil {
		return err
	}
	refresh, _, err := s.kv.Get(ctx, KeyRefreshToken)
	if err != nil {
		return err
	}
	raw, ok, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return err
	}
	var u *domain.User
	if ok && raw != "" {
		var tmp domain.User
		if err := json.Unmarshal([]byte(raw), &tmp); err != nil {
			s.log.Warn().Err(err).Msg("dropping unreadable cached user")
			_ = s.kv.Del(ctx, KeyUser)
		} else {
			u = &tmp
		}
	}

	s.mu.Lock()
	s.access, s.refresh, s.user = access, refresh, u
	s.mu.Unlock()
	s.publish()
	return nil
}

func (s *Session) SignIn(ctx context.Context, access, refresh string, u domain.User) error {
	if access == "" {
		return errors.New("session: empty access token")
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.user = &u
	s.mu.Unlock()
	defer s.publish()

	if err := s.kv.Set(ctx, KeyAccessToken, access, 0); err != nil {
		return err
	}
	// a previous user's refresh token must not outlive their session
	if refresh == "" {
		err = s.kv.Del(ctx, KeyRefreshToken)
	} else {
		err = s.kv.Set(ctx, KeyRefreshToken, refresh, 0)
	}
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyUser, string(b), 0)
}

// SetAccessToken is the refresh path: only the access token rotates.
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.access = token
	s.mu.Unlock()
	defer s.publish()
	return s.kv.Set(ctx, KeyAccessToken, token, 0)
}

func (s *Session) SetUser(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	defer s.publish()
	return s.kv.Set(ctx, KeyUser, string(b), 0)
}

// Clear drops all auth state. Memory is cleared even if the store fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.access, s.refresh, s.user = "", "", nil
	s.mu.Unlock()
	defer s.publish()
	return s.kv.Del(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Authenticated needs both a token and a profile, as the navbar did.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != "" && s.user != nil
}

func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.EffectiveRole().IsAdmin()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		AccessToken:   s.access,
		RefreshToken:  s.refresh,
		Authenticated: s.access != "" && s.user != nil,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// TokenExpiry reads exp from the access token without verifying it; the
// API remains the authority on validity.
func (s *Session) TokenExpiry() (time.Time, bool) {
	tok := s.AccessToken()
	if tok == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// RequireRole gates a view. Without a session the device goes to the login
// route; a non-admin on an admin view goes to the dashboard.
func (s *Session) RequireRole(nav domain.Navigator, admin bool) error {
	if !s.Authenticated() {
		nav.Navigate(LoginRoute)
		return domain.ErrLoginRequired
	}
	if admin && !s.IsAdmin() {
		nav.Navigate(DashboardRoute)
		return domain.ErrForbidden
	}
	return nil
}

// Subscribe delivers the current snapshot and every later change. Slow
// readers only ever see the latest snapshot. Call cancel to stop.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	ch <- s.Snapshot()

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) publish() {
	snap := s.Snapshot()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drop the stale value, keep the newest
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
