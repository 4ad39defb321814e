package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "session"

// DefaultTTL matches the lifetime of the browser session cookie.
const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// Actor is the authenticated player behind a request. The zero value is anonymous.
type Actor struct {
	PlayerID int64
}

// Authenticated reports whether the request carried a valid session.
func (a Actor) Authenticated() bool {
	return a.PlayerID > 0
}

type contextKey struct{}

// WithActor returns a copy of ctx carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// FromContext returns the actor stored in ctx, or an anonymous actor.
func FromContext(ctx context.Context) Actor {
	actor, _ := ctx.Value(contextKey{}).(Actor)
	return actor
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager. A zero ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token whose subject is the player id.
func (m *Manager) Issue(playerID int64) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(playerID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses a token and returns the actor it was issued for.
func (m *Manager) Verify(token string) (Actor, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	playerID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || playerID <= 0 {
		return Actor{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return Actor{PlayerID: playerID}, nil
}

// Cookie builds the session cookie for a player.
func (m *Manager) Cookie(playerID int64) (*http.Cookie, error) {
	token, err := m.Issue(playerID)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// FromRequest verifies the session cookie of r. Requests without a cookie are anonymous.
func (m *Manager) FromRequest(r *http.Request) (Actor, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Actor{}, nil
	}
	return m.Verify(cookie.Value)
}
