package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// TokenKey is the fixed key the access token is persisted under.
const TokenKey = "hb_access_token"

var (
	// ErrNoToken means no usable access token is available.
	ErrNoToken = errors.New("auth: no access token")

	// ErrTokenExpired means the persisted token carries an exp claim in the past.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrNoToken)
)

// Session owns the persisted access token shared by every authorized call.
// Its lifecycle is NewSession, Authenticate, Close.
type Session struct {
	store  Store
	now    func() time.Time
	logger zerolog.Logger
}

// NewSession creates a session over store.
func NewSession(store Store, logger zerolog.Logger) *Session {
	return &Session{
		store:  store,
		now:    time.Now,
		logger: logger.With().Str("component", "auth-session").Logger(),
	}
}

// WithClock overrides the clock used for expiry checks.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Authenticate persists token as the session credential.
func (s *Session) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist access token")
		return fmt.Errorf("failed to persist access token: %w", err)
	}
	s.logger.Debug().Msg("access token persisted")
	return nil
}

// Token returns the persisted token. Tokens that parse as JWTs are checked
// for expiry; anything else is treated as opaque.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, TokenKey)
	if errors.Is(err, ErrNotFound) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}

	claims, ok := parseClaims(token)
	if ok && claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		s.logger.Info().Time("expired_at", claims.ExpiresAt.Time).Msg("access token expired")
		return "", ErrTokenExpired
	}
	return token, nil
}

// Subject returns the sub claim of the current token, if it has one.
func (s *Session) Subject(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", err
	}
	claims, ok := parseClaims(token)
	if !ok {
		return "", nil
	}
	return claims.Subject, nil
}

// IsAuthenticated reports whether a usable token is present.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

// Close discards the persisted token.
func (s *Session) Close(ctx context.Context) error {
	if err := s.store.Delete(ctx, TokenKey); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete access token")
		return fmt.Errorf("failed to delete access token: %w", err)
	}
	s.logger.Debug().Msg("access token cleared")
	return nil
}

// parseClaims reads JWT claims without verifying the signature; the
// server remains the authority on validity.
func parseClaims(token string) (*jwt.RegisteredClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
