// Package session derives the signed-in identity from the stored bearer
// credential and is the only writer of that identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned by Decode for tokens that are not a JWT
// or lack the name/email claims.
var ErrInvalidCredential = errors.New("invalid credential")

// Listener observes identity transitions. id is nil after a logout.
type Listener func(id *models.Identity)

type Store struct {
	mu        sync.RWMutex
	identity  *models.Identity
	creds     CredentialStore
	now       func() time.Time
	logger    logging.Logger
	listeners []Listener
}

type Option func(*Store)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(creds CredentialStore, opts ...Option) *Store {
	s := &Store{
		creds:  creds,
		now:    time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Claims are the credential fields the client cares about.
type Claims struct {
	Name      string
	Email     string
	ExpiresAt *time.Time
}

// Decode reads the credential's claims without verifying its signature.
func Decode(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidCredential
	}

	name, _ := mc["name"].(string)
	email, _ := mc["email"].(string)
	if name == "" || email == "" {
		return Claims{}, fmt.Errorf("%w: missing identity claims", ErrInvalidCredential)
	}

	c := Claims{Name: name, Email: email}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	if exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, nil
}

// Expired reports whether the claims expired strictly before now.
// A credential without an expiry never expires.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Restore derives the identity from the stored credential. Expired and
// undecodable credentials are purged silently.
func (s *Store) Restore(ctx context.Context) error {
	token, ok, err := s.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if !ok {
		s.set(nil)
		return nil
	}

	claims, err := Decode(token)
	if err != nil || claims.Expired(s.now()) {
		if err != nil {
			s.logger.Warn(ctx, "stored credential is unreadable, discarding", "error", err)
		} else {
			s.logger.Info(ctx, "stored credential expired", "expired_at", claims.ExpiresAt)
		}
		if err := s.creds.Purge(ctx); err != nil {
			return fmt.Errorf("purge credential: %w", err)
		}
		s.set(nil)
		return nil
	}

	s.set(&models.Identity{Name: claims.Name, Email: claims.Email})
	return nil
}

// Login sets the identity. The credential must already be persisted.
func (s *Store) Login(identity models.Identity) {
	s.set(&identity)
}

// SaveCredential persists the token of an auth result and logs in with its
// identity.
func (s *Store) SaveCredential(ctx context.Context, res models.AuthResult) error {
	if err := s.creds.Save(ctx, res.Token); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	s.Login(res.Identity())
	return nil
}

// Logout clears the identity and purges the stored credential. The identity
// is cleared even if the purge fails.
func (s *Store) Logout(ctx context.Context) error {
	s.set(nil)
	if err := s.creds.Purge(ctx); err != nil {
		return fmt.Errorf("purge credential: %w", err)
	}
	return nil
}

// Identity returns a copy of the current identity, or nil.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Token implements client.TokenSource. It returns "" when no credential is
// stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, ok, err := s.creds.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// OnChange registers l to be called after every identity transition.
func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) set(id *models.Identity) {
	s.mu.Lock()
	s.identity = id
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		if id == nil {
			l(nil)
			continue
		}
		cp := *id
		l(&cp)
	}
}
