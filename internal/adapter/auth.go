// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

// AuthAdapter talks to the server's auth endpoints and keeps the bearer
// token in a [CredentialStore]. Listeners are told about every sign-in,
// sign-out and token expiry.
type AuthAdapter struct {
	client *utils.HTTPClient
	creds  CredentialStore
	logger *logger.Logger
	now    func() time.Time

	mu        sync.Mutex
	current   *models.Identity
	expiry    *time.Timer
	listeners map[int]func(*models.Identity)
	nextID    int
}

// NewAuthAdapter returns an AuthAdapter for the server at cfg.BaseURL.
func NewAuthAdapter(cfg config.ClientAdapter, creds CredentialStore, log *logger.Logger) *AuthAdapter {
	return &AuthAdapter{
		client:    utils.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout),
		creds:     creds,
		logger:    log.WithComponent("auth_adapter"),
		now:       time.Now,
		listeners: make(map[int]func(*models.Identity)),
	}
}

// CurrentIdentity returns the identity of the stored token after the server
// confirmed it, or nil when no valid token is stored. A token the server
// rejects is removed.
func (a *AuthAdapter) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	token, err := a.creds.Load()
	if errors.Is(err, ErrNoCredentials) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parsed, err := utils.ParseUnverifiedJWT(token)
	if err != nil {
		a.logger.Warn().Err(err).Msg("stored token is unreadable, discarding")
		a.discard()
		return nil, nil
	}

	identity := parsed.Identity()
	if identity.Expired(a.now()) {
		a.logger.Info().Msg("stored token expired")
		a.discard()
		return nil, nil
	}

	var me models.User
	resp, err := a.client.WithBearer(token).
		SetContext(ctx).
		SetResult(&me).
		Get("/api/auth/me")
	if err != nil {
		return nil, fmt.Errorf("session query request: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		a.logger.Info().Msg("server rejected stored token")
		a.discard()
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if me.Login != "" {
		identity.Login = me.Login
	}

	a.mu.Lock()
	a.setCurrentLocked(&identity)
	a.mu.Unlock()

	return &identity, nil
}

// SubscribeAuthChanges registers handler for auth state changes.
func (a *AuthAdapter) SubscribeAuthChanges(handler func(*models.Identity)) (unsubscribe func()) {
	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.listeners[id] = handler
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, id)
			a.mu.Unlock()
		})
	}
}

// SignIn authenticates with POST /api/auth/login.
func (a *AuthAdapter) SignIn(ctx context.Context, credentials models.User) error {
	return a.authenticate(ctx, "/api/auth/login", credentials)
}

// Register creates an account with POST /api/auth/register and signs into it.
func (a *AuthAdapter) Register(ctx context.Context, credentials models.User) error {
	return a.authenticate(ctx, "/api/auth/register", credentials)
}

// SignOut forgets the stored token. Tokens are stateless, so the server is
// not involved.
func (a *AuthAdapter) SignOut(_ context.Context) error {
	if err := a.creds.Clear(); err != nil {
		return err
	}
	a.publish(nil)
	return nil
}

// Close stops the expiry timer.
func (a *AuthAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.expiry != nil {
		a.expiry.Stop()
		a.expiry = nil
	}
}

func (a *AuthAdapter) authenticate(ctx context.Context, path string, credentials models.User) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: credentials.Login, Password: credentials.Password, Name: credentials.Name}).
		Post(path)
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	parsed, err := utils.ParseUnverifiedJWT(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if err = a.creds.Save(token); err != nil {
		return err
	}

	identity := parsed.Identity()
	if identity.Login == "" {
		identity.Login = credentials.Login
	}
	a.logger.Info().Int64("user_id", identity.UserID).Msg("signed in")
	a.publish(&identity)
	return nil
}

func (a *AuthAdapter) discard() {
	if err := a.creds.Clear(); err != nil {
		a.logger.Error().Err(err).Msg("clear credentials")
	}
}

// publish records identity as current and tells every listener.
func (a *AuthAdapter) publish(identity *models.Identity) {
	a.mu.Lock()
	a.setCurrentLocked(identity)
	listeners := make([]func(*models.Identity), 0, len(a.listeners))
	for _, l := range a.listeners {
		listeners = append(listeners, l)
	}
	a.mu.Unlock()

	for _, l := range listeners {
		var c *models.Identity
		if identity != nil {
			copied := *identity
			c = &copied
		}
		l(c)
	}
}

func (a *AuthAdapter) setCurrentLocked(identity *models.Identity) {
	a.current = identity
	if a.expiry != nil {
		a.expiry.Stop()
		a.expiry = nil
	}
	if identity == nil || identity.ExpiresAt.IsZero() {
		return
	}

	token := identity.Token
	a.expiry = time.AfterFunc(identity.ExpiresAt.Sub(a.now()), func() { a.expire(token) })
}

func (a *AuthAdapter) expire(token string) {
	a.mu.Lock()
	stale := a.current == nil || a.current.Token != token
	a.mu.Unlock()
	if stale {
		return
	}

	a.logger.Info().Msg("session token expired")
	a.discard()
	a.publish(nil)
}
