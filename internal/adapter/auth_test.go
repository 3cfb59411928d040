// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mock"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-bookmarks"
)

// memCredentials is an in-memory CredentialStore.
type memCredentials struct {
	mu     sync.Mutex
	token  string
	clears atomic.Int32
}

func (m *memCredentials) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoCredentials
	}
	return m.token, nil
}

func (m *memCredentials) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memCredentials) Clear() error {
	m.clears.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memCredentials) stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func signToken(t *testing.T, userID int64, login string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testIssuer, userID, login, ttl, testSignKey)
	require.NoError(t, err)
	return token.SignedString
}

func newTestAuthAdapter(t *testing.T, serverURL string, creds CredentialStore) *AuthAdapter {
	t.Helper()
	a := NewAuthAdapter(config.ClientAdapter{BaseURL: serverURL, RequestTimeout: time.Second}, creds, logger.Nop())
	t.Cleanup(a.Close)
	return a
}

// listen records every identity the adapter publishes.
func listen(a *AuthAdapter) (*[]*models.Identity, *sync.Mutex) {
	var mu sync.Mutex
	var got []*models.Identity
	a.SubscribeAuthChanges(func(identity *models.Identity) {
		mu.Lock()
		got = append(got, identity)
		mu.Unlock()
	})
	return &got, &mu
}

// ── CurrentIdentity ──────────────────────────────────────────────────────────

func TestCurrentIdentity_NoCredentials(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	a := newTestAuthAdapter(t, srv.URL, &memCredentials{})
	identity, err := a.CurrentIdentity(context.Background())

	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Zero(t, hits.Load())
}

func TestCurrentIdentity_ConfirmedByServer(t *testing.T) {
	token := signToken(t, 7, "alice", time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.User{UserID: 7, Login: "alice"})
	}))
	defer srv.Close()

	a := newTestAuthAdapter(t, srv.URL, &memCredentials{token: token})
	identity, err := a.CurrentIdentity(context.Background())

	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "alice", identity.Login)
	assert.Equal(t, token, identity.Token)
	assert.False(t, identity.ExpiresAt.IsZero())
}

func TestCurrentIdentity_RejectedTokenIsDiscarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token is expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := &memCredentials{token: signToken(t, 7, "alice", time.Hour)}
	a := newTestAuthAdapter(t, srv.URL, creds)
	identity, err := a.CurrentIdentity(context.Background())

	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Empty(t, creds.stored())
}

func TestCurrentIdentity_ServerErrorKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	token := signToken(t, 7, "alice", time.Hour)
	creds := &memCredentials{token: token}
	a := newTestAuthAdapter(t, srv.URL, creds)
	identity, err := a.CurrentIdentity(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Nil(t, identity)
	assert.Equal(t, token, creds.stored())
}

func TestCurrentIdentity_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAuthAdapter(t, url, &memCredentials{token: signToken(t, 7, "alice", time.Hour)})
	_, err := a.CurrentIdentity(context.Background())

	assert.Error(t, err)
}

func TestCurrentIdentity_LocallyInvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "garbage", token: func(*testing.T) string { return "not-a-jwt" }},
		{name: "expired", token: func(t *testing.T) string { return signToken(t, 7, "alice", -time.Minute) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
			}))
			defer srv.Close()

			creds := &memCredentials{token: tt.token(t)}
			a := newTestAuthAdapter(t, srv.URL, creds)
			identity, err := a.CurrentIdentity(context.Background())

			require.NoError(t, err)
			assert.Nil(t, identity)
			assert.Empty(t, creds.stored())
			assert.Zero(t, hits.Load())
		})
	}
}

func TestCurrentIdentity_CredentialStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := mock.NewMockCredentialStore(ctrl)
	creds.EXPECT().Load().Return("", errors.New("permission denied"))

	a := newTestAuthAdapter(t, "http://127.0.0.1:1", creds)
	_, err := a.CurrentIdentity(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

// ── SignIn / Register ────────────────────────────────────────────────────────

func TestSignIn_Success(t *testing.T) {
	token := signToken(t, 7, "alice", time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var u models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&u))
		assert.Equal(t, "alice", u.Login)
		assert.Equal(t, "secret", u.Password)

		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	creds := NewFileCredentialStore(filepath.Join(t.TempDir(), "credentials"))
	a := newTestAuthAdapter(t, srv.URL, creds)
	got, mu := listen(a)

	require.NoError(t, a.SignIn(context.Background(), models.User{Login: "alice", Password: "secret"}))

	stored, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, token, stored)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1)
	assert.Equal(t, int64(7), (*got)[0].UserID)
	assert.Equal(t, "alice", (*got)[0].Login)
}

func TestRegister_UsesRegisterEndpoint(t *testing.T) {
	token := signToken(t, 9, "bob", time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	creds := &memCredentials{}
	a := newTestAuthAdapter(t, srv.URL, creds)
	got, mu := listen(a)

	require.NoError(t, a.Register(context.Background(), models.User{Login: "bob", Password: "pw"}))
	assert.Equal(t, token, creds.stored())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1)
	assert.Equal(t, int64(9), (*got)[0].UserID)
}

func TestSignIn_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "wrong password",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "invalid login/password", http.StatusUnauthorized)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name: "login taken",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "login already exists", http.StatusConflict)
			},
			wantErr: ErrConflict,
		},
		{
			name: "missing token header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantErr: ErrInvalidResponse,
		},
		{
			name: "malformed token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Authorization", "Bearer nope")
				w.WriteHeader(http.StatusOK)
			},
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			creds := &memCredentials{}
			a := newTestAuthAdapter(t, srv.URL, creds)
			got, mu := listen(a)

			err := a.SignIn(context.Background(), models.User{Login: "alice", Password: "pw"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, creds.stored())

			mu.Lock()
			defer mu.Unlock()
			assert.Empty(t, *got, "failed sign in must not publish")
		})
	}
}

func TestSignIn_SaveFailureDoesNotPublish(t *testing.T) {
	token := signToken(t, 7, "alice", time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer "+token)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	creds := mock.NewMockCredentialStore(ctrl)
	creds.EXPECT().Save(token).Return(errors.New("read-only file system"))

	a := newTestAuthAdapter(t, srv.URL, creds)
	got, mu := listen(a)

	err := a.SignIn(context.Background(), models.User{Login: "alice", Password: "pw"})
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, *got)
}

// ── SignOut / subscriptions ──────────────────────────────────────────────────

func TestSignOut_ClearsAndPublishesNil(t *testing.T) {
	creds := &memCredentials{token: "whatever"}
	a := newTestAuthAdapter(t, "http://127.0.0.1:1", creds)
	got, mu := listen(a)

	require.NoError(t, a.SignOut(context.Background()))
	assert.Empty(t, creds.stored())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *got, 1)
	assert.Nil(t, (*got)[0])
}

func TestSubscribeAuthChanges_Unsubscribe(t *testing.T) {
	a := newTestAuthAdapter(t, "http://127.0.0.1:1", &memCredentials{})

	var calls atomic.Int32
	unsubscribe := a.SubscribeAuthChanges(func(*models.Identity) { calls.Add(1) })

	require.NoError(t, a.SignOut(context.Background()))
	unsubscribe()
	unsubscribe()
	require.NoError(t, a.SignOut(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
}

func TestTokenExpiryPublishesSignOut(t *testing.T) {
	token := signToken(t, 7, "alice", time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer "+token)
	}))
	defer srv.Close()

	creds := &memCredentials{}
	a := newTestAuthAdapter(t, srv.URL, creds)
	got, mu := listen(a)

	require.NoError(t, a.SignIn(context.Background(), models.User{Login: "alice", Password: "pw"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(*got) == 2 && (*got)[1] == nil
	}, 3*time.Second, 10*time.Millisecond)
	assert.Empty(t, creds.stored())
}
