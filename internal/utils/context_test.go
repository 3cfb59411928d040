package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
	assert.Equal(t, "login", LoginCtxKey.String())
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{name: "stored by WithUser", ctx: WithUser(context.Background(), 42, "alice"), wantID: 42, wantOK: true},
		{name: "zero id is still present", ctx: context.WithValue(context.Background(), UserIDCtxKey, int64(0)), wantID: 0, wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "wrong type", ctx: context.WithValue(context.Background(), UserIDCtxKey, "42")},
		// a plain string key must not collide with the private key type
		{name: "foreign key", ctx: context.WithValue(context.Background(), "userID", int64(42))}, //nolint:staticcheck
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, ok := GetUserIDFromContext(tt.ctx)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, userID)
		})
	}
}

func TestGetLoginFromContext(t *testing.T) {
	login, ok := GetLoginFromContext(WithUser(context.Background(), 7, "alice"))
	assert.True(t, ok)
	assert.Equal(t, "alice", login)

	login, ok = GetLoginFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, login)
}
