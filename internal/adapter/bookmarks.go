// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/gorilla/websocket"
)

const (
	changesPath = "/api/bookmarks/changes"

	// DefaultRedialInterval paces reconnects of a dropped change stream.
	DefaultRedialInterval = 2 * time.Second
)

// BookmarkAdapter is the REST and websocket client of the bookmarks API.
type BookmarkAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher
	logger *logger.Logger

	changesURL     string
	dialer         *websocket.Dialer
	redialInterval time.Duration

	mu          sync.Mutex
	onReconnect func()
}

// NewBookmarkAdapter returns a BookmarkAdapter for cfg.Adapter.BaseURL.
// Request bodies are signed when cfg.App.HashKey is set.
func NewBookmarkAdapter(cfg config.ClientConfig, log *logger.Logger) (*BookmarkAdapter, error) {
	changesURL, err := websocketURL(cfg.Adapter.BaseURL, changesPath)
	if err != nil {
		return nil, err
	}

	return &BookmarkAdapter{
		client:     utils.NewHTTPClient(cfg.Adapter.BaseURL, cfg.Adapter.RequestTimeout),
		hasher:     utils.NewHasher(cfg.App.HashKey),
		logger:     log.WithComponent("bookmark_adapter"),
		changesURL: changesURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.Adapter.RequestTimeout,
			Proxy:            websocket.DefaultDialer.Proxy,
		},
		redialInterval: DefaultRedialInterval,
	}, nil
}

// SetReconnectHook registers fn to run after a dropped change stream has been
// re-established. Events sent while disconnected are lost, so fn usually
// triggers a snapshot.
func (b *BookmarkAdapter) SetReconnectHook(fn func()) {
	b.mu.Lock()
	b.onReconnect = fn
	b.mu.Unlock()
}

// FetchAll returns the bookmarks of identity, newest first.
func (b *BookmarkAdapter) FetchAll(ctx context.Context, identity models.Identity) ([]models.Bookmark, error) {
	var records []models.Bookmark
	resp, err := b.client.WithBearer(identity.Token).
		SetContext(ctx).
		SetResult(&records).
		Get("/api/bookmarks")
	if err != nil {
		return nil, fmt.Errorf("fetch bookmarks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return records, nil
}

// Create stores a new bookmark and returns the server's record.
func (b *BookmarkAdapter) Create(ctx context.Context, identity models.Identity, input models.BookmarkInput) (models.Bookmark, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("encode bookmark: %w", err)
	}

	req := b.client.WithBearer(identity.Token).
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if b.hasher.Enabled() {
		req.SetHeader(utils.HashHeader, b.hasher.Sign(body))
	}

	var created models.Bookmark
	resp, err := req.SetResult(&created).Post("/api/bookmarks")
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("create bookmark request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Bookmark{}, err
	}
	if created.ID == "" {
		return models.Bookmark{}, fmt.Errorf("%w: created bookmark has no id", ErrInvalidResponse)
	}
	return created, nil
}

// Delete removes the bookmark with id. A bookmark that is already gone
// counts as deleted.
func (b *BookmarkAdapter) Delete(ctx context.Context, identity models.Identity, id string) error {
	resp, err := b.client.WithBearer(identity.Token).
		SetContext(ctx).
		Delete("/api/bookmarks/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete bookmark request: %w", err)
	}

	err = mapHTTPError(resp)
	if errors.Is(err, ErrNotFound) {
		b.logger.Debug().Str("bookmark_id", id).Msg("bookmark already deleted")
		return nil
	}
	return err
}

func (b *BookmarkAdapter) reconnectHook() func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.onReconnect
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}

	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String(), nil
}
