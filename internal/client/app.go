// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-bookmarks/internal/adapter"
	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/livesync"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/internal/tui"
	"github.com/MKhiriev/go-bookmarks/internal/workers"
	"github.com/MKhiriev/go-bookmarks/models"
)

type App struct {
	session    *session.Machine
	collection *livesync.Synchronizer
	focus      *livesync.FocusSignal
	workers    *workers.Workers
	ui         UI
	logger     *logger.Logger

	closers   []func()
	closeOnce sync.Once
}

// NewApp builds the client from cfg: REST and websocket adapters, the
// session machine, the live collection and the terminal UI.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	creds := adapter.NewFileCredentialStore(cfg.Session.CredentialsFile)
	auth := adapter.NewAuthAdapter(cfg.Adapter, creds, log)

	store, err := adapter.NewBookmarkAdapter(*cfg, log)
	if err != nil {
		auth.Close()
		return nil, fmt.Errorf("create bookmark adapter: %w", err)
	}

	app := assemble(auth, store, cfg, log)
	store.SetReconnectHook(app.collection.Revalidate)
	app.ui = tui.New(app.session, app.collection, app.focus, buildInfo, log)
	app.closers = append(app.closers, auth.Close)

	return app, nil
}

func assemble(auth session.AuthCollaborator, store livesync.BookmarkStore, cfg *config.ClientConfig, log *logger.Logger) *App {
	focus := livesync.NewFocusSignal()
	collection := livesync.NewSynchronizer(store, focus, log)

	return &App{
		session:    session.NewMachine(auth, cfg.Session, log),
		collection: collection,
		focus:      focus,
		workers:    workers.NewWorkers(workers.NewRevalidateJob(collection, cfg.Workers, log)),
		logger:     log.WithComponent("app"),
	}
}

// Run resolves the session and shows the UI until the user quits or ctx is
// cancelled. Everything the app started is torn down before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	unfollow := a.session.OnChange(a.follow)
	defer unfollow()

	a.session.Start()
	a.workers.Run(ctx)

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("user quit")
		return nil
	}
	return err
}

// Close stops the workers, the session machine and the collection. It is
// safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.workers.Stop()
		a.session.Close()
		a.collection.Close()
		for _, c := range a.closers {
			c()
		}
	})
}

// follow scopes the live collection to the resolved identity.
func (a *App) follow(s session.Snapshot) {
	switch s.State {
	case session.StateAuthenticated:
		a.collection.Reset(s.Identity)
	case session.StateUnauthenticated:
		a.collection.Reset(nil)
	}
}
