// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// supportedDrivers lists the database/sql drivers the server registers.
var supportedDrivers = map[string]struct{}{
	"pgx":     {},
	"sqlite3": {},
}

// validate checks that the merged server configuration can start the
// bookmarks API.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if _, ok := supportedDrivers[cfg.Storage.DB.Driver]; !ok {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.Adapter.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: bad server URL %q", ErrInvalidAdapterConfigs, cfg.Adapter.BaseURL)
	}

	if cfg.Session.FallbackTimeout <= 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Workers.RevalidateInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
