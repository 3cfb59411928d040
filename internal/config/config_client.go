package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client to sign request bodies.
	HashKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the normalized server URL, e.g. "http://localhost:8080".
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientSession holds session resolution settings.
type ClientSession struct {
	// FallbackTimeout bounds session resolution.
	FallbackTimeout time.Duration
	// CredentialsFile stores the bearer token between runs.
	CredentialsFile string
	// LogFile receives client logs.
	LogFile string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RevalidateInterval defines how often the snapshot is refreshed.
	// Zero disables the periodic refresh.
	RevalidateInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Session ClientSession
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// Server-only settings are not validated here, so the client starts with
// nothing more than a server address.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	credentials := cfg.Session.CredentialsFile
	if credentials == "" {
		credentials = defaultCredentialsFile()
	}

	return &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			BaseURL:        normalizeBaseURL(cfg.Adapter.HTTPAddress),
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Session: ClientSession{
			FallbackTimeout: cfg.Session.FallbackTimeout,
			CredentialsFile: credentials,
			LogFile:         cfg.Session.LogFile,
		},
		Workers: ClientWorkers{RevalidateInterval: cfg.Workers.RevalidateInterval},
	}
}

// normalizeBaseURL accepts either a URL or a bare host:port and returns a URL
// without a trailing slash.
func normalizeBaseURL(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return strings.TrimRight(address, "/")
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "go-bookmarks", "credentials")
}
