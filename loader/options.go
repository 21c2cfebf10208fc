package loader

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Option is a function that configures a Loader
type Option func(*config) error

// config holds configuration for a Loader
type config struct {
	httpClient         *http.Client
	userAgent          string
	maxDocumentSize    int64
	cacheDisabled      bool
	insecureSkipVerify bool
	logger             *slog.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		userAgent: defaultUserAgent(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// When set, the client is used as-is for all HTTP requests.
// The WithInsecureSkipVerify option is ignored when a custom client is
// provided (configure TLS settings on your client's transport instead).
//
// If the client is nil, this option has no effect (default client is used).
//
// Example with custom timeout:
//
//	client := &http.Client{Timeout: 60 * time.Second}
//	l, err := loader.New(loader.WithHTTPClient(client))
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "jsonref/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *config) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithCacheDisabled disables the decoded-document cache.
// Every Load call then fetches and decodes the document anew.
// Default: false (caching enabled)
func WithCacheDisabled(disabled bool) Option {
	return func(cfg *config) error {
		cfg.cacheDisabled = disabled
		return nil
	}
}

// WithMaxDocumentSize sets the maximum size in bytes for loaded documents.
// This prevents resource exhaustion from fetching arbitrarily large files.
// A value of 0 (the default) means no limit.
// Returns an error if size is negative.
func WithMaxDocumentSize(size int64) Option {
	return func(cfg *config) error {
		if size < 0 {
			return fmt.Errorf("loader: maxDocumentSize cannot be negative")
		}
		cfg.maxDocumentSize = size
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for HTTPS
// fetches. Use with caution - only enable for testing or internal servers
// with self-signed certs.
func WithInsecureSkipVerify(enabled bool) Option {
	return func(cfg *config) error {
		cfg.insecureSkipVerify = enabled
		return nil
	}
}

// WithLogger sets a structured logger for debug output during loading.
// By default, no logging is performed (nil logger).
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}
