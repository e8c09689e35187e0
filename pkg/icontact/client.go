// Package icontact provides a client for the iContact marketing email API.
//
// iContact exposes accounts, client folders, contacts, lists, messages,
// segments, campaigns and related resources over a JSON REST API. Most
// resources live under an account and client folder scope
// (/a/{accountId}/c/{clientFolderId}) and every request authenticates with
// the API-Username, API-AppId and API-Password headers.
//
// The client resolves resource names to URLs, issues GET, POST, PUT and
// DELETE calls, retries while the API answers 503 (the API enforces 6000
// calls per 24 hours and 60 calls per 60 seconds), and turns status codes
// and missing response envelopes into *Error values with a Kind.
package icontact

import (
	"net/http"

	"github.com/natserract/icontact/pkg/config"
	httpclient "github.com/natserract/icontact/pkg/http"
	"go.uber.org/zap"
)

// IContact is the main client for interacting with the iContact API.
// It holds no mutable state and is safe for concurrent use.
type IContact struct {
	config     config.Config
	httpClient *httpclient.Client
	backoff    httpclient.BackoffPolicy
	maxRetries int
	headers    map[string]string
	logger     *zap.Logger
}

// Option configures an IContact client at construction time
type Option func(*options)

type options struct {
	httpClient *http.Client
	backoff    httpclient.BackoffPolicy
	maxRetries int
}

// WithHTTPClient sets the underlying net/http client
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithBackoff replaces the wait policy used between 503 retries
func WithBackoff(b httpclient.BackoffPolicy) Option {
	return func(o *options) {
		o.backoff = b
	}
}

// WithMaxRetries sets how many times a 503 is retried. Negative disables retrying.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// NewIContact creates a new iContact client with default production logger
func NewIContact(cfg *config.Config, opts ...Option) *IContact {
	logger, _ := zap.NewProduction()
	return NewIContactWithLogger(cfg, logger, opts...)
}

// NewIContactWithLogger creates a new iContact client with a custom logger
func NewIContactWithLogger(cfg *config.Config, logger *zap.Logger, opts ...Option) *IContact {
	o := options{
		backoff:    httpclient.DefaultBackoff,
		maxRetries: httpclient.DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	c := config.Config{}
	if cfg != nil {
		c = *cfg
	}
	c.ApplyDefaults()

	var transport *httpclient.Client
	if o.httpClient != nil {
		transport = httpclient.NewClientWithHTTPClient(o.httpClient, logger)
	} else {
		transport = httpclient.NewClientWithLogger(logger)
	}

	return &IContact{
		config:     c,
		httpClient: transport,
		backoff:    o.backoff,
		maxRetries: o.maxRetries,
		headers: map[string]string{
			"API-Username": c.Username,
			"API-AppId":    c.AppID,
			"API-Password": c.AppPassword,
			"API-Version":  c.APIVersion,
			// Only JSON is supported
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
		logger: logger,
	}
}

// Config returns a copy of the client configuration
func (ic *IContact) Config() config.Config {
	return ic.config
}

// ResourceURL resolves a resource name and up to two ids to an absolute URL.
// Unknown names resolve to the base URL followed by the name.
func (ic *IContact) ResourceURL(resource string, ids []string) string {
	return resolveResourceURL(ic.config.BaseURL, ic.config.AccountID, ic.config.ClientFolderID, resource, ids)
}
