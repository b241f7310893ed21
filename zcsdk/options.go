package zcsdk

import (
	"net/http"
	"strings"
	"time"

	"github.com/andyle182810/zenlayercloud-sdk-go/signer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "console.zenlayer.com"
	DefaultTimeout  = 30 * time.Second
	APIPathPrefix   = "/api/v2/"

	SDKVersion  = "0.1.0"
	SDKLanguage = "go"

	HeaderContentType = "Content-Type"
	HeaderHost        = "Host"
	HeaderXRequestID  = "X-Request-ID"
	HeaderVersion     = "X-ZC-Version"
	HeaderAction      = "X-ZC-Action"
	HeaderTimestamp   = "X-ZC-Timestamp"
	HeaderSDKVersion  = "X-ZC-SDK-Version"
	HeaderSDKLang     = "X-ZC-SDK-Lang"
	ContentTypeJSON   = "application/json"
)

type Option func(*Client)

// WithTimeout sets the timeout of the *http.Client in use. A client passed
// through WithHTTPClient is copied first and left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if httpClient, ok := c.httpClient.(*http.Client); ok {
			clone := *httpClient
			clone.Timeout = timeout
			c.httpClient = &clone
		}
	}
}

func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithEndpoint sets the API host. Requests go to https://<host>/api/v2/<service>.
func WithEndpoint(host string) Option {
	return func(c *Client) {
		c.baseURL = "https://" + host
	}
}

// WithBaseURL sets scheme and host at once, e.g. for a local test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithSigner replaces the ZC2-HMAC-SHA256 signer built from the credential.
func WithSigner(s signer.Signer) Option {
	return func(c *Client) {
		if s != nil {
			c.signer = s
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}

// WithRateLimit throttles outgoing calls of this client. Calls wait for a
// token; they are never retried.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		c.metricsRegisterer = registerer
	}
}

// WithClock overrides the source of x-zc-timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func WithSDKVersion(version string) Option {
	return func(c *Client) {
		c.sdkVersion = version
	}
}
