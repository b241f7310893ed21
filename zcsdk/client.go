package zcsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
	"github.com/andyle182810/zenlayercloud-sdk-go/signer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)

// Client is the transport shared by every service facade. It holds one HTTP
// client and one signer and is safe for concurrent use.
type Client struct {
	baseURL           string
	httpClient        Doer
	signer            signer.Signer
	logger            zerolog.Logger
	validator         *payloadValidator
	limiter           *rate.Limiter
	metricsRegisterer prometheus.Registerer
	metrics           *metrics
	maxResponseSize   int64 // 0 means no limit
	sdkVersion        string
	now               func() time.Time
}

func New(credential credentials.AccessKeyCredential, opts ...Option) (*Client, error) {
	if err := credential.Validate(); err != nil {
		return nil, newOtherError(err)
	}

	c := &Client{
		baseURL: "https://" + DefaultEndpoint,
		httpClient: &http.Client{ //nolint:exhaustruct
			Timeout: DefaultTimeout,
		},
		signer:            signer.New(credential),
		logger:            log.Logger,
		validator:         newPayloadValidator(),
		limiter:           nil,
		metricsRegisterer: nil,
		metrics:           nil,
		maxResponseSize:   0,
		sdkVersion:        SDKVersion,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metricsRegisterer != nil {
		m, err := newMetrics(c.metricsRegisterer)
		if err != nil {
			return nil, newOtherError(err)
		}

		c.metrics = m
	}

	return c, nil
}

// NewFromEnv builds a client from the credential in the process environment.
// It fails before any network activity when the credential is missing.
func NewFromEnv(opts ...Option) (*Client, error) {
	credential, err := credentials.FromEnv()
	if err != nil {
		return nil, newOtherError(err)
	}

	return New(credential, opts...)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call signs and sends req, then decodes the response envelope. Exactly one
// attempt is made.
func Call[T any](ctx context.Context, c *Client, req *Request) (*Envelope[T], error) {
	if req == nil {
		return nil, newOtherError(fmt.Errorf("%w: request is nil", ErrInvalidRequest))
	}

	if err := c.wait(ctx, req.Service, req.Action); err != nil {
		return nil, err
	}

	return send[T](ctx, c, req)
}

// Invoke is NewRequest followed by Call. The rate limiter is consulted
// before the request is stamped so the signed timestamp stays fresh.
func Invoke[T any](
	ctx context.Context,
	c *Client,
	service string,
	apiVersion string,
	action string,
	payload any,
) (*Envelope[T], error) {
	if err := c.wait(ctx, service, action); err != nil {
		return nil, err
	}

	req, err := c.NewRequest(service, apiVersion, action, payload)
	if err != nil {
		return nil, err
	}

	return send[T](ctx, c, req)
}

func send[T any](ctx context.Context, c *Client, req *Request) (*Envelope[T], error) {
	start := time.Now()

	env, err := call[T](ctx, c, req)

	c.metrics.observe(req.Service, req.Action, time.Since(start), err)

	return env, err
}

func (c *Client) wait(ctx context.Context, service, action string) error {
	if c.limiter == nil {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		err = newNetworkError(err)
		c.metrics.observe(service, action, 0, err)

		return err
	}

	return nil
}

func call[T any](ctx context.Context, c *Client, req *Request) (*Envelope[T], error) {
	status, body, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newOtherError(fmt.Errorf("%w: %w", ErrDecodeResponse, err))
	}

	env.HTTPStatus = status

	if status < 200 || status >= 300 {
		return nil, env.apiError()
	}

	return &env, nil
}

func (c *Client) execute(ctx context.Context, req *Request) (int, []byte, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return 0, nil, err
	}

	if err := c.signer.Sign(httpReq); err != nil {
		return 0, nil, newOtherError(fmt.Errorf("%w: %w", ErrSignRequest, err))
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("service", req.Service).
			Str("action", req.Action).
			Str("request_id", req.RequestID).
			Msg("The Zenlayer Cloud API request could not be completed")

		return 0, nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp)
	if err != nil {
		return 0, nil, err
	}

	c.logger.Debug().
		Str("service", req.Service).
		Str("action", req.Action).
		Str("request_id", req.RequestID).
		Int("http_status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("The Zenlayer Cloud API responded")

	return resp.StatusCode, body, nil
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	body := io.Reader(resp.Body)
	if c.maxResponseSize > 0 {
		body = io.LimitReader(resp.Body, c.maxResponseSize+1)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if c.maxResponseSize > 0 && int64(len(bodyBytes)) > c.maxResponseSize {
		return nil, newOtherError(ErrResponseTooLarge)
	}

	return bodyBytes, nil
}
