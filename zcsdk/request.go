package zcsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// Request is an unsigned API call. It is built once by NewRequest, with the
// timestamp captured at that moment, and signed right before dispatch.
type Request struct {
	Service   string
	Version   string
	Action    string
	URL       string
	Host      string
	Header    http.Header
	Body      []byte
	RequestID string
}

// NewRequest validates and serializes payload and sets the fixed API headers.
// A nil payload, typed or not, is sent as an empty JSON object.
func (c *Client) NewRequest(service, apiVersion, action string, payload any) (*Request, error) {
	if service == "" || action == "" {
		return nil, newOtherError(fmt.Errorf("%w: service and action are required", ErrInvalidRequest))
	}

	endpoint, err := url.Parse(c.baseURL + APIPathPrefix + service)
	if err != nil {
		return nil, newOtherError(fmt.Errorf("%w: %w", ErrCreateRequest, err))
	}

	if isNil(payload) {
		payload = struct{}{}
	}

	if err := c.validator.Validate(payload); err != nil {
		return nil, newOtherError(fmt.Errorf("%w: %w", ErrInvalidRequest, err))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newOtherError(fmt.Errorf("%w: %w", ErrEncodeBody, err))
	}

	requestID := uuid.New().String()

	header := make(http.Header)
	header.Set(HeaderContentType, ContentTypeJSON)
	header.Set(HeaderHost, endpoint.Host)
	header.Set(HeaderVersion, apiVersion)
	header.Set(HeaderAction, action)
	header.Set(HeaderTimestamp, strconv.FormatInt(c.now().Unix(), 10))
	header.Set(HeaderSDKVersion, c.sdkVersion)
	header.Set(HeaderSDKLang, SDKLanguage)
	header.Set(HeaderXRequestID, requestID)

	return &Request{
		Service:   service,
		Version:   apiVersion,
		Action:    action,
		URL:       endpoint.String(),
		Host:      endpoint.Host,
		Header:    header,
		Body:      body,
		RequestID: requestID,
	}, nil
}

// HTTPRequest turns r into a dispatchable request. Each call returns a fresh
// copy so a Request can be signed and sent more than once.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, body)
	if err != nil {
		return nil, newOtherError(fmt.Errorf("%w: %w", ErrCreateRequest, err))
	}

	if r.Header != nil {
		req.Header = r.Header.Clone()
	}

	req.Host = r.Host

	return req, nil
}
