package zcsdk

import (
	"errors"
	"fmt"
	"net"
)

var (
	ErrAPI     = errors.New("zcsdk: api error")
	ErrNetwork = errors.New("zcsdk: network error")
	ErrOther   = errors.New("zcsdk: local error")

	ErrInvalidRequest   = errors.New("zcsdk: invalid request")
	ErrEncodeBody       = errors.New("zcsdk: failed to encode request body")
	ErrCreateRequest    = errors.New("zcsdk: failed to create request")
	ErrSignRequest      = errors.New("zcsdk: failed to sign request")
	ErrDecodeResponse   = errors.New("zcsdk: failed to decode response")
	ErrResponseTooLarge = errors.New("zcsdk: response body too large")
)

// ErrorKind tells callers whether the remote rejected the call, the call
// could not reach the remote, or the request could not be built at all.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindAPI
	KindNetwork
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAPI:
		return "api_error"
	case KindNetwork:
		return "network_error"
	case KindOther:
		return "other_error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAPI):
		return KindAPI
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindOther
	}
}

// APIError is returned when the API answered with a non-2xx status.
type APIError struct {
	RequestID  string
	HTTPStatus int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zcsdk: api error: request_id=%s http_status=%d code=%s message=%s",
		e.RequestID, e.HTTPStatus, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	return errors.Is(target, ErrAPI)
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// NetworkError wraps a transport failure: connection refused, timeout, TLS
// failure or a truncated response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "zcsdk: network error: " + e.Err.Error()
}

func (e *NetworkError) Is(target error) bool {
	return errors.Is(target, ErrNetwork)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Timeout() bool {
	var netErr net.Error

	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// OtherError wraps local failures: configuration, request building, signing
// and response decoding. They are not retryable.
type OtherError struct {
	Err error
}

func (e *OtherError) Error() string {
	return e.Err.Error()
}

func (e *OtherError) Is(target error) bool {
	return errors.Is(target, ErrOther)
}

func (e *OtherError) Unwrap() error {
	return e.Err
}

func NewAPIError(httpStatus int, requestID, code, message string) *APIError {
	return &APIError{
		RequestID:  requestID,
		HTTPStatus: httpStatus,
		Code:       code,
		Message:    message,
	}
}

func newNetworkError(err error) *NetworkError {
	return &NetworkError{Err: err}
}

func newOtherError(err error) *OtherError {
	return &OtherError{Err: err}
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

func IsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}

	return nil, false
}

func IsOtherError(err error) (*OtherError, bool) {
	var otherErr *OtherError
	if errors.As(err, &otherErr) {
		return otherErr, true
	}

	return nil, false
}
