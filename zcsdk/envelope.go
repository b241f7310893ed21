package zcsdk

// Envelope is the response shape shared by every API action. Success is
// decided by the HTTP status only: a 2xx envelope may still have a nil
// Response, and a 2xx carrying Code is still a success.
type Envelope[T any] struct {
	RequestID string  `json:"requestId"`
	Response  *T      `json:"response,omitempty"`
	Code      *string `json:"code,omitempty"`
	Message   *string `json:"message,omitempty"`

	HTTPStatus int `json:"-"`
}

func (e *Envelope[T]) HasResponse() bool {
	return e != nil && e.Response != nil
}

func (e *Envelope[T]) apiError() *APIError {
	return NewAPIError(e.HTTPStatus, e.RequestID, deref(e.Code), deref(e.Message))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
