package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
	"github.com/andyle182810/zenlayercloud-sdk-go/signer"
)

const apiPathPrefix = "/api/v2/"

// ReceivedCall is one request seen by FakeAPI.
type ReceivedCall struct {
	Service   string
	Action    string
	Version   string
	Timestamp string
	Header    http.Header
	Body      []byte
	VerifyErr error
}

func (c ReceivedCall) DecodeBody(target any) error {
	return json.Unmarshal(c.Body, target)
}

// HandlerFunc answers one call with an HTTP status and a JSON-encodable body.
type HandlerFunc func(call ReceivedCall) (int, any)

// FakeAPI is an httptest server speaking the Zenlayer Cloud wire protocol. It
// verifies the ZC2-HMAC-SHA256 signature of every request and answers with the
// handler registered for the action. Unsigned or badly signed requests get a
// 401 envelope.
type FakeAPI struct {
	*httptest.Server

	credential credentials.AccessKeyCredential

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	calls    []ReceivedCall
}

func NewFakeAPI(t testing.TB, credential credentials.AccessKeyCredential) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		Server:     nil,
		credential: credential,
		mu:         sync.Mutex{},
		handlers:   make(map[string]HandlerFunc),
		calls:      nil,
	}

	api.Server = httptest.NewServer(http.HandlerFunc(api.serveHTTP))
	t.Cleanup(api.Close)

	return api
}

func (f *FakeAPI) Handle(action string, handler HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[action] = handler
}

func (f *FakeAPI) Reply(action string, status int, body any) {
	f.Handle(action, func(ReceivedCall) (int, any) {
		return status, body
	})
}

// ReplyRaw answers with body verbatim, e.g. to send malformed JSON.
func (f *FakeAPI) ReplyRaw(action string, status int, body string) {
	f.Reply(action, status, json.RawMessage(body))
}

func (f *FakeAPI) Calls() []ReceivedCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]ReceivedCall(nil), f.calls...)
}

func (f *FakeAPI) serveHTTP(w http.ResponseWriter, r *http.Request) {
	verifyErr := signer.Verify(r, f.credential)

	body, _ := io.ReadAll(r.Body)

	call := ReceivedCall{
		Service:   strings.TrimPrefix(r.URL.Path, apiPathPrefix),
		Action:    r.Header.Get("X-ZC-Action"),
		Version:   r.Header.Get("X-ZC-Version"),
		Timestamp: r.Header.Get("X-ZC-Timestamp"),
		Header:    r.Header.Clone(),
		Body:      body,
		VerifyErr: verifyErr,
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	handler, ok := f.handlers[call.Action]
	f.mu.Unlock()

	switch {
	case r.Method != http.MethodPost || !strings.HasPrefix(r.URL.Path, apiPathPrefix):
		writeJSON(w, http.StatusNotFound, Failure("fake-not-found", "NOT_FOUND", r.Method+" "+r.URL.Path))
	case verifyErr != nil:
		writeJSON(w, http.StatusUnauthorized, Failure("fake-unauthorized", "SIGNATURE_FAILURE", verifyErr.Error()))
	case !ok:
		writeJSON(w, http.StatusBadRequest,
			Failure("fake-unknown-action", "UNSUPPORTED_OPERATION", fmt.Sprintf("action %q", call.Action)))
	default:
		status, payload := handler(call)
		writeJSON(w, status, payload)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if raw, ok := payload.(json.RawMessage); ok {
		_, _ = w.Write(raw)

		return
	}

	_ = json.NewEncoder(w).Encode(payload)
}

// Success builds a 2xx envelope body.
func Success(requestID string, response any) map[string]any {
	return map[string]any{
		"requestId": requestID,
		"response":  response,
	}
}

// Failure builds an error envelope body.
func Failure(requestID, code, message string) map[string]any {
	return map[string]any{
		"requestId": requestID,
		"code":      code,
		"message":   message,
	}
}
