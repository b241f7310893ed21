package signer_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
	"github.com/andyle182810/zenlayercloud-sdk-go/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHost      = "console.zenlayer.com"
	testTimestamp = "1700000000"
	testBody      = `{"pageNum":1}`
)

func testCredential(t *testing.T) credentials.AccessKeyCredential {
	t.Helper()

	cred, err := credentials.New("AKID", "SECRET")
	require.NoError(t, err)

	return cred
}

func buildRequest(t *testing.T, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, "https://"+testHost+"/api/v2/cdn",
		bytes.NewReader([]byte(body)))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Host", testHost)
	req.Header.Set("x-zc-timestamp", testTimestamp)
	req.Header.Set("x-zc-action", "DescribeCertificates")

	return req
}

func expectedSignature(secret, method, contentType, host, timestamp, body string) string {
	payloadHash := sha256.Sum256([]byte(body))
	canonical := method + "\n/\n\ncontent-type:" + contentType + "\nhost:" + host + "\n\ncontent-type;host\n" +
		hex.EncodeToString(payloadHash[:])
	canonicalHash := sha256.Sum256([]byte(canonical))
	stringToSign := "ZC2-HMAC-SHA256\n" + timestamp + "\n" + hex.EncodeToString(canonicalHash[:])

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(stringToSign))

	return hex.EncodeToString(mac.Sum(nil))
}

func TestCanonicalRequest_Layout(t *testing.T) {
	t.Parallel()

	req := buildRequest(t, testBody)

	canonical, err := signer.CanonicalRequest(req)

	require.NoError(t, err)

	lines := strings.Split(canonical, "\n")
	require.Equal(t, []string{
		"POST",
		"/",
		"",
		"content-type:application/json",
		"host:" + testHost,
		"",
		"content-type;host",
		signer.HexSHA256([]byte(testBody)),
	}, lines)
}

func TestSign_SetsAuthorizationHeaders(t *testing.T) {
	t.Parallel()

	req := buildRequest(t, testBody)

	err := signer.New(testCredential(t)).Sign(req)

	require.NoError(t, err)

	want := "ZC2-HMAC-SHA256 Credential=AKID, SignedHeaders=content-type;host, Signature=" +
		expectedSignature("SECRET", http.MethodPost, "application/json", testHost, testTimestamp, testBody)
	assert.Equal(t, want, req.Header.Get("Authorization"))
	assert.Equal(t, "ZC2-HMAC-SHA256", req.Header.Get("X-ZC-Signature-Method"))
}

func TestSign_KeepsBodyReadable(t *testing.T) {
	t.Parallel()

	req := buildRequest(t, testBody)

	require.NoError(t, signer.New(testCredential(t)).Sign(req))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.Equal(t, testBody, string(body))
}

func TestSign_IsDeterministic(t *testing.T) {
	t.Parallel()

	sig := signer.New(testCredential(t))

	first := buildRequest(t, testBody)
	second := buildRequest(t, testBody)

	require.NoError(t, sig.Sign(first))
	require.NoError(t, sig.Sign(second))
	require.Equal(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))

	require.NoError(t, sig.Sign(first))
	require.Equal(t, second.Header.Get("Authorization"), first.Header.Get("Authorization"))
}

func TestSign_UsesRequestHostWhenHeaderAbsent(t *testing.T) {
	t.Parallel()

	req := buildRequest(t, testBody)
	req.Header.Del("Host")

	withField, err := signer.New(testCredential(t)).Signature(req)
	require.NoError(t, err)

	withHeader, err := signer.New(testCredential(t)).Signature(buildRequest(t, testBody))
	require.NoError(t, err)

	require.Equal(t, withHeader, withField)
}

func TestSign_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(req *http.Request)
		wantErr error
	}{
		{
			name: "missing content type",
			mutate: func(req *http.Request) {
				req.Header.Del("Content-Type")
			},
			wantErr: signer.ErrMissingHeader,
		},
		{
			name: "missing host",
			mutate: func(req *http.Request) {
				req.Header.Del("Host")
				req.Host = ""
			},
			wantErr: signer.ErrMissingHeader,
		},
		{
			name: "missing timestamp",
			mutate: func(req *http.Request) {
				req.Header.Del("x-zc-timestamp")
			},
			wantErr: signer.ErrMissingHeader,
		},
		{
			name: "missing body",
			mutate: func(req *http.Request) {
				req.Body = nil
				req.GetBody = nil
			},
			wantErr: signer.ErrMissingBody,
		},
		{
			name: "no body",
			mutate: func(req *http.Request) {
				req.Body = http.NoBody
				req.GetBody = nil
			},
			wantErr: signer.ErrMissingBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := buildRequest(t, testBody)
			tt.mutate(req)

			err := signer.New(testCredential(t)).Sign(req)

			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, req.Header.Get("Authorization"))
			require.Empty(t, req.Header.Get("X-ZC-Signature-Method"))
		})
	}
}

func TestSignature_ChangesWithSignedFieldsOnly(t *testing.T) {
	t.Parallel()

	sig := signer.New(testCredential(t))

	base, err := sig.Signature(buildRequest(t, testBody))
	require.NoError(t, err)

	unsigned := buildRequest(t, testBody)
	unsigned.Header.Set("x-zc-action", "CreateCertificate")
	unsigned.Header.Set("X-Request-ID", "abc")

	got, err := sig.Signature(unsigned)
	require.NoError(t, err)
	require.Equal(t, base, got, "headers outside the signed set must not affect the signature")

	mutations := map[string]func(req *http.Request){
		"body": func(req *http.Request) {
			req.Body = io.NopCloser(strings.NewReader(`{"pageNum":2}`))
			req.GetBody = nil
		},
		"content type": func(req *http.Request) { req.Header.Set("Content-Type", "text/plain") },
		"host":         func(req *http.Request) { req.Header.Set("Host", "evil.example.com") },
		"timestamp":    func(req *http.Request) { req.Header.Set("x-zc-timestamp", "1700000001") },
		"method":       func(req *http.Request) { req.Method = http.MethodPut },
	}

	for name, mutate := range mutations {
		req := buildRequest(t, testBody)
		mutate(req)

		got, err := sig.Signature(req)
		require.NoError(t, err, name)
		require.NotEqual(t, base, got, name)
	}
}

func TestSignature_DependsOnSecret(t *testing.T) {
	t.Parallel()

	other, err := credentials.New("AKID", "OTHER")
	require.NoError(t, err)

	first, err := signer.New(testCredential(t)).Signature(buildRequest(t, testBody))
	require.NoError(t, err)

	second, err := signer.New(other).Signature(buildRequest(t, testBody))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
