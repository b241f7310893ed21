// Package signer implements the ZC2-HMAC-SHA256 request signature used by the
// Zenlayer Cloud API.
//
// The canonical request is built from six lines joined by "\n":
//
//	<METHOD>
//	/
//	<empty query string>
//	content-type:<Content-Type>\nhost:<Host>\n
//	content-type;host
//	hex(sha256(<BODY>))
//
// The string to sign is "<ALGORITHM>\n<x-zc-timestamp>\nhex(sha256(<CANONICAL_REQUEST>))"
// and the signature is hex(hmac-sha256(<ACCESS_KEY_PASSWORD>, <STRING_TO_SIGN>)).
package signer

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
)

const (
	AlgorithmZC2HMACSHA256 = "ZC2-HMAC-SHA256"

	HeaderAuthorization   = "Authorization"
	HeaderSignatureMethod = "X-ZC-Signature-Method"
	HeaderContentType     = "Content-Type"
	HeaderHost            = "Host"
	HeaderTimestamp       = "X-ZC-Timestamp"

	SignedHeaders = "content-type;host"

	canonicalURI         = "/"
	canonicalQueryString = ""
)

var (
	ErrMissingHeader     = errors.New("signer: missing header")
	ErrMissingBody       = errors.New("signer: payload not set")
	ErrReadBody          = errors.New("signer: failed to read payload")
	ErrInvalidAuthHeader = errors.New("signer: malformed authorization header")
	ErrSignatureMismatch = errors.New("signer: signature mismatch")
)

// Signer adds authentication headers to an outgoing request. Sign must be the
// last mutation before dispatch; later header or body changes leave a stale
// signature.
type Signer interface {
	Sign(req *http.Request) error
}

type ZC2HMACSHA256 struct {
	credential credentials.AccessKeyCredential
}

var _ Signer = (*ZC2HMACSHA256)(nil)

func New(credential credentials.AccessKeyCredential) *ZC2HMACSHA256 {
	return &ZC2HMACSHA256{credential: credential}
}

func (s *ZC2HMACSHA256) Algorithm() string {
	return AlgorithmZC2HMACSHA256
}

func (s *ZC2HMACSHA256) AccessKeyID() string {
	return s.credential.AccessKeyID
}

// Sign computes the signature of req and sets the Authorization and
// X-ZC-Signature-Method headers. No header is written when it fails.
func (s *ZC2HMACSHA256) Sign(req *http.Request) error {
	signature, err := s.Signature(req)
	if err != nil {
		return err
	}

	req.Header.Set(HeaderAuthorization, s.authorization(signature))
	req.Header.Set(HeaderSignatureMethod, AlgorithmZC2HMACSHA256)

	return nil
}

// Signature returns the hex signature of req without modifying its headers.
func (s *ZC2HMACSHA256) Signature(req *http.Request) (string, error) {
	canonicalRequest, err := CanonicalRequest(req)
	if err != nil {
		return "", err
	}

	timestamp := req.Header.Get(HeaderTimestamp)
	if timestamp == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingHeader, HeaderTimestamp)
	}

	stringToSign := StringToSign(AlgorithmZC2HMACSHA256, timestamp, canonicalRequest)

	return hex.EncodeToString(hmacSHA256([]byte(s.credential.AccessKeyPassword), []byte(stringToSign))), nil
}

func (s *ZC2HMACSHA256) authorization(signature string) string {
	return fmt.Sprintf("%s Credential=%s, SignedHeaders=%s, Signature=%s",
		AlgorithmZC2HMACSHA256, s.credential.AccessKeyID, SignedHeaders, signature)
}

func CanonicalRequest(req *http.Request) (string, error) {
	contentType := req.Header.Get(HeaderContentType)
	if contentType == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingHeader, HeaderContentType)
	}

	host := requestHost(req)
	if host == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingHeader, HeaderHost)
	}

	body, err := readBody(req)
	if err != nil {
		return "", err
	}

	canonicalHeaders := "content-type:" + contentType + "\n" + "host:" + host + "\n"

	return strings.Join([]string{
		req.Method,
		canonicalURI,
		canonicalQueryString,
		canonicalHeaders,
		SignedHeaders,
		HexSHA256(body),
	}, "\n"), nil
}

func StringToSign(algorithm, timestamp, canonicalRequest string) string {
	return algorithm + "\n" + timestamp + "\n" + HexSHA256([]byte(canonicalRequest))
}

func HexSHA256(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)

	return mac.Sum(nil)
}

// Go moves the Host header into Request.Host on both client and server side.
func requestHost(req *http.Request) string {
	if host := req.Header.Get(HeaderHost); host != "" {
		return host
	}

	return req.Host
}

// readBody returns the payload bytes and leaves req.Body readable.
func readBody(req *http.Request) ([]byte, error) {
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
		}

		return body, nil
	}

	if req.Body == nil || req.Body == http.NoBody {
		return nil, ErrMissingBody
	}

	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
	}

	req.Body = io.NopCloser(bytes.NewReader(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	return body, nil
}
