package signer

import (
	"crypto/hmac"
	"fmt"
	"net/http"
	"strings"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
)

// Authorization is the parsed form of a ZC2-HMAC-SHA256 Authorization header.
type Authorization struct {
	Algorithm     string
	AccessKeyID   string
	SignedHeaders string
	Signature     string
}

func ParseAuthorization(value string) (Authorization, error) {
	algorithm, params, ok := strings.Cut(value, " ")
	if !ok || algorithm == "" {
		return Authorization{}, ErrInvalidAuthHeader
	}

	auth := Authorization{
		Algorithm:     algorithm,
		AccessKeyID:   "",
		SignedHeaders: "",
		Signature:     "",
	}

	for part := range strings.SplitSeq(params, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return Authorization{}, fmt.Errorf("%w: %q", ErrInvalidAuthHeader, part)
		}

		switch key {
		case "Credential":
			auth.AccessKeyID = val
		case "SignedHeaders":
			auth.SignedHeaders = val
		case "Signature":
			auth.Signature = val
		}
	}

	if auth.AccessKeyID == "" || auth.Signature == "" {
		return Authorization{}, ErrInvalidAuthHeader
	}

	return auth, nil
}

// Verify recomputes the signature of a received request and compares it with
// the one carried in its Authorization header.
func Verify(req *http.Request, credential credentials.AccessKeyCredential) error {
	header := req.Header.Get(HeaderAuthorization)
	if header == "" {
		return fmt.Errorf("%w: %s", ErrMissingHeader, HeaderAuthorization)
	}

	auth, err := ParseAuthorization(header)
	if err != nil {
		return err
	}

	if auth.Algorithm != AlgorithmZC2HMACSHA256 || auth.SignedHeaders != SignedHeaders {
		return fmt.Errorf("%w: unsupported algorithm or signed headers", ErrInvalidAuthHeader)
	}

	if auth.AccessKeyID != credential.AccessKeyID {
		return fmt.Errorf("%w: unknown access key id", ErrSignatureMismatch)
	}

	expected, err := New(credential).Signature(req)
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(expected), []byte(auth.Signature)) {
		return ErrSignatureMismatch
	}

	return nil
}
