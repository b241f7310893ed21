package credentials

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

const (
	EnvAccessKeyID       = "ZENLAYER_CLOUD_ACCESS_KEY_ID"
	EnvAccessKeyPassword = "ZENLAYER_CLOUD_ACCESS_KEY_PASSWORD"

	redacted = "******"
)

var ErrMissingCredential = errors.New("credentials: missing access key credential")

// AccessKeyCredential is the access key pair used to sign API requests.
// It is read once and never mutated afterwards.
type AccessKeyCredential struct {
	AccessKeyID       string `env:"ZENLAYER_CLOUD_ACCESS_KEY_ID,required,notEmpty"`
	AccessKeyPassword string `env:"ZENLAYER_CLOUD_ACCESS_KEY_PASSWORD,required,notEmpty"`
}

var _ zerolog.LogObjectMarshaler = AccessKeyCredential{}

func New(accessKeyID, accessKeyPassword string) (AccessKeyCredential, error) {
	cred := AccessKeyCredential{
		AccessKeyID:       accessKeyID,
		AccessKeyPassword: accessKeyPassword,
	}

	if err := cred.Validate(); err != nil {
		return AccessKeyCredential{}, err
	}

	return cred, nil
}

// FromEnv loads the credential from ZENLAYER_CLOUD_ACCESS_KEY_ID and
// ZENLAYER_CLOUD_ACCESS_KEY_PASSWORD. Both must be set and non-empty.
func FromEnv() (AccessKeyCredential, error) {
	return FromEnvironment(nil)
}

// FromEnvironment is FromEnv over an explicit variable map. A nil map reads
// the process environment.
func FromEnvironment(environ map[string]string) (AccessKeyCredential, error) {
	opts := env.Options{} //nolint:exhaustruct
	if environ != nil {
		opts.Environment = environ
	}

	cred, err := env.ParseAsWithOptions[AccessKeyCredential](opts)
	if err != nil {
		return AccessKeyCredential{}, fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}

	return cred, nil
}

func (c AccessKeyCredential) Validate() error {
	if c.AccessKeyID == "" {
		return fmt.Errorf("%w: access key id is empty", ErrMissingCredential)
	}

	if c.AccessKeyPassword == "" {
		return fmt.Errorf("%w: access key password is empty", ErrMissingCredential)
	}

	return nil
}

func (c AccessKeyCredential) String() string {
	return fmt.Sprintf("AccessKeyCredential{AccessKeyID: %s, AccessKeyPassword: %s}", c.AccessKeyID, redacted)
}

func (c AccessKeyCredential) MarshalZerologObject(e *zerolog.Event) {
	e.Str("access_key_id", c.AccessKeyID).Str("access_key_password", redacted)
}
