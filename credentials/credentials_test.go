package credentials_test

import (
	"fmt"
	"testing"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
	"github.com/stretchr/testify/require"
)

func TestFromEnvironment_LoadsBothValues(t *testing.T) {
	t.Parallel()

	cred, err := credentials.FromEnvironment(map[string]string{
		credentials.EnvAccessKeyID:       "AKID",
		credentials.EnvAccessKeyPassword: "SECRET",
	})

	require.NoError(t, err)
	require.Equal(t, "AKID", cred.AccessKeyID)
	require.Equal(t, "SECRET", cred.AccessKeyPassword)
}

func TestFromEnvironment_FailsWhenValuesMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ map[string]string
	}{
		{
			name:    "both unset",
			environ: map[string]string{},
		},
		{
			name:    "id unset",
			environ: map[string]string{credentials.EnvAccessKeyPassword: "SECRET"},
		},
		{
			name:    "password unset",
			environ: map[string]string{credentials.EnvAccessKeyID: "AKID"},
		},
		{
			name: "id empty",
			environ: map[string]string{
				credentials.EnvAccessKeyID:       "",
				credentials.EnvAccessKeyPassword: "SECRET",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := credentials.FromEnvironment(tt.environ)

			require.ErrorIs(t, err, credentials.ErrMissingCredential)
		})
	}
}

func TestFromEnv_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv(credentials.EnvAccessKeyID, "env-id")
	t.Setenv(credentials.EnvAccessKeyPassword, "env-secret")

	cred, err := credentials.FromEnv()

	require.NoError(t, err)
	require.Equal(t, "env-id", cred.AccessKeyID)
	require.Equal(t, "env-secret", cred.AccessKeyPassword)
}

func TestFromEnv_FailsWhenUnset(t *testing.T) {
	t.Setenv(credentials.EnvAccessKeyID, "")
	t.Setenv(credentials.EnvAccessKeyPassword, "")

	_, err := credentials.FromEnv()

	require.ErrorIs(t, err, credentials.ErrMissingCredential)
}

func TestNew_ValidatesValues(t *testing.T) {
	t.Parallel()

	_, err := credentials.New("", "secret")
	require.ErrorIs(t, err, credentials.ErrMissingCredential)

	_, err = credentials.New("id", "")
	require.ErrorIs(t, err, credentials.ErrMissingCredential)

	cred, err := credentials.New("id", "secret")
	require.NoError(t, err)
	require.Equal(t, "id", cred.AccessKeyID)
}

func TestAccessKeyCredential_StringRedactsSecret(t *testing.T) {
	t.Parallel()

	cred, err := credentials.New("AKID", "top-secret")
	require.NoError(t, err)

	require.NotContains(t, cred.String(), "top-secret")
	require.NotContains(t, fmt.Sprintf("%v", cred), "top-secret")
	require.Contains(t, cred.String(), "AKID")
}
