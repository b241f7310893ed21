package testutil

import (
	"os"
	"testing"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
	"github.com/stretchr/testify/require"
)

func TestCredential(t testing.TB) credentials.AccessKeyCredential {
	t.Helper()

	cred, err := credentials.New("test-access-key-id", "test-access-key-password")
	require.NoError(t, err)

	return cred
}

// UnsetCredentialEnv removes both credential variables for the duration of
// the test. Like t.Setenv it cannot be used in parallel tests.
func UnsetCredentialEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{credentials.EnvAccessKeyID, credentials.EnvAccessKeyPassword} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func SetCredentialEnv(t *testing.T, cred credentials.AccessKeyCredential) {
	t.Helper()

	t.Setenv(credentials.EnvAccessKeyID, cred.AccessKeyID)
	t.Setenv(credentials.EnvAccessKeyPassword, cred.AccessKeyPassword)
}

// RequireCredentialEnv skips live tests unless a real credential is set.
func RequireCredentialEnv(t *testing.T) credentials.AccessKeyCredential {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping live API test in short mode")
	}

	cred, err := credentials.FromEnv()
	if err != nil {
		t.Skipf("Live API test needs %s and %s", credentials.EnvAccessKeyID, credentials.EnvAccessKeyPassword)
	}

	return cred
}
