package jobtrack_test

import (
	"os"
	"path/filepath"
	"testing"

	jobtrack "github.com/dan-yates1/job-tracker"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		jobtrack.EnvBaseURL,
		jobtrack.EnvStoragePath,
		jobtrack.EnvLoginPath,
		jobtrack.EnvTimezone,
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobtrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	opts, err := jobtrack.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, jobtrack.DefaultLoginPath, opts.GetLoginPath())
	assert.Equal(t, jobtrack.DefaultTokenKey, opts.GetTokenKey())
	assert.Equal(t, jobtrack.DefaultStoragePath(), opts.GetStoragePath())
	assert.Empty(t, opts.GetBaseURL())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearConfigEnv(t)

	opts, err := jobtrack.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, jobtrack.DefaultLoginPath, opts.LoginPath)
}

func TestLoadConfig_File(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfig(t, `
base_url: https://api.example.com
login_path: /signin
token_key: jobtrack_token
storage_path: /tmp/jobtrack/storage.json
timezone: UTC
`)

	opts, err := jobtrack.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", opts.BaseURL)
	assert.Equal(t, "/signin", opts.LoginPath)
	assert.Equal(t, "jobtrack_token", opts.TokenKey)
	assert.Equal(t, "/tmp/jobtrack/storage.json", opts.StoragePath)

	loc, err := opts.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(jobtrack.EnvBaseURL, "https://staging.example.com")
	t.Setenv(jobtrack.EnvLoginPath, "/auth/login")

	path := writeConfig(t, "base_url: https://api.example.com\n")

	opts, err := jobtrack.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", opts.BaseURL)
	assert.Equal(t, "/auth/login", opts.LoginPath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "base_url: [unclosed"},
		{"bad url", "base_url: not a url\n"},
		{"relative login path", "login_path: login\n"},
		{"unknown timezone", "timezone: Mars/Olympus\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)

			_, err := jobtrack.LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)

			var richErr *goerrors.Error
			require.True(t, goerrors.As(err, &richErr))
			assert.Equal(t, jobtrack.TextCodeInvalidConfig, richErr.TextCode)
		})
	}
}

func TestOptions_Location(t *testing.T) {
	loc, err := jobtrack.Options{}.Location()
	require.NoError(t, err)
	assert.NotNil(t, loc)
}
