package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ICONTACT_USERNAME", "tester")
	t.Setenv("ICONTACT_APP_ID", "app-id")
	t.Setenv("ICONTACT_APP_PASSWORD", "secret")
	t.Setenv("ICONTACT_API_VERSION", "")
	t.Setenv("ICONTACT_BASE_URL", "")
	t.Setenv("ICONTACT_SANDBOX", "")
	t.Setenv("ICONTACT_ACCOUNT_ID", "")
	t.Setenv("ICONTACT_CLIENT_FOLDER_ID", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tester", cfg.Username)
	assert.Equal(t, "app-id", cfg.AppID)
	assert.Equal(t, "secret", cfg.AppPassword)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.AccountID)
	assert.Empty(t, cfg.ClientFolderID)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ICONTACT_API_VERSION", "2.1")
	t.Setenv("ICONTACT_BASE_URL", "https://example.test/icp///")
	t.Setenv("ICONTACT_ACCOUNT_ID", "111")
	t.Setenv("ICONTACT_CLIENT_FOLDER_ID", "222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2.1", cfg.APIVersion)
	assert.Equal(t, "https://example.test/icp", cfg.BaseURL)
	assert.Equal(t, "111", cfg.AccountID)
	assert.Equal(t, "222", cfg.ClientFolderID)
}

func TestLoad_Sandbox(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ICONTACT_SANDBOX", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SandboxBaseURL, cfg.BaseURL)

	// An explicit base URL wins over the sandbox switch
	t.Setenv("ICONTACT_BASE_URL", "https://example.test/icp")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/icp", cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing username", Config{AppID: "a", AppPassword: "p"}, "ICONTACT_USERNAME is required"},
		{"missing app id", Config{Username: "u", AppPassword: "p"}, "ICONTACT_APP_ID is required"},
		{"missing password", Config{Username: "u", AppID: "a"}, "ICONTACT_APP_PASSWORD is required"},
		{"complete", Config{Username: "u", AppID: "a", AppPassword: "p"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ICONTACT_APP_PASSWORD", "")

	_, err := Load()
	assert.EqualError(t, err, "ICONTACT_APP_PASSWORD is required")
}
