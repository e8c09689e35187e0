package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the production iContact API endpoint
	DefaultBaseURL = "https://app.icontact.com/icp"
	// SandboxBaseURL is the iContact sandbox endpoint
	SandboxBaseURL = "https://app.sandbox.icontact.com/icp"
	// DefaultAPIVersion is the latest API version the client speaks
	DefaultAPIVersion = "2.2"
)

type Config struct {
	Username       string
	AppID          string
	AppPassword    string
	APIVersion     string
	BaseURL        string
	AccountID      string
	ClientFolderID string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Username:       os.Getenv("ICONTACT_USERNAME"),
		AppID:          os.Getenv("ICONTACT_APP_ID"),
		AppPassword:    os.Getenv("ICONTACT_APP_PASSWORD"),
		APIVersion:     os.Getenv("ICONTACT_API_VERSION"),
		BaseURL:        os.Getenv("ICONTACT_BASE_URL"),
		AccountID:      os.Getenv("ICONTACT_ACCOUNT_ID"),
		ClientFolderID: os.Getenv("ICONTACT_CLIENT_FOLDER_ID"),
	}

	if cfg.BaseURL == "" {
		if sandbox, _ := strconv.ParseBool(os.Getenv("ICONTACT_SANDBOX")); sandbox {
			cfg.BaseURL = SandboxBaseURL
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills in the API version and base URL when unset and
// normalizes the base URL so resource paths can be appended directly.
func (c *Config) ApplyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("ICONTACT_USERNAME is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("ICONTACT_APP_ID is required")
	}
	if c.AppPassword == "" {
		return fmt.Errorf("ICONTACT_APP_PASSWORD is required")
	}
	// AccountID and ClientFolderID are optional: accounts and time work without them
	return nil
}
