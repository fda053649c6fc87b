package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	EnvRemoteURL       = "MANIFEST_REMOTE_URL"
	EnvRemoteUsername  = "MANIFEST_REMOTE_USERNAME"
	EnvRemotePassword  = "MANIFEST_REMOTE_PASSWORD"
	EnvRemoteLogoutAll = "MANIFEST_REMOTE_LOGOUT_ALL"
	EnvRemoteTimeout   = "MANIFEST_REMOTE_TIMEOUT"

	EnvRemoteTenantID        = "MANIFEST_REMOTE_TENANT_ID"
	EnvRemoteTenantName      = "MANIFEST_REMOTE_TENANT_NAME"
	EnvRemoteTenantSubdomain = "MANIFEST_REMOTE_TENANT_SUBDOMAIN"
	EnvRemoteTenantCode      = "MANIFEST_REMOTE_TENANT_CODE"
)

// TenantConfig identifies the tenant scope sent with every remote API call.
type TenantConfig struct {
	ID        string `toml:"id" json:"id"`
	Name      string `toml:"name" json:"name"`
	Subdomain string `toml:"subdomain" json:"subdomain"`
	Code      string `toml:"code" json:"code"`
	Active    bool   `toml:"active" json:"active"`
}

// RemoteConfig holds connection and credential settings for the
// order-management GraphQL API.
type RemoteConfig struct {
	URL       string       `toml:"url"`
	Username  string       `toml:"username"`
	Password  string       `toml:"password"`
	LogoutAll bool         `toml:"logout_all"`
	Timeout   string       `toml:"timeout"`
	Tenant    TenantConfig `toml:"tenant"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *RemoteConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// TenantHeader returns the tenant scope serialized for the tenant HTTP header.
func (c *RemoteConfig) TenantHeader() string {
	data, _ := json.Marshal(c.Tenant)
	return string(data)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RemoteConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *RemoteConfig) Merge(overlay *RemoteConfig) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Username != "" {
		c.Username = overlay.Username
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	c.LogoutAll = overlay.LogoutAll
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Tenant.ID != "" {
		c.Tenant.ID = overlay.Tenant.ID
	}
	if overlay.Tenant.Name != "" {
		c.Tenant.Name = overlay.Tenant.Name
	}
	if overlay.Tenant.Subdomain != "" {
		c.Tenant.Subdomain = overlay.Tenant.Subdomain
	}
	if overlay.Tenant.Code != "" {
		c.Tenant.Code = overlay.Tenant.Code
	}
}

func (c *RemoteConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	c.Tenant.Active = true
}

func (c *RemoteConfig) loadEnv() {
	if v := os.Getenv(EnvRemoteURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvRemoteUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvRemotePassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvRemoteLogoutAll); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogoutAll = b
		}
	}
	if v := os.Getenv(EnvRemoteTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvRemoteTenantID); v != "" {
		c.Tenant.ID = v
	}
	if v := os.Getenv(EnvRemoteTenantName); v != "" {
		c.Tenant.Name = v
	}
	if v := os.Getenv(EnvRemoteTenantSubdomain); v != "" {
		c.Tenant.Subdomain = v
	}
	if v := os.Getenv(EnvRemoteTenantCode); v != "" {
		c.Tenant.Code = v
	}
}

func (c *RemoteConfig) validate() error {
	if c.URL == "" {
		return fmt.Errorf("url required")
	}
	if _, err := url.ParseRequestURI(c.URL); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
