// Package config resolves the layered CLI configuration.
//
// Four layers merge in increasing priority: built-in defaults, the YAML
// config file, GCPHCP_* environment variables, and explicit CLI flags.
// A missing config file is not an error; a missing api_endpoint after
// merging all layers is a fatal ConfigError raised before any network
// call.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

const (
	// KeyAPIEndpoint through KeyRetryAttempts are the recognized
	// configuration keys. "config set" rejects anything else.
	KeyAPIEndpoint       = "api_endpoint"
	KeyDefaultProject    = "default_project"
	KeyCredentialsPath   = "credentials_path"
	KeyClientSecretsPath = "client_secrets_path"
	KeyTimeout           = "timeout"
	KeyRetryAttempts     = "retry_attempts"

	envPrefix = "GCPHCP"

	defaultTimeout       = 30 * time.Second
	defaultRetryAttempts = 3
)

// Keys lists the recognized configuration keys in display order.
var Keys = []string{
	KeyAPIEndpoint,
	KeyDefaultProject,
	KeyCredentialsPath,
	KeyClientSecretsPath,
	KeyTimeout,
	KeyRetryAttempts,
}

// Config is the immutable per-invocation configuration snapshot.
type Config struct {
	APIEndpoint       string
	DefaultProject    string
	CredentialsPath   string
	ClientSecretsPath string
	Timeout           time.Duration
	RetryAttempts     int

	// FilePath is the config file the snapshot was resolved against,
	// whether or not the file exists.
	FilePath string
}

// Overrides carries explicit CLI flag values. Empty fields leave the
// lower layers untouched.
type Overrides struct {
	ConfigFile  string
	APIEndpoint string
	Project     string
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gcphcp"
	}
	return filepath.Join(home, ".gcphcp")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Resolve merges all configuration layers into a snapshot and fails
// with a ConfigError when no layer supplies a usable api_endpoint.
func Resolve(o Overrides) (*Config, error) {
	cfg, err := ResolveLocal(o)
	if err != nil {
		return nil, err
	}
	if err := validateEndpoint(cfg.APIEndpoint); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveLocal merges all layers without requiring api_endpoint. Used
// by commands that never touch the resource API (auth, config).
func ResolveLocal(o Overrides) (*Config, error) {
	v := viper.New()

	dir := DefaultDir()
	v.SetDefault(KeyCredentialsPath, filepath.Join(dir, "credentials.json"))
	v.SetDefault(KeyClientSecretsPath, filepath.Join(dir, "client_secrets.json"))
	v.SetDefault(KeyTimeout, defaultTimeout.String())
	v.SetDefault(KeyRetryAttempts, defaultRetryAttempts)

	path := o.ConfigFile
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, clierr.Wrap(clierr.Config, fmt.Sprintf("failed to read config file %s", path), err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// GCPHCP_PROJECT is the documented variable; the key name differs.
	_ = v.BindEnv(KeyDefaultProject, "GCPHCP_PROJECT", "GCPHCP_DEFAULT_PROJECT")
	_ = v.BindEnv(KeyClientSecretsPath, "GCPHCP_CLIENT_SECRETS", "GCPHCP_CLIENT_SECRETS_PATH")

	// Explicit flags always win. viper.Set sits above every other layer.
	if o.APIEndpoint != "" {
		v.Set(KeyAPIEndpoint, o.APIEndpoint)
	}
	if o.Project != "" {
		v.Set(KeyDefaultProject, o.Project)
	}

	cfg := &Config{
		APIEndpoint:       v.GetString(KeyAPIEndpoint),
		DefaultProject:    v.GetString(KeyDefaultProject),
		CredentialsPath:   v.GetString(KeyCredentialsPath),
		ClientSecretsPath: v.GetString(KeyClientSecretsPath),
		Timeout:           v.GetDuration(KeyTimeout),
		RetryAttempts:     v.GetInt(KeyRetryAttempts),
		FilePath:          path,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	return cfg, nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return clierr.New(clierr.Config,
			"api_endpoint is not set; provide --api-endpoint, set GCPHCP_API_ENDPOINT, or run 'gcphcp config set api_endpoint <url>'")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return clierr.Newf(clierr.Config, "api_endpoint %q is not an absolute http(s) URL", endpoint)
	}
	return nil
}
