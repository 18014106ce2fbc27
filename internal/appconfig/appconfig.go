// internal/appconfig/appconfig.go
// Package appconfig holds the merged holonet configuration.
package appconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the config file read when --config is not given.
	DefaultConfigPath = "config/config.yaml"
	// DefaultBaseURL is the public Star Wars API root.
	DefaultBaseURL = "https://swapi.dev/api"
	// DefaultPages is the number of people listing pages indexed at startup.
	DefaultPages = 9
	// DefaultHost and DefaultPort are the web server bind address.
	DefaultHost = "127.0.0.1"
	DefaultPort = 5000
	// DefaultUserAgent is sent on every outbound request.
	DefaultUserAgent = "holonet/1.0"
	// defaultRequestTimeout bounds each outbound swapi call.
	defaultRequestTimeout = 10 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	BaseURL        string `mapstructure:"baseURL" yaml:"baseURL" json:"baseURL"`
	Pages          int    `mapstructure:"pages" yaml:"pages" json:"pages"`
	TimeoutSeconds int    `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	UserAgent      string `mapstructure:"userAgent" yaml:"userAgent" json:"userAgent"`
	Host           string `mapstructure:"host" yaml:"host" json:"host"`
	Port           int    `mapstructure:"port" yaml:"port" json:"port"`
	LogFile        string `mapstructure:"logFile" yaml:"logFile,omitempty" json:"logFile,omitempty"`
	Debug          bool   `mapstructure:"debug" yaml:"debug" json:"debug"`
	JSONMode       bool   `mapstructure:"jsonMode" yaml:"jsonMode" json:"jsonMode"`
	ConfigPath     string `mapstructure:"-" yaml:"-" json:"-"`
}

// Defaults returns a Config populated with every default value.
func Defaults() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Pages:          DefaultPages,
		TimeoutSeconds: int(defaultRequestTimeout.Seconds()),
		UserAgent:      DefaultUserAgent,
		Host:           DefaultHost,
		Port:           DefaultPort,
	}
}

// RequestTimeout returns the per-call timeout for swapi requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// APIBase returns the base URL without a trailing slash.
func (c Config) APIBase() string {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

// Addr returns the host:port the web server binds to.
func (c Config) Addr() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("%s:%d", host, c.Port)
}

// AgentString returns the User-Agent header value.
func (c Config) AgentString() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return DefaultUserAgent
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Pages < 1 {
		return fmt.Errorf("invalid configuration: pages must be at least 1, got %d", c.Pages)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid configuration: port %d out of range", c.Port)
	}
	u, err := url.Parse(c.APIBase())
	if err != nil {
		return fmt.Errorf("invalid configuration: baseURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("invalid configuration: baseURL must be an http or https URL")
	}
	if u.Host == "" {
		return errors.New("invalid configuration: baseURL has no host")
	}
	return nil
}
