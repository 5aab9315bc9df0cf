package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvAPIBase        = "PDFCHAT_API_BASE"
	EnvRequestTimeout = "PDFCHAT_TIMEOUT"
	EnvLogFile        = "PDFCHAT_LOG_FILE"
	EnvVerbose        = "PDFCHAT_VERBOSE"
	EnvMarkdown       = "PDFCHAT_MARKDOWN"
)

// Config holds all application configuration
type Config struct {
	// Backend settings
	APIBase        string        `validate:"required,http_url"`
	RequestTimeout time.Duration `validate:"gte=0"`
	HealthTimeout  time.Duration `validate:"gt=0"`

	// Logging settings
	LogFilePath string `validate:"required"`
	Verbose     bool

	// Display settings
	RenderMarkdown bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		// Backend defaults
		APIBase:        "http://localhost:8000",
		RequestTimeout: 300 * time.Second,
		HealthTimeout:  5 * time.Second,

		// Logging defaults
		LogFilePath: expandHome("~/.pdf-chat/pdf-chat.log"),
		Verbose:     false,

		// Display defaults
		RenderMarkdown: true,
	}
}

// LoadEnv overlays values from a .env file (when present) and the process
// environment on top of the current configuration.
func (c *Config) LoadEnv(files ...string) error {
	if len(files) > 0 {
		// Missing .env files are not an error; the environment alone is enough.
		_ = godotenv.Load(files...)
	}

	if v := GetEnv(EnvAPIBase); v != "" {
		c.APIBase = v
	}
	if v := GetEnv(EnvRequestTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	if v := GetEnv(EnvLogFile); v != "" {
		c.LogFilePath = expandHome(v)
	}
	if v := GetEnv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	if v := GetEnv(EnvMarkdown); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMarkdown, err)
		}
		c.RenderMarkdown = b
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	c.APIBase = strings.TrimRight(c.APIBase, "/")

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: failed %q check", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	return nil
}

var validate = validator.New()

// parseTimeout accepts either a Go duration ("90s") or a whole number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// expandHome expands the ~ in file paths to the user's home directory
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		return getHomeDir() + path[1:]
	}
	return path
}

// getHomeDir returns the user's home directory
func getHomeDir() string {
	if home := GetEnv("HOME"); home != "" {
		return home
	}
	// Fallback for Windows
	if home := GetEnv("USERPROFILE"); home != "" {
		return home
	}
	return "."
}

// GetEnv is a wrapper around os.Getenv for easier testing
var GetEnv = func(key string) string {
	// Will be replaced with os.Getenv in main
	return ""
}
