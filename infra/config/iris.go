package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	iristime "github.com/drakos74/free-iris/internal/time"
	"github.com/rs/zerolog"
)

const (
	IrisKey = "iris"

	apiURLEnv   = "IRIS_API_URL"
	portEnv     = "IRIS_PORT"
	logLevelEnv = "IRIS_LOG_LEVEL"
	timeoutEnv  = "IRIS_TIMEOUT"
	proxyEnv    = "IRIS_PROXY"
	// TelegramTokenEnv enables the telegram channel when set.
	TelegramTokenEnv = "TELEGRAM_BOT_TOKEN"
)

// Iris is the configuration of the iris form service.
type Iris struct {
	// BaseURL is the address of the prediction service, always explicit.
	BaseURL string `json:"base_url"`
	Port    int    `json:"port"`
	// Timeout of a single call to the service, zero keeps the transport default.
	Timeout  iristime.Duration `json:"timeout"`
	LogLevel string            `json:"log_level"`
	// Proxy exposes the prediction service under /api/ on the local server.
	Proxy      bool              `json:"proxy"`
	SessionTTL iristime.Duration `json:"session_ttl"`
	Telegram   Telegram          `json:"telegram"`
}

// Telegram configures the chat channel.
type Telegram struct {
	Token  string `json:"-"`
	Prefix string `json:"prefix"`
}

// Enabled reports whether the chat channel should run.
func (t Telegram) Enabled() bool {
	return t.Token != ""
}

// Default returns the configuration used when no file is provided.
func Default() Iris {
	return Iris{
		BaseURL:    "http://localhost:8000",
		Port:       8080,
		LogLevel:   "info",
		SessionTTL: iristime.Duration{Duration: 24 * time.Hour},
		Telegram: Telegram{
			Prefix: "iris",
		},
	}
}

// LoadIris loads the iris config file on top of the defaults and applies the environment overrides.
func LoadIris() (Iris, error) {
	cfg := Default()
	if _, err := os.Stat(fmt.Sprintf("%s/%s.json", Path, IrisKey)); err == nil {
		if err := Load(IrisKey, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.FromEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// MustLoadIris loads the named config file on top of the defaults and applies the environment overrides.
// The file must exist, any error panics.
func MustLoadIris(key string) Iris {
	cfg := Default()
	MustLoad(key, &cfg)
	if err := cfg.FromEnv(os.LookupEnv); err != nil {
		panic(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

// FromEnv applies the overrides found through lookup.
func (c *Iris) FromEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(apiURLEnv); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(portEnv); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", portEnv, err)
		}
		c.Port = port
	}
	if v, ok := lookup(logLevelEnv); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(timeoutEnv); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", timeoutEnv, err)
		}
		c.Timeout = iristime.Duration{Duration: d}
	}
	if v, ok := lookup(proxyEnv); ok && v != "" {
		proxy, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", proxyEnv, err)
		}
		c.Proxy = proxy
	}
	if v, ok := lookup(TelegramTokenEnv); ok {
		c.Telegram.Token = v
	}
	return nil
}

// Validate checks the configuration.
func (c Iris) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url '%s': %w", c.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base url must be absolute: '%s'", c.BaseURL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("invalid timeout: %v", c.Timeout.Duration)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level.
func (c Iris) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level '%s': %w", c.LogLevel, err)
	}
	return level, nil
}
