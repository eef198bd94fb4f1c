package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type BrowserConfig struct {
	Headless    bool          `mapstructure:"headless"`
	Install     bool          `mapstructure:"install"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	CookiesFile string        `mapstructure:"cookies_file"`
	BaseURL     string        `mapstructure:"base_url"`
	MinDelay    time.Duration `mapstructure:"min_delay"`
	Jitter      time.Duration `mapstructure:"jitter"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Backoff     time.Duration `mapstructure:"backoff"`
}

func (config BrowserConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.timeout", 30*time.Second)
	v.SetDefault("browser.min_delay", 5*time.Second)
	v.SetDefault("browser.jitter", 2*time.Second)
	v.SetDefault("browser.max_attempts", 3)
	v.SetDefault("browser.backoff", 2*time.Second)
}

func (config BrowserConfig) validate() error {
	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if config.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if config.MinDelay < 0 || config.Jitter < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

func (config BrowserConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"browser.headless":     "BROWSER_HEADLESS",
		"browser.cookies_file": "BROWSER_COOKIES_FILE",
		"browser.min_delay":    "BROWSER_MIN_DELAY",
	})
}
