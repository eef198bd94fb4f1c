package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AIBackend string

const (
	BackendAuto   AIBackend = "auto"
	BackendGroq   AIBackend = "groq"
	BackendGemini AIBackend = "gemini"
)

type AIConfig struct {
	Backend        AIBackend     `mapstructure:"backend"`
	GroqKey        string        `mapstructure:"groq_key"`
	GroqModel      string        `mapstructure:"groq_model"`
	GeminiKey      string        `mapstructure:"gemini_key"`
	GeminiModel    string        `mapstructure:"gemini_model"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	Backoff        time.Duration `mapstructure:"backoff"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxResumeChars int           `mapstructure:"max_resume_chars"`
	// Limits apply per backend; zero disables the limiter.
	MaxRequestsPerMinute float32 `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32 `mapstructure:"max_requests_per_day"`
}

func (config AIConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("ai.backend", string(BackendAuto))
	v.SetDefault("ai.max_attempts", 3)
	v.SetDefault("ai.backoff", 2*time.Second)
	v.SetDefault("ai.request_timeout", 60*time.Second)
	v.SetDefault("ai.max_resume_chars", 3000)
}

func (config AIConfig) validate() error {
	var errs []error

	switch config.Backend {
	case BackendAuto, BackendGroq, BackendGemini:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", config.Backend))
	}
	if config.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_attempts must be at least 1"))
	}
	if config.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout must be positive"))
	}
	if config.MaxRequestsPerMinute < 0 || config.MaxRequestsPerDay < 0 {
		errs = append(errs, fmt.Errorf("rate limits must not be negative"))
	}

	return errors.Join(errs...)
}

func (config AIConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"ai.backend":    "AI_BACKEND",
		"ai.groq_key":   "GROQ_API_KEY",
		"ai.gemini_key": "GEMINI_API_KEY",
	})
}
