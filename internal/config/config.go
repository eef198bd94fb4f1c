package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	AI       AIConfig       `mapstructure:"ai"`
	Store    StoreConfig    `mapstructure:"store"`
	DB       DBConfig       `mapstructure:"db"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Search   SearchConfig   `mapstructure:"search"`
}

type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

const defaultConfigFile = "./configs/config.yaml"

// Get loads the config file named by CONFIG_PATH, or the default one.
func Get() *Config {

	configFile := defaultConfigFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := Load(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func Load(file string) (*Config, error) {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(file)
	setDefaults(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "jobscout")
	v.SetDefault("logger.output_file", "./logs/jobscout.log")
	v.SetDefault("metrics.port", 0)
	BrowserConfig{}.setDefaults(v)
	AIConfig{}.setDefaults(v)
	StoreConfig{}.setDefaults(v)
	NotifyConfig{}.setDefaults(v)
	ScheduleConfig{}.setDefaults(v)
	SearchConfig{}.setDefaults(v)
}

type section interface {
	bindEnvironmentVariables(v *viper.Viper) error
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	sections := map[string]section{
		"LoggerConfig":   LoggerConfig{},
		"AIConfig":       AIConfig{},
		"StoreConfig":    StoreConfig{},
		"DBConfig":       DBConfig{},
		"NotifyConfig":   NotifyConfig{},
		"ScheduleConfig": ScheduleConfig{},
		"SearchConfig":   SearchConfig{},
		"BrowserConfig":  BrowserConfig{},
	}
	for name, s := range sections {
		if err := s.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if err := v.BindEnv("metrics.port", "METRICS_PORT"); err != nil {
		errs = append(errs, fmt.Errorf("MetricsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Browser.validate(); err != nil {
		errs = append(errs, fmt.Errorf("BrowserConfig: %w", err))
	}

	if err := config.AI.validate(); err != nil {
		errs = append(errs, fmt.Errorf("AIConfig: %w", err))
	}

	if err := config.Store.validate(); err != nil {
		errs = append(errs, fmt.Errorf("StoreConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Notify.validate(); err != nil {
		errs = append(errs, fmt.Errorf("NotifyConfig: %w", err))
	}

	if err := config.Schedule.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ScheduleConfig: %w", err))
	}

	if err := config.Search.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SearchConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(v *viper.Viper, bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
