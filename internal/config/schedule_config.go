package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type ScheduleConfig struct {
	// Cron is a standard five-field spec or a descriptor like "@every 6h".
	// Empty means a single run.
	Cron              string `mapstructure:"cron"`
	RunsRetentionDays int    `mapstructure:"runs_retention_days"`
}

func (config ScheduleConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("schedule.runs_retention_days", 30)
}

func (config ScheduleConfig) validate() error {
	if config.Cron != "" {
		if _, err := cron.ParseStandard(config.Cron); err != nil {
			return fmt.Errorf("invalid cron spec %q: %w", config.Cron, err)
		}
	}
	if config.RunsRetentionDays <= 0 {
		return fmt.Errorf("runs_retention_days must be greater than zero")
	}
	return nil
}

func (config ScheduleConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"schedule.cron": "SCHEDULE_CRON",
	})
}
