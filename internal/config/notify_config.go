package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type NotifyConfig struct {
	TelegramToken string  `mapstructure:"telegram_token"`
	ChatID        int64   `mapstructure:"chat_id"`
	MinScore      float64 `mapstructure:"min_score"`
}

func (config NotifyConfig) Enabled() bool {
	return config.TelegramToken != ""
}

func (config NotifyConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("notify.min_score", 80)
}

func (config NotifyConfig) validate() error {
	if config.MinScore < 0 || config.MinScore > 100 {
		return fmt.Errorf("min_score must be within [0, 100]")
	}
	if config.Enabled() && config.ChatID == 0 {
		return fmt.Errorf("missing variable: chat_id")
	}
	return nil
}

func (config NotifyConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"notify.telegram_token": "TG_TOKEN",
		"notify.chat_id":        "TG_CHAT_ID",
	})
}
