package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	LockFile         string `mapstructure:"lock_file"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.lock_file":         "DB_LOCK_FILE",
	})
}
