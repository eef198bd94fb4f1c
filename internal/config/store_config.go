package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type StoreBackend string

const (
	StoreSheets StoreBackend = "sheets"
	StoreSQLite StoreBackend = "sqlite"
)

type StoreConfig struct {
	Backend         StoreBackend `mapstructure:"backend"`
	SpreadsheetID   string       `mapstructure:"spreadsheet_id"`
	SheetName       string       `mapstructure:"sheet_name"`
	CredentialsFile string       `mapstructure:"credentials_file"`
}

func (config StoreConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", string(StoreSQLite))
	v.SetDefault("store.sheet_name", "Jobs")
}

func (config StoreConfig) validate() error {

	switch config.Backend {
	case StoreSQLite:
		return nil
	case StoreSheets:
	default:
		return fmt.Errorf("unknown store backend %q", config.Backend)
	}

	var missingFields []string

	if config.SpreadsheetID == "" {
		missingFields = append(missingFields, "spreadsheet_id")
	}

	if config.CredentialsFile == "" {
		missingFields = append(missingFields, "credentials_file")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config StoreConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"store.backend":          "STORE_BACKEND",
		"store.spreadsheet_id":   "SPREADSHEET_ID",
		"store.credentials_file": "GOOGLE_CREDENTIALS_FILE",
	})
}
