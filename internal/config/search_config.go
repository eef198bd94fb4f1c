package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/spf13/viper"
)

type SearchConfig struct {
	ProfilePath            string                  `mapstructure:"profile_path"`
	MaxKeywordsPerCategory int                     `mapstructure:"max_keywords_per_category"`
	Categories             []models.SearchCategory `mapstructure:"categories"`
}

func (config SearchConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("search.profile_path", "./configs/profile.yaml")
}

func (config SearchConfig) validate() error {
	var errs []error

	if config.ProfilePath == "" {
		errs = append(errs, fmt.Errorf("missing variable: profile_path"))
	}
	if config.MaxKeywordsPerCategory < 0 {
		errs = append(errs, fmt.Errorf("max_keywords_per_category must not be negative"))
	}
	if len(config.Categories) == 0 {
		errs = append(errs, fmt.Errorf("at least one category is required"))
	}

	validate := validator.New()
	for i, category := range config.Categories {
		if err := validate.Struct(category); err != nil {
			errs = append(errs, fmt.Errorf("category %d (%s): %w", i, category.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (config SearchConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"search.profile_path": "PROFILE_PATH",
	})
}
