package models

import (
	"github.com/go-playground/validator/v10"
)

type Profile struct {
	Name       string   `mapstructure:"name" validate:"required"`
	Title      string   `mapstructure:"title"`
	Email      string   `mapstructure:"email"`
	Phone      string   `mapstructure:"phone"`
	Location   string   `mapstructure:"location"`
	Skills     []string `mapstructure:"skills"`
	ResumeFile string   `mapstructure:"resume_file"`
	ResumeText string   `mapstructure:"resume_text" validate:"required"`
}

func (p Profile) Validate() error {
	return validator.New().Struct(p)
}
