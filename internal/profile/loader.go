package profile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var ErrUnsupportedResume = errors.New("unsupported resume format")

// Loader reads the candidate profile from a yaml or json file. Resume text
// comes from resume_text when set, otherwise from resume_file.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Load(_ context.Context) (models.Profile, error) {

	v := viper.New()
	v.SetConfigFile(l.path)
	if err := v.ReadInConfig(); err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile %s: %w", l.path, err)
	}

	var profile models.Profile
	if err := v.Unmarshal(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	if strings.TrimSpace(profile.ResumeText) == "" && profile.ResumeFile != "" {
		resumePath := profile.ResumeFile
		if !filepath.IsAbs(resumePath) {
			resumePath = filepath.Join(filepath.Dir(l.path), resumePath)
			if _, err := os.Stat(resumePath); err != nil {
				resumePath = profile.ResumeFile
			}
		}
		text, err := ReadResume(resumePath)
		if err != nil {
			return models.Profile{}, err
		}
		profile.ResumeText = text
	}

	if err := profile.Validate(); err != nil {
		return models.Profile{}, fmt.Errorf("invalid profile: %w", err)
	}

	return profile, nil
}

func ReadResume(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read resume: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case ".pdf":
		return readPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedResume, path)
	}
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open resume pdf")
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, "failed to extract resume text")
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return "", errors.Wrap(err, "failed to extract resume text")
	}
	return strings.TrimSpace(string(data)), nil
}
