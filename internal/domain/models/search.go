package models

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

type JobType string

const (
	FullTime   JobType = "full-time"
	PartTime   JobType = "part-time"
	Contract   JobType = "contract"
	Temporary  JobType = "temporary"
	Internship JobType = "internship"
	Volunteer  JobType = "volunteer"
	OtherType  JobType = "other"
)

func ToJobType(s string) (JobType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	switch normalized {
	case string(FullTime):
		return FullTime, nil
	case string(PartTime):
		return PartTime, nil
	case string(Contract):
		return Contract, nil
	case string(Temporary):
		return Temporary, nil
	case string(Internship):
		return Internship, nil
	case string(Volunteer):
		return Volunteer, nil
	case string(OtherType):
		return OtherType, nil
	default:
		return "", errors.New("invalid job type")
	}
}

type ExperienceLevel string

const (
	InternLevel ExperienceLevel = "internship"
	EntryLevel  ExperienceLevel = "entry"
	Associate   ExperienceLevel = "associate"
	MidSenior   ExperienceLevel = "mid-senior"
	Director    ExperienceLevel = "director"
	Executive   ExperienceLevel = "executive"
)

func ToExperienceLevel(s string) (ExperienceLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimSuffix(normalized, " level")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	switch normalized {
	case string(InternLevel):
		return InternLevel, nil
	case string(EntryLevel), "entry-level", "junior":
		return EntryLevel, nil
	case string(Associate):
		return Associate, nil
	case string(MidSenior), "mid-senior-level", "senior":
		return MidSenior, nil
	case string(Director):
		return Director, nil
	case string(Executive):
		return Executive, nil
	default:
		return "", errors.New("invalid experience level")
	}
}

// ExperienceLevelForYears maps required years of experience onto a seniority bucket.
func ExperienceLevelForYears(years int) ExperienceLevel {
	switch {
	case years <= 2:
		return EntryLevel
	case years <= 5:
		return Associate
	case years <= 8:
		return MidSenior
	case years <= 12:
		return Director
	default:
		return Executive
	}
}

type PostedWithin string

const (
	PostedAnyTime   PostedWithin = "any"
	PostedPastHour  PostedWithin = "1h"
	PostedPastDay   PostedWithin = "24h"
	PostedPastWeek  PostedWithin = "week"
	PostedPastMonth PostedWithin = "month"
)

type SearchCategory struct {
	Name             string            `mapstructure:"name" validate:"required"`
	Keywords         []string          `mapstructure:"keywords" validate:"required,min=1,dive,required"`
	RequiredSkills   []string          `mapstructure:"required_skills"`
	Location         string            `mapstructure:"location"`
	Remote           bool              `mapstructure:"remote"`
	JobTypes         []JobType         `mapstructure:"job_types"`
	ExperienceLevels []ExperienceLevel `mapstructure:"experience_levels"`
	PostedWithin     PostedWithin      `mapstructure:"posted_within"`
	MaxResults       int               `mapstructure:"max_results" validate:"gte=1"`
}

// Query builds the extractor input for one keyword of the category.
func (c SearchCategory) Query(keyword string, limit int) SearchQuery {
	return SearchQuery{
		Keyword:          keyword,
		Location:         c.Location,
		Remote:           c.Remote,
		JobTypes:         c.JobTypes,
		ExperienceLevels: c.ExperienceLevels,
		PostedWithin:     c.PostedWithin,
		Limit:            limit,
	}
}

// KeywordsUpTo returns the first n keywords, or all of them when n <= 0.
func (c SearchCategory) KeywordsUpTo(n int) []string {
	keywords := lo.Filter(c.Keywords, func(k string, _ int) bool { return strings.TrimSpace(k) != "" })
	if n <= 0 || n >= len(keywords) {
		return keywords
	}
	return keywords[:n]
}

type SearchQuery struct {
	Keyword          string
	Location         string
	Remote           bool
	JobTypes         []JobType
	ExperienceLevels []ExperienceLevel
	PostedWithin     PostedWithin
	Limit            int
}
