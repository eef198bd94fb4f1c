package models

import (
	"fmt"
	"time"
)

type JobStatus string

const (
	StatusNew         JobStatus = "new"
	StatusSaved       JobStatus = "saved"
	StatusApplied     JobStatus = "applied"
	StatusInterview   JobStatus = "interview"
	StatusRejected    JobStatus = "rejected"
	StatusNotRelevant JobStatus = "not_relevant"
)

const KeywordFallbackScorer = "keyword_fallback"

// Job is one posting as extracted from the source, enriched by the matcher.
// Pointer fields are nil when the source page did not show the value.
type Job struct {
	ID               string `gorm:"primaryKey"`
	Title            string
	Company          string
	Location         string
	JobType          JobType
	ExperienceLevel  ExperienceLevel
	Level            *int
	Description      string
	Responsibilities []string `gorm:"serializer:json"`
	Skills           []string `gorm:"serializer:json"`
	SalaryRange      *string
	PostedAt         string
	ApplicantCount   *int
	URL              string
	MatchScore       *float64
	MatchingSkills   []string `gorm:"serializer:json"`
	MissingSkills    []string `gorm:"serializer:json"`
	MatchSummary     string
	ScoredBy         string
	Category         string
	Keyword          string
	Status           JobStatus `gorm:"default:new"`
	ScrapedAt        time.Time
}

func (j *Job) ApplyMatch(result MatchResult) {
	score := result.Score
	j.MatchScore = &score
	j.MatchingSkills = result.MatchingSkills
	j.MissingSkills = result.MissingSkills
	j.MatchSummary = result.Summary
	j.ScoredBy = result.Backend
}

func (j Job) String() string {
	return fmt.Sprintf("%s at %s (%s)", j.Title, j.Company, j.ID)
}

type MatchResult struct {
	Score          float64
	MatchingSkills []string
	MissingSkills  []string
	Summary        string
	Backend        string
	Fallback       bool
}

// ClampScore bounds a score to [0, 100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Fallback reports whether the score came from keyword overlap rather than a model.
func (j Job) Fallback() bool {
	return j.ScoredBy == KeywordFallbackScorer
}
