package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/skills"
	"github.com/samber/lo"
)

const neutralFallbackScore = 50

// KeywordScore is the deterministic fallback: the share of skills named by the
// posting that the candidate has.
func KeywordScore(description string, requiredSkills []string, profile models.Profile) models.MatchResult {

	jobSkills := skills.FindIn(description, append(append([]string{}, requiredSkills...), skills.Known...))
	if len(jobSkills) > skills.MaxExtracted {
		jobSkills = jobSkills[:skills.MaxExtracted]
	}
	if len(jobSkills) == 0 {
		jobSkills = lo.Uniq(lo.Filter(requiredSkills, func(s string, _ int) bool {
			return strings.TrimSpace(s) != ""
		}))
	}

	if len(jobSkills) == 0 {
		return models.MatchResult{
			Score:    neutralFallbackScore,
			Summary:  "No skills found in the posting, neutral score assigned",
			Backend:  models.KeywordFallbackScorer,
			Fallback: true,
		}
	}

	candidate := strings.Join(profile.Skills, "\n") + "\n" + profile.ResumeText
	matching, missing := lo.FilterReject(jobSkills, func(skill string, _ int) bool {
		return skills.Contains(candidate, skill)
	})

	score := math.Round(float64(len(matching)) * 100 / float64(len(jobSkills)))

	return models.MatchResult{
		Score:          models.ClampScore(score),
		MatchingSkills: matching,
		MissingSkills:  missing,
		Summary:        fmt.Sprintf("Keyword overlap: %d of %d skills", len(matching), len(jobSkills)),
		Backend:        models.KeywordFallbackScorer,
		Fallback:       true,
	}
}
