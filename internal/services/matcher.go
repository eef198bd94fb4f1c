package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maxaizer/jobscout/internal/clients/llm"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/logger"
	"github.com/maxaizer/jobscout/internal/metrics"
	"github.com/maxaizer/jobscout/internal/retry"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

var errUnparsable = errors.New("unparsable scoring response")

type ScoringBackend interface {
	Name() string
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

type MatcherConfig struct {
	MaxAttempts    int
	Backoff        time.Duration
	RequestTimeout time.Duration
	MaxResumeChars int
}

// Matcher scores postings against the profile. Backends are tried in order;
// when none produces a usable answer the keyword overlap score is used.
type Matcher struct {
	backends []ScoringBackend
	cfg      MatcherConfig
	cache    *gocache.Cache
}

func NewMatcher(cfg MatcherConfig, backends ...ScoringBackend) *Matcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.MaxResumeChars <= 0 {
		cfg.MaxResumeChars = 3000
	}
	return &Matcher{
		backends: backends,
		cfg:      cfg,
		cache:    gocache.New(6*time.Hour, time.Hour),
	}
}

// Score rates how well the posting description fits the profile. It returns
// an error only when ctx is done.
func (m *Matcher) Score(ctx context.Context, job models.Job, requiredSkills []string,
	profile models.Profile) (models.MatchResult, error) {

	prompt := m.matchRequest(job, requiredSkills, profile)

	cacheable := strings.TrimSpace(job.Description) != ""
	cacheID := createAnalysisCacheID(job.Category, prompt)
	if cacheable {
		if cached, found := m.cache.Get(cacheID); found {
			return cached.(models.MatchResult), nil
		}
	}

	for _, backend := range m.backends {
		start := time.Now()
		result, err := m.scoreWith(ctx, backend, prompt)
		metrics.StepDuration.WithLabelValues("scoring").Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.ScoresCounter.WithLabelValues(result.Backend).Inc()
			if cacheable {
				m.cache.Set(cacheID, result, gocache.DefaultExpiration)
			}
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.MatchResult{}, ctxErr
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("backend %s failed to score %s: %v", backend.Name(), job.ID, err)
	}

	result := KeywordScore(job.Title+"\n"+job.Description, requiredSkills, profile)
	metrics.ScoresCounter.WithLabelValues(result.Backend).Inc()
	log.Infof("scored %s with keyword fallback: %.0f", job.ID, result.Score)
	return result, nil
}

func (m *Matcher) scoreWith(ctx context.Context, backend ScoringBackend, prompt string) (models.MatchResult, error) {
	var result models.MatchResult

	policy := retry.Policy{MaxAttempts: m.cfg.MaxAttempts, Backoff: m.cfg.Backoff, Name: backend.Name()}
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		callCtx, cancel := m.callContext(ctx)
		defer cancel()

		response, err := backend.GenerateResponse(callCtx, prompt)
		if err != nil {
			if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %w", llm.ErrTimeout, err)
			}
			return err
		}

		result, err = parseMatchResponse(response)
		if err != nil {
			log.Debugf("unparsable response from %s: %q", backend.Name(), truncate(response, 200))
			return err
		}
		result.Backend = backend.Name()
		return nil
	}, func(err error) bool {
		return llm.IsTransient(err) || errors.Is(err, errUnparsable)
	})

	return result, err
}

func (m *Matcher) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.cfg.RequestTimeout)
}

func (m *Matcher) matchRequest(job models.Job, requiredSkills []string, profile models.Profile) string {

	var sb strings.Builder
	sb.WriteString("Analyze how well the candidate fits the job posting.\n\n")
	sb.WriteString("Job title: " + job.Title + "\n")
	if job.Company != "" {
		sb.WriteString("Company: " + job.Company + "\n")
	}
	sb.WriteString("Job description:\n" + job.Description + "\n\n")
	if len(requiredSkills) > 0 {
		sb.WriteString("Skills the candidate is searching for: " + strings.Join(requiredSkills, ", ") + "\n")
	}
	sb.WriteString("Candidate: " + profile.Name)
	if profile.Title != "" {
		sb.WriteString(", " + profile.Title)
	}
	sb.WriteString("\n")
	if len(profile.Skills) > 0 {
		sb.WriteString("Candidate skills: " + strings.Join(profile.Skills, ", ") + "\n")
	}
	sb.WriteString("Resume:\n" + truncate(profile.ResumeText, m.cfg.MaxResumeChars) + "\n\n")
	sb.WriteString(`Return ONLY valid JSON with this structure:
{
  "overall_match_score": 0-100,
  "technical_skills": [],
  "matching_skills": [],
  "missing_skills": [],
  "ai_summary": "two sentence assessment of the fit"
}`)
	return sb.String()
}

// score accepts both numbers and strings like "85%".
type score float64

func (s *score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*s = score(value)
	return nil
}

type matchResponse struct {
	OverallMatchScore *score   `json:"overall_match_score"`
	MatchingSkills    []string `json:"matching_skills"`
	MissingSkills     []string `json:"missing_skills"`
	Summary           string   `json:"ai_summary"`
}

var jsonObjectRegexp = regexp.MustCompile(`(?s)\{.*\}`)

func parseMatchResponse(response string) (models.MatchResult, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	object := jsonObjectRegexp.FindString(cleaned)
	if object == "" {
		return models.MatchResult{}, fmt.Errorf("%w: no json object", errUnparsable)
	}

	var parsed matchResponse
	if err := json.Unmarshal([]byte(object), &parsed); err != nil {
		return models.MatchResult{}, fmt.Errorf("%w: %w", errUnparsable, err)
	}
	if parsed.OverallMatchScore == nil {
		return models.MatchResult{}, fmt.Errorf("%w: overall_match_score is missing", errUnparsable)
	}

	return models.MatchResult{
		Score:          models.ClampScore(float64(*parsed.OverallMatchScore)),
		MatchingSkills: parsed.MatchingSkills,
		MissingSkills:  parsed.MissingSkills,
		Summary:        parsed.Summary,
	}, nil
}

// createAnalysisCacheID keys a result by everything the model was shown.
func createAnalysisCacheID(category, prompt string) string {
	promptHash := sha256.Sum256([]byte(prompt))
	return category + ":" + hex.EncodeToString(promptHash[:])
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
