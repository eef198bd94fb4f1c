package services

import (
	"context"
	"strings"
	"testing"

	"github.com/maxaizer/jobscout/internal/clients/llm"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testProfile = models.Profile{
	Name:       "Alex Doe",
	Title:      "Backend Engineer",
	Skills:     []string{"Go", "PostgreSQL", "Docker"},
	ResumeText: "Backend engineer with 6 years of Go, PostgreSQL and Docker. Some Kafka.",
}

var testJob = models.Job{
	ID:          "4012",
	Title:       "Senior Go Developer",
	Company:     "Acme",
	Description: "We need Go, Kubernetes, PostgreSQL and gRPC experience.",
	Category:    "Backend",
}

func newTestMatcher(backends ...ScoringBackend) *Matcher {
	return NewMatcher(MatcherConfig{MaxAttempts: 3, MaxResumeChars: 3000}, backends...)
}

func Test_Matcher_Score_ShouldParseBackendResponse(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).Return(
		"```json\n{\"overall_match_score\": \"84%\", \"matching_skills\": [\"Go\", \"PostgreSQL\"],"+
			" \"missing_skills\": [\"Kubernetes\"], \"ai_summary\": \"Strong fit.\"}\n```", nil).Once()

	result, err := newTestMatcher(backend).Score(context.Background(), testJob, []string{"Go"}, testProfile)

	require.NoError(t, err)
	assert.Equal(t, 84.0, result.Score)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.MatchingSkills)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingSkills)
	assert.Equal(t, "groq", result.Backend)
	assert.False(t, result.Fallback)
	backend.AssertExpectations(t)
}

func Test_Matcher_Score_ShouldClampScore(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"overall_match_score": 140, "matching_skills": []}`, nil).Once()

	result, err := newTestMatcher(backend).Score(context.Background(), testJob, nil, testProfile)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
}

func Test_Matcher_Score_WhenRateLimited_ShouldRetrySameBackend(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).Return("", llm.ErrRateLimited).Twice()
	backend.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"overall_match_score": 70}`, nil).Once()

	result, err := newTestMatcher(backend).Score(context.Background(), testJob, nil, testProfile)

	require.NoError(t, err)
	assert.Equal(t, 70.0, result.Score)
	backend.AssertNumberOfCalls(t, "GenerateResponse", 3)
}

func Test_Matcher_Score_WhenFastBackendFails_ShouldUsePaidBackend(t *testing.T) {
	fast := &mockBackend{name: "groq"}
	fast.On("GenerateResponse", mock.Anything, mock.Anything).Return("", llm.ErrUnavailable)
	paid := &mockBackend{name: "gemini"}
	paid.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"overall_match_score": 55, "matching_skills": ["Go"]}`, nil).Once()

	result, err := newTestMatcher(fast, paid).Score(context.Background(), testJob, nil, testProfile)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.Backend)
	fast.AssertNumberOfCalls(t, "GenerateResponse", 3)
}

func Test_Matcher_Score_WhenResponseUnparsable_ShouldFallBackToKeywords(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).Return("I think it is a good match", nil)

	result, err := newTestMatcher(backend).Score(context.Background(), testJob, []string{"Go", "Kubernetes"}, testProfile)

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, models.KeywordFallbackScorer, result.Backend)
	backend.AssertNumberOfCalls(t, "GenerateResponse", 3)
}

func Test_Matcher_Score_WithoutBackends_ShouldUseKeywordScore(t *testing.T) {
	result, err := newTestMatcher().Score(context.Background(), testJob, []string{"Go"}, testProfile)

	require.NoError(t, err)
	assert.True(t, result.Fallback)
}

func Test_Matcher_Score_WhenCanceled_ShouldReturnContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).Return("", context.Canceled)

	_, err := newTestMatcher(backend).Score(ctx, testJob, nil, testProfile)

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Matcher_Score_SameDescription_ShouldUseCache(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"overall_match_score": 61}`, nil).Once()
	matcher := newTestMatcher(backend)

	first, err := matcher.Score(context.Background(), testJob, nil, testProfile)
	require.NoError(t, err)
	repost := testJob
	repost.ID = "9999"
	second, err := matcher.Score(context.Background(), repost, nil, testProfile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	backend.AssertNumberOfCalls(t, "GenerateResponse", 1)
}

func Test_Matcher_Prompt_ShouldTruncateResume(t *testing.T) {
	matcher := NewMatcher(MatcherConfig{MaxResumeChars: 10})
	profile := testProfile
	profile.ResumeText = "0123456789ABCDEF"

	prompt := matcher.matchRequest(testJob, []string{"Go"}, profile)

	assert.Contains(t, prompt, "0123456789\n")
	assert.NotContains(t, prompt, "ABCDEF")
	assert.Contains(t, prompt, "overall_match_score")
	assert.Contains(t, prompt, testJob.Description)
}

func Test_parseMatchResponse_WithoutScore_ShouldBeUnparsable(t *testing.T) {
	_, err := parseMatchResponse(`{"matching_skills": ["Go"]}`)
	assert.ErrorIs(t, err, errUnparsable)

	_, err = parseMatchResponse(`no json here`)
	assert.ErrorIs(t, err, errUnparsable)
}

func Test_KeywordScore_ShouldCountOverlap(t *testing.T) {
	result := KeywordScore(testJob.Description, []string{"Go", "Kubernetes"}, testProfile)

	// posting names Go, Kubernetes, PostgreSQL, gRPC; the candidate has Go and PostgreSQL
	assert.Equal(t, 50.0, result.Score)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, result.MatchingSkills)
	assert.ElementsMatch(t, []string{"Kubernetes", "gRPC"}, result.MissingSkills)
	assert.True(t, result.Fallback)
}

func Test_KeywordScore_WhenPostingNamesNoSkills_ShouldUseRequiredSkills(t *testing.T) {
	result := KeywordScore("Friendly team, great coffee.", []string{"Go", "Rust"}, testProfile)

	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, []string{"Go"}, result.MatchingSkills)
}

func Test_KeywordScore_WithoutAnySkills_ShouldBeNeutral(t *testing.T) {
	result := KeywordScore("Friendly team.", nil, testProfile)

	assert.Equal(t, 50.0, result.Score)
	assert.Empty(t, result.MatchingSkills)
}

func Test_Deduplicator_ShouldRememberKnownAndRecordedIDs(t *testing.T) {
	dedup := NewDeduplicator([]string{"A", ""})

	assert.True(t, dedup.HasSeen("A"))
	assert.False(t, dedup.HasSeen("B"))
	assert.False(t, dedup.HasSeen(""))

	dedup.RecordSeen("B")
	dedup.RecordSeen("")
	assert.True(t, dedup.HasSeen("B"))
	assert.False(t, dedup.HasSeen(""))
	assert.Equal(t, 2, dedup.Len())
}

func Test_Matcher_Score_PostingsWithoutDescription_ShouldScoreEachSeparately(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Job title: Go Developer")
	})).Return(`{"overall_match_score": 90}`, nil)
	backend.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Job title: Pastry Chef")
	})).Return(`{"overall_match_score": 5}`, nil)
	matcher := newTestMatcher(backend)

	developer := models.Job{ID: "1", Title: "Go Developer", Category: "Backend"}
	chef := models.Job{ID: "2", Title: "Pastry Chef", Category: "Backend"}

	first, err := matcher.Score(context.Background(), developer, nil, testProfile)
	require.NoError(t, err)
	second, err := matcher.Score(context.Background(), chef, nil, testProfile)
	require.NoError(t, err)
	again, err := matcher.Score(context.Background(), developer, nil, testProfile)
	require.NoError(t, err)

	assert.Equal(t, 90.0, first.Score)
	assert.Equal(t, 5.0, second.Score)
	assert.Equal(t, 90.0, again.Score)
	backend.AssertNumberOfCalls(t, "GenerateResponse", 3)
}

func Test_Matcher_Score_SameDescriptionDifferentTitle_ShouldNotShareCache(t *testing.T) {
	backend := &mockBackend{name: "groq"}
	backend.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"overall_match_score": 61}`, nil).Twice()
	matcher := newTestMatcher(backend)

	retitled := testJob
	retitled.ID = "5000"
	retitled.Title = "Staff Platform Engineer"

	_, err := matcher.Score(context.Background(), testJob, nil, testProfile)
	require.NoError(t, err)
	_, err = matcher.Score(context.Background(), retitled, nil, testProfile)
	require.NoError(t, err)

	backend.AssertNumberOfCalls(t, "GenerateResponse", 2)
}
