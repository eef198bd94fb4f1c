package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Contains_ShouldMatchWholeTerms(t *testing.T) {
	assert.True(t, Contains("Experience with Go and PostgreSQL", "go"))
	assert.False(t, Contains("Good communication skills", "Go"))
	assert.True(t, Contains("We use C# and .NET daily", "C#"))
	assert.True(t, Contains("We use C# and .NET daily", ".NET"))
	assert.False(t, Contains("C++ required", "C"))
	assert.True(t, Contains("C++ required", "C++"))
	assert.True(t, Contains("Backend on Node.js.", "node.js"))
	assert.False(t, Contains("anything", ""))
}

func Test_FindIn_ShouldKeepCandidateOrderAndDedupe(t *testing.T) {
	found := FindIn("kubernetes, go, docker", []string{"Go", "Docker", "go", "Kafka"})
	assert.Equal(t, []string{"Go", "Docker"}, found)
}

func Test_Extract_ShouldCapResults(t *testing.T) {
	text := "Go Java Python JavaScript TypeScript React Angular Vue Spring Express Rust Kotlin " +
		"SQL MongoDB PostgreSQL MySQL Redis AWS Azure GCP"
	assert.Len(t, Extract(text), MaxExtracted)
}
