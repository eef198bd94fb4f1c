package skills

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const MaxExtracted = 15

// Known is the list of technical skills recognised in posting text.
var Known = []string{
	"Go", "Golang", "Java", "Python", "JavaScript", "TypeScript", "React", "Angular", "Vue",
	"Spring", "Spring Boot", "Node.js", "Express", ".NET", "C#", "C++", "Rust", "Kotlin",
	"SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Oracle", "Redis", "Elasticsearch",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Jenkins",
	"CI/CD", "DevOps", "Microservices", "REST", "gRPC", "GraphQL",
	"Git", "Agile", "Scrum", "Kafka", "RabbitMQ",
	"HTML", "CSS", "Tailwind", "Linux", "Prometheus", "Grafana",
	"Machine Learning", "TensorFlow", "PyTorch", "Pandas",
}

// Contains reports whether skill occurs in text as a whole term, case-insensitively.
// Terms like "C#" or "Node.js" are matched without regexp word boundaries,
// which do not work for non-word edge characters.
func Contains(text, skill string) bool {
	needle := strings.ToLower(strings.TrimSpace(skill))
	if needle == "" {
		return false
	}
	haystack := strings.ToLower(text)

	for offset := 0; offset < len(haystack); {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(needle)
		if isBoundary(haystack, start-1) && isBoundary(haystack, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#')
}

// FindIn returns the candidates present in text, in candidate order, without duplicates.
func FindIn(text string, candidates []string) []string {
	found := lo.Filter(candidates, func(skill string, _ int) bool {
		return Contains(text, skill)
	})
	return lo.UniqBy(found, strings.ToLower)
}

// Extract returns up to MaxExtracted known skills mentioned in text.
func Extract(text string) []string {
	found := FindIn(text, Known)
	if len(found) > MaxExtracted {
		found = found[:MaxExtracted]
	}
	return found
}
