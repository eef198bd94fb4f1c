package linkedin

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/skills"
)

const maxResponsibilities = 5

var errEmptyPosting = errors.New("posting page has no content")

type card struct {
	ID       string
	Title    string
	Company  string
	Location string
	PostedAt string
	Salary   *string
}

func parseSearchPage(page string) ([]card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var cards []card
	seen := map[string]bool{}
	doc.Find(cardSelector).Each(func(_ int, s *goquery.Selection) {
		urn, _ := s.Attr(cardURNAttr)
		id := strings.TrimPrefix(strings.TrimSpace(urn), jobPostingURNTag)
		if id == "" || id == urn {
			id = idFromLink(s.Find(cardLink).AttrOr("href", ""))
		}
		if id == "" || seen[id] {
			return
		}
		seen[id] = true

		c := card{
			ID:       id,
			Title:    cleanText(s.Find(cardTitle).First().Text()),
			Company:  cleanText(s.Find(cardCompany).First().Text()),
			Location: cleanText(s.Find(cardLocation).First().Text()),
		}
		if posted := s.Find(cardPostedAt).First(); posted.Length() > 0 {
			c.PostedAt = posted.AttrOr("datetime", cleanText(posted.Text()))
		}
		if salary := cleanText(s.Find(cardSalary).First().Text()); salary != "" {
			c.Salary = &salary
		}
		cards = append(cards, c)
	})

	return cards, nil
}

var linkIDRegexp = regexp.MustCompile(`-(\d{6,})(?:\?|/|$)|/view/(\d{6,})`)

func idFromLink(link string) string {
	m := linkIDRegexp.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

func parsePosting(page string, c card, scrapedAt time.Time) (models.Job, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return models.Job{}, err
	}

	job := models.Job{
		ID:        c.ID,
		Title:     c.Title,
		Company:   c.Company,
		Location:  c.Location,
		PostedAt:  c.PostedAt,
		URL:       JobURL(c.ID),
		Status:    models.StatusNew,
		ScrapedAt: scrapedAt,
	}

	title := cleanText(doc.Find(postingTitle).First().Text())
	descriptionSel := doc.Find(postingDescription).First()
	criteria := doc.Find(postingCriteria)
	if title == "" && descriptionSel.Length() == 0 && criteria.Length() == 0 {
		return models.Job{}, errEmptyPosting
	}

	if job.Title == "" {
		job.Title = title
	}
	if job.Company == "" {
		job.Company = cleanText(doc.Find(postingCompany).First().Text())
	}
	if job.Location == "" {
		job.Location = cleanText(doc.Find(postingLocation).First().Text())
	}
	if job.PostedAt == "" {
		job.PostedAt = cleanText(doc.Find(postingPostedAt).First().Text())
	}

	if descriptionSel.Length() > 0 {
		job.Description = blockText(descriptionSel)
	}

	criteria.Each(func(_ int, s *goquery.Selection) {
		header := strings.ToLower(cleanText(s.Find(criteriaHeader).Text()))
		value := cleanText(s.Find(criteriaValue).Text())
		switch header {
		case criteriaSeniority:
			if level, err := models.ToExperienceLevel(value); err == nil {
				job.ExperienceLevel = level
			}
		case criteriaEmployment:
			if jobType, err := models.ToJobType(value); err == nil {
				job.JobType = jobType
			}
		}
	})

	job.ApplicantCount = parseApplicants(doc.Find(postingApplicants).First().Text())

	job.SalaryRange = c.Salary
	if job.SalaryRange == nil {
		if salary := cleanText(doc.Find(postingSalary).First().Text()); salary != "" {
			job.SalaryRange = &salary
		}
	}

	job.Responsibilities = parseResponsibilities(job.Description)
	job.Skills = skills.Extract(job.Title + "\n" + job.Description)
	job.Level = extractYears(job.Description)
	if job.ExperienceLevel == "" && job.Level != nil {
		job.ExperienceLevel = models.ExperienceLevelForYears(*job.Level)
	}

	return job, nil
}

var applicantsRegexp = regexp.MustCompile(`(\d[\d,]*)\s*applicants?`)

func parseApplicants(text string) *int {
	m := applicantsRegexp.FindStringSubmatch(strings.ToLower(cleanText(text)))
	if m == nil {
		return nil
	}
	count, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &count
}

var (
	responsibilitiesStart = []string{
		"responsibilities", "what you'll do", "what you will do", "you will:",
		"your role", "duties", "the role",
	}
	responsibilitiesEnd = []string{
		"requirements", "qualifications", "skills", "what we need", "about you",
		"experience:", "education", "benefits", "what we offer", "nice to have",
	}
	bulletPrefix = regexp.MustCompile(`^[\s•\-*·\d.)]+`)
)

func parseResponsibilities(description string) []string {
	var result []string
	inSection := false

	for _, line := range strings.Split(description, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "" {
			continue
		}

		isHeading := strings.HasSuffix(lower, ":") || len(strings.Fields(lower)) <= 4
		switch {
		case isHeading && containsAny(lower, responsibilitiesStart):
			inSection = true
			continue
		case isHeading && containsAny(lower, responsibilitiesEnd):
			if inSection && len(result) > 0 {
				return result
			}
			inSection = false
			continue
		}

		if !inSection {
			continue
		}
		cleaned := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if len(cleaned) > 10 {
			result = append(result, cleaned)
			if len(result) >= maxResponsibilities {
				return result
			}
		}
	}
	return result
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:-|–|to)\s*\d+\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?(?:\w+\s+){0,3}(?:experience|exp)`),
	regexp.MustCompile(`minimum\s*(?:of\s*)?(\d+)\s*years?`),
	regexp.MustCompile(`at\s*least\s*(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\s*years?\s*(?:minimum|required|preferred)`),
	regexp.MustCompile(`requires?\s*(\d+)\s*years?`),
}

var entryLevelTerms = []string{"entry level", "entry-level", "new graduate", "fresh graduate", "recent graduate"}

// extractYears returns the required years of experience stated in text, the
// lower bound for ranges, or nil when the text does not say.
func extractYears(text string) *int {
	lower := strings.ToLower(text)
	for _, pattern := range yearsPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil && years < 50 {
				return &years
			}
		}
	}
	if containsAny(lower, entryLevelTerms) {
		zero := 0
		return &zero
	}
	return nil
}
