package sheets

import (
	"math"
	"strings"

	"github.com/maxaizer/jobscout/internal/domain/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"

	maxResponsibilities   = 5
	descriptionExcerptLen = 500
)

var Headers = []string{
	"Job ID", "Date", "Time", "Role", "Company", "Location", "Job Type", "Level", "Link",
	"Responsibilities", "Preferred Skills", "Matching Skills", "Role Match %", "Salary",
	"Posted", "Applicants", "Scored By", "Status",
}

func toRow(job models.Job) []interface{} {
	var level, applicants, match interface{} = "", "", ""
	if job.Level != nil {
		level = *job.Level
	}
	if job.ApplicantCount != nil {
		applicants = *job.ApplicantCount
	}
	if job.MatchScore != nil {
		match = math.Round(*job.MatchScore)
	}

	salary := ""
	if job.SalaryRange != nil {
		salary = *job.SalaryRange
	}

	status := job.Status
	if status == "" {
		status = models.StatusNew
	}

	return []interface{}{
		job.ID,
		job.ScrapedAt.Format(dateLayout),
		job.ScrapedAt.Format(timeLayout),
		job.Title,
		job.Company,
		job.Location,
		string(job.JobType),
		level,
		job.URL,
		responsibilitiesCell(job),
		strings.Join(job.Skills, ", "),
		strings.Join(job.MatchingSkills, ", "),
		match,
		salary,
		job.PostedAt,
		applicants,
		job.ScoredBy,
		string(status),
	}
}

func responsibilitiesCell(job models.Job) string {
	if len(job.Responsibilities) > 0 {
		items := job.Responsibilities
		if len(items) > maxResponsibilities {
			items = items[:maxResponsibilities]
		}
		return "• " + strings.Join(items, "\n• ")
	}

	runes := []rune(job.Description)
	if len(runes) > descriptionExcerptLen {
		return string(runes[:descriptionExcerptLen]) + "..."
	}
	return job.Description
}
