package linkedin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/samber/lo"
)

const (
	DefaultBaseURL = "https://www.linkedin.com"
	searchPath     = "/jobs-guest/jobs/api/seeMoreJobPostings/search"
	postingPath    = "/jobs-guest/jobs/api/jobPosting/"
	viewPath       = "/jobs/view/"
	PageSize       = 25
)

var postedWithinParams = map[models.PostedWithin]string{
	models.PostedPastHour:  "r3600",
	models.PostedPastDay:   "r86400",
	models.PostedPastWeek:  "r604800",
	models.PostedPastMonth: "r2592000",
}

var jobTypeParams = map[models.JobType]string{
	models.FullTime:   "F",
	models.PartTime:   "P",
	models.Contract:   "C",
	models.Temporary:  "T",
	models.Internship: "I",
	models.Volunteer:  "V",
	models.OtherType:  "O",
}

var experienceParams = map[models.ExperienceLevel]string{
	models.InternLevel: "1",
	models.EntryLevel:  "2",
	models.Associate:   "3",
	models.MidSenior:   "4",
	models.Director:    "5",
	models.Executive:   "6",
}

func searchURL(baseURL string, query models.SearchQuery, start int) string {
	params := url.Values{}
	params.Set("keywords", query.Keyword)
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if tpr, ok := postedWithinParams[query.PostedWithin]; ok {
		params.Set("f_TPR", tpr)
	}
	if jt := joinParams(query.JobTypes, jobTypeParams); jt != "" {
		params.Set("f_JT", jt)
	}
	if exp := joinParams(query.ExperienceLevels, experienceParams); exp != "" {
		params.Set("f_E", exp)
	}
	if query.Remote {
		params.Set("f_WT", "2")
	}
	params.Set("sortBy", "DD")
	if start > 0 {
		params.Set("start", strconv.Itoa(start))
	}
	return strings.TrimRight(baseURL, "/") + searchPath + "?" + params.Encode()
}

func joinParams[T comparable](values []T, mapping map[T]string) string {
	codes := lo.FilterMap(values, func(v T, _ int) (string, bool) {
		code, ok := mapping[v]
		return code, ok
	})
	return strings.Join(lo.Uniq(codes), ",")
}

func postingURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + postingPath + id
}

// JobURL is the public page of a posting.
func JobURL(id string) string {
	return DefaultBaseURL + viewPath + id + "/"
}
