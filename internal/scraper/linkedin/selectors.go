package linkedin

// Guest search results list.
const (
	cardSelector     = "div.base-card[data-entity-urn], div.job-search-card[data-entity-urn]"
	cardURNAttr      = "data-entity-urn"
	cardTitle        = "h3.base-search-card__title"
	cardCompany      = "h4.base-search-card__subtitle"
	cardLocation     = "span.job-search-card__location"
	cardPostedAt     = "time"
	cardSalary       = "span.job-search-card__salary-info"
	cardLink         = "a.base-card__full-link"
	jobPostingURNTag = "urn:li:jobPosting:"
)

// Guest posting page.
const (
	postingTitle       = "h2.top-card-layout__title, h1.top-card-layout__title"
	postingCompany     = "a.topcard__org-name-link, span.topcard__flavor"
	postingLocation    = "span.topcard__flavor--bullet"
	postingPostedAt    = "span.posted-time-ago__text"
	postingDescription = "div.show-more-less-html__markup, div.description__text"
	postingApplicants  = ".num-applicants__caption, figcaption.num-applicants__caption"
	postingCriteria    = "ul.description__job-criteria-list li"
	criteriaHeader     = "h3.description__job-criteria-subheader"
	criteriaValue      = "span.description__job-criteria-text"
	postingSalary      = "div.compensation__salary, div.salary"
)

const (
	criteriaSeniority  = "seniority level"
	criteriaEmployment = "employment type"
)
