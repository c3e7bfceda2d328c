package entity

// Person is the simplified, UI-ready view of an upstream person record.
// Text fields are empty strings when unknown; link fields are nil.
type Person struct {
	FullName    string  `json:"full_name"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	LinkedInURL *string `json:"linkedin_url"`
	TwitterURL  *string `json:"twitter_url"`
	FacebookURL *string `json:"facebook_url"`
	GitHubURL   *string `json:"github_url"`
	Website     *string `json:"website"`
}
