package pdl

import "encoding/json"

// DefaultSize caps the number of records requested per search.
const DefaultSize = 10

// Text decodes any JSON value into a string, keeping only real strings.
// The API answers with booleans or nulls for fields the key is not entitled to.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// Person is the subset of an upstream person record read by the service.
type Person struct {
	FullName       Text `json:"full_name"`
	FirstName      Text `json:"first_name"`
	LastName       Text `json:"last_name"`
	WorkEmail      Text `json:"work_email"`
	PersonalEmail  Text `json:"personal_email"`
	Email          Text `json:"email"`
	JobTitle       Text `json:"job_title"`
	JobCompanyName Text `json:"job_company_name"`
	LocationName   Text `json:"location_name"`
	LinkedInURL    Text `json:"linkedin_url"`
	TwitterURL     Text `json:"twitter_url"`
	FacebookURL    Text `json:"facebook_url"`
	GitHubURL      Text `json:"github_url"`
	Website        Text `json:"website"`
}

// SearchBody is the request payload of the person search endpoint.
type SearchBody struct {
	Query  Query `json:"query"`
	Size   int   `json:"size"`
	Pretty bool  `json:"pretty"`
}

// Query is an Elasticsearch-style boolean query.
type Query struct {
	Bool BoolClause `json:"bool"`
}

// BoolClause lists terms that must all match.
type BoolClause struct {
	Must []TermClause `json:"must"`
}

// TermClause matches one field exactly.
type TermClause struct {
	Term map[string]string `json:"term"`
}

// NewTermSearch builds a must-match query over a single field.
func NewTermSearch(field, value string) SearchBody {
	return SearchBody{
		Query: Query{
			Bool: BoolClause{
				Must: []TermClause{{Term: map[string]string{field: value}}},
			},
		},
		Size:   DefaultSize,
		Pretty: false,
	}
}

type searchResponse struct {
	Data []Person `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message Text `json:"message"`
	} `json:"error"`
}
