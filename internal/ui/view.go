package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/octobees/peoplefinder/internal/entity"
)

// SkeletonCount is the number of placeholder cards shown while loading.
const SkeletonCount = 3

// User-facing messages, all shown through the error alert.
const (
	MsgEmptyQuery  = "Please enter a search query"
	MsgNoResults   = "No results found. Try a different search term."
	MsgFetchFailed = "Failed to fetch results"
	msgUnknown     = "An error occurred"

	defaultSearchType = "name"
	unknownName       = "Unknown Name"
	noJobInformation  = "No job information"
)

// SearchTypeOption is one tab of the search form.
type SearchTypeOption struct {
	Value string
	Label string
}

// SearchTypes lists the tabs in display order.
var SearchTypes = []SearchTypeOption{
	{Value: "name", Label: "Name"},
	{Value: "email", Label: "Email"},
	{Value: "company", Label: "Company"},
}

// State is a snapshot of the view used for rendering.
type State struct {
	SearchType string
	Query      string
	Results    []entity.Person
	Loading    bool
	Error      string
}

// View holds the transient state of the search page. Only Submit and the
// outcome of its gateway call change the results, loading flag or error.
type View struct {
	gateway Gateway

	mu         sync.Mutex
	searchType string
	query      string
	results    []entity.Person
	loading    bool
	err        string
}

// NewView creates a view with the "name" tab selected.
func NewView(gateway Gateway) *View {
	return &View{gateway: gateway, searchType: defaultSearchType}
}

// SetSearchType selects a tab.
func (v *View) SetSearchType(searchType string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchType = searchType
}

// SetQuery updates the query text.
func (v *View) SetQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
}

// Submit runs a search with the current type and query. It reports whether
// the gateway was called: blank queries and submits while a search is in
// flight are rejected locally.
func (v *View) Submit(ctx context.Context) bool {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return false
	}
	if strings.TrimSpace(v.query) == "" {
		v.err = MsgEmptyQuery
		v.mu.Unlock()
		return false
	}
	v.loading = true
	v.err = ""
	searchType, query := v.searchType, v.query
	v.mu.Unlock()

	people, err := v.gateway.Search(ctx, searchType, query)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false

	if err != nil {
		v.err = errorMessage(err)
		v.results = nil
		return true
	}

	v.results = people
	if len(people) == 0 {
		v.err = MsgNoResults
	}
	return true
}

// State returns a copy of the current view state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	results := make([]entity.Person, len(v.results))
	copy(results, v.results)
	return State{
		SearchType: v.searchType,
		Query:      v.query,
		Results:    results,
		Loading:    v.loading,
		Error:      v.err,
	}
}

func errorMessage(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgUnknown
}

// Link is one social icon of a result card.
type Link struct {
	Kind  string
	Label string
	URL   string
}

// Card is the presentation of one result.
type Card struct {
	Name     string
	Headline string
	Email    string
	Location string
	Company  string
	Links    []Link
}

// NewCard builds the card of p.
func NewCard(p entity.Person) Card {
	name := p.FullName
	if name == "" {
		name = unknownName
	}

	card := Card{
		Name:     name,
		Headline: Headline(p),
		Email:    p.Email,
		Location: p.Location,
		Company:  p.Company,
	}

	for _, l := range []struct {
		kind, label string
		url         *string
	}{
		{"linkedin", "LinkedIn", p.LinkedInURL},
		{"twitter", "Twitter", p.TwitterURL},
		{"facebook", "Facebook", p.FacebookURL},
		{"github", "GitHub", p.GitHubURL},
		{"website", "Website", p.Website},
	} {
		if l.url != nil {
			card.Links = append(card.Links, Link{Kind: l.kind, Label: l.label, URL: *l.url})
		}
	}
	return card
}

// Headline is "title", "title at company" or a placeholder when the title is unknown.
func Headline(p entity.Person) string {
	if p.JobTitle == "" {
		return noJobInformation
	}
	if p.Company == "" {
		return p.JobTitle
	}
	return p.JobTitle + " at " + p.Company
}

// Cards returns one card per result.
func (s State) Cards() []Card {
	cards := make([]Card, 0, len(s.Results))
	for _, p := range s.Results {
		cards = append(cards, NewCard(p))
	}
	return cards
}

// Skeletons returns SkeletonCount placeholders for template ranging.
func (s State) Skeletons() []int {
	return make([]int, SkeletonCount)
}
