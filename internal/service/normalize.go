package service

import (
	"regexp"

	"github.com/octobees/peoplefinder/internal/entity"
	"github.com/octobees/peoplefinder/internal/pdl"
)

var protocolPrefix = regexp.MustCompile(`^https?://`)

// NormalizePerson maps an upstream record onto the UI-ready shape.
func NormalizePerson(p pdl.Person) entity.Person {
	return entity.Person{
		FullName:    string(p.FullName),
		FirstName:   string(p.FirstName),
		LastName:    string(p.LastName),
		Email:       firstNonEmpty(p.WorkEmail, p.PersonalEmail, p.Email),
		JobTitle:    string(p.JobTitle),
		Company:     string(p.JobCompanyName),
		Location:    string(p.LocationName),
		LinkedInURL: SecureURL(string(p.LinkedInURL)),
		TwitterURL:  SecureURL(string(p.TwitterURL)),
		FacebookURL: SecureURL(string(p.FacebookURL)),
		GitHubURL:   SecureURL(string(p.GitHubURL)),
		Website:     optional(string(p.Website)),
	}
}

// NormalizePeople maps every record; the result is never nil.
func NormalizePeople(records []pdl.Person) []entity.Person {
	people := make([]entity.Person, 0, len(records))
	for _, record := range records {
		people = append(people, NormalizePerson(record))
	}
	return people
}

// SecureURL forces an https scheme onto raw. Empty input yields nil.
func SecureURL(raw string) *string {
	if raw == "" {
		return nil
	}
	secured := "https://" + protocolPrefix.ReplaceAllString(raw, "")
	return &secured
}

func optional(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

func firstNonEmpty(values ...pdl.Text) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}
