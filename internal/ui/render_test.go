package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/octobees/peoplefinder/internal/entity"
)

func renderPage(t *testing.T, state State) *html.Node {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTemplate, NewPage(state), nil))

	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTestID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attr(n, "data-testid")
		return v == id
	}
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, _ := attr(n, "id")
		return v == id
	}
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func TestRender_Loading(t *testing.T) {
	doc := renderPage(t, State{SearchType: "name", Query: "jane", Loading: true, Results: []entity.Person{{FullName: "hidden"}}})

	skeletons := findAll(doc, byID("skeletons"))
	require.Len(t, skeletons, 1)
	_, hidden := attr(skeletons[0], "hidden")
	assert.False(t, hidden)
	assert.Len(t, findAll(doc, byTestID("skeleton-card")), SkeletonCount)
	assert.Empty(t, findAll(doc, byTestID("person-card")))

	button := findAll(doc, byID("submit"))
	require.Len(t, button, 1)
	_, disabled := attr(button[0], "disabled")
	assert.True(t, disabled)
}

func TestRender_Results(t *testing.T) {
	doc := renderPage(t, State{
		SearchType: "company",
		Query:      "acme",
		Results: []entity.Person{
			{
				FullName:    "Jane Doe",
				JobTitle:    "Engineer",
				Company:     "Acme",
				Email:       "jane@acme.test",
				LinkedInURL: strPtr("https://linkedin.com/in/jane"),
				TwitterURL:  strPtr("https://twitter.com/jane"),
			},
			{},
		},
	})

	skeletons := findAll(doc, byID("skeletons"))
	require.Len(t, skeletons, 1)
	_, hidden := attr(skeletons[0], "hidden")
	assert.True(t, hidden)

	cards := findAll(doc, byTestID("person-card"))
	require.Len(t, cards, 2)
	assert.Contains(t, text(cards[0]), "Jane Doe")
	assert.Contains(t, text(cards[0]), "Engineer at Acme")
	assert.Contains(t, text(cards[0]), "jane@acme.test")
	assert.Contains(t, text(cards[1]), "Unknown Name")
	assert.Contains(t, text(cards[1]), "No job information")

	links := findAll(cards[0], func(n *html.Node) bool { return n.Data == "a" })
	require.Len(t, links, 2)
	for _, link := range links {
		target, _ := attr(link, "target")
		assert.Equal(t, "_blank", target)
	}
	href, _ := attr(links[0], "href")
	assert.Equal(t, "https://linkedin.com/in/jane", href)
	assert.Empty(t, findAll(cards[1], func(n *html.Node) bool { return n.Data == "a" }))

	checked := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, "checked")
		return n.Data == "input" && ok
	})
	require.Len(t, checked, 1)
	value, _ := attr(checked[0], "value")
	assert.Equal(t, "company", value)
}

func TestRender_ErrorAlert(t *testing.T) {
	doc := renderPage(t, State{SearchType: "name", Error: MsgNoResults})
	alert := findAll(doc, byID("alert"))
	require.Len(t, alert, 1)
	_, hidden := attr(alert[0], "hidden")
	assert.False(t, hidden)
	assert.Contains(t, text(alert[0]), MsgNoResults)

	doc = renderPage(t, State{SearchType: "name"})
	alert = findAll(doc, byID("alert"))
	require.Len(t, alert, 1)
	_, hidden = attr(alert[0], "hidden")
	assert.True(t, hidden)
}

func TestRender_EscapesUserInput(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTemplate, NewPage(State{
		SearchType: "name",
		Query:      `"><script>alert(1)</script>`,
		Results:    []entity.Person{{FullName: "<b>x</b>"}},
	}), nil))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.NotContains(t, buf.String(), "<b>x</b>")
}
