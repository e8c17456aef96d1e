// Package board defines the kanban-service side of a synced pair: cards,
// boards, lists, inbound events, and the client port used to reach the
// service.
package board

import "regexp"

type Board struct {
	ID   string
	Name string
}

type List struct {
	ID      string
	Name    string
	BoardID string
}

type Card struct {
	ID        string
	ShortLink string
	Name      string
	Desc      string
	ListID    string
	BoardID   string
	Labels    []string
}

// URL returns the canonical card link carried in ticket peer-link fields.
func (c *Card) URL() string {
	return CardURL(c.ShortLink, c.Name)
}

// CardURL builds the canonical card link from a short link and card name.
func CardURL(shortLink, name string) string {
	return "https://trello.com/c/" + shortLink + "/" + name
}

var cardURLPattern = regexp.MustCompile(`trello\.com/c/([^/]+)/`)

// ShortLinkFromURL extracts the card short link from a peer-link URL.
func ShortLinkFromURL(url string) (string, bool) {
	m := cardURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
