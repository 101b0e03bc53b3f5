package rankings

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/omarshaarawi/tradecoach/internal/models"
)

const consensusClass = "experts-column triple"

var ErrNoConsensusColumn = errors.New("consensus column not found")

// ParseConsensus reads a positional ranking page. Every player row counts
// toward the total, but only rows linking to a player become records, with
// percentile = row index / total rows.
func ParseConsensus(r io.Reader, position string) ([]models.RankedPlayer, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing ranking page: %w", err)
	}

	column := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && normalizeSpace(attr(n, "class")) == consensusClass
	})
	if column == nil {
		return nil, ErrNoConsensusColumn
	}

	var rows []*html.Node
	walk(column, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Div && attr(n, "class") == "player" {
			rows = append(rows, n)
		}
	})

	total := len(rows)
	players := make([]models.RankedPlayer, 0, total)
	for i, row := range rows {
		link := firstChild(row, atom.A)
		if link == nil {
			continue
		}
		name := strings.TrimSpace(textContent(link))
		if name == "" {
			continue
		}
		players = append(players, models.RankedPlayer{
			Name:       name,
			Position:   position,
			Rank:       i + 1,
			Percentile: float64(i) / float64(total),
		})
	}
	return players, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func firstChild(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
