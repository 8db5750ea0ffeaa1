package dataset

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseStatsHTML extracts the first data table from a saved stats page
// export and loads it as a dataset. Header cells become column names and
// body cells parse with the same rules as CSV input.
func ParseStatsHTML(r io.Reader) (*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse stats page: %w", err)
	}

	table := findNode(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("stats page has no table")
	}

	var records [][]string
	for row := range iterNodes(table, "tr") {
		var cells []string
		for _, tag := range []string{"th", "td"} {
			for cell := range iterNodes(row, tag) {
				cells = append(cells, strings.TrimSpace(textContent(cell)))
			}
		}
		if len(cells) > 0 {
			records = append(records, cells)
		}
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("stats table has no data rows: %w", ErrEmptyTable)
	}
	return fromRecords(records)
}

// findNode returns the first element with the given tag, depth first.
func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// iterNodes yields every descendant element with the given tag in document
// order, without descending into matches.
func iterNodes(n *html.Node, tag string) func(yield func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(node *html.Node) bool {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == tag {
					if !yield(c) {
						return false
					}
					continue
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

// textContent concatenates all text under a node.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
