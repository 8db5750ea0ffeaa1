package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsPage = `<!DOCTYPE html>
<html>
<body>
  <h1>Stats</h1>
  <table>
    <thead>
      <tr><th>Published Date</th><th>Title</th><th>Response</th><th>Claps</th></tr>
    </thead>
    <tbody>
      <tr><td>2024-01-01</td><td>First</td><td>article</td><td>1,250</td></tr>
      <tr><td>2024-01-02</td><td>Reply</td><td>response</td><td>20</td></tr>
    </tbody>
  </table>
</body>
</html>`

func TestParseStatsHTML(t *testing.T) {
	table, err := ParseStatsHTML(strings.NewReader(statsPage))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	entries := table.Entries()
	assert.Equal(t, "First", entries[0].Title)
	assert.Equal(t, KindArticle, entries[0].Kind)
	assert.Equal(t, KindResponse, entries[1].Kind)

	claps, ok := entries[0].Value("claps")
	require.True(t, ok)
	assert.Equal(t, 1250.0, claps)
}

func TestParseStatsHTMLUsesFirstTable(t *testing.T) {
	page := `<html><body>
	<table>
	  <tr><th>published_date</th><th>title</th><th>claps</th></tr>
	  <tr><td>2024-01-01</td><td>Wanted</td><td>5</td></tr>
	</table>
	<table>
	  <tr><th>published_date</th><th>title</th><th>claps</th></tr>
	  <tr><td>2024-02-01</td><td>Ignored</td><td>9</td></tr>
	</table>
	</body></html>`

	table, err := ParseStatsHTML(strings.NewReader(page))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Wanted", table.Entries()[0].Title)
}

func TestParseStatsHTMLErrors(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{
			name: "no table",
			page: "<html><body><p>nothing here</p></body></html>",
		},
		{
			name: "header only",
			page: "<table><tr><th>published_date</th><th>title</th></tr></table>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatsHTML(strings.NewReader(tt.page))
			assert.Error(t, err)
		})
	}
}
