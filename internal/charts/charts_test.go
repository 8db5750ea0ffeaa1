package charts

import (
	"time"

	"pulsecli/internal/dataset"
)

// testTable returns eight articles and two responses with word_count
// following claps closely enough for tight fits.
func testTable() *dataset.Table {
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	entries := []dataset.Entry{
		{PublishedDate: day(1), Title: "A", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 10, "word_count": 500, "reads": 90},
			Labels: map[string]string{"publication": "alpha"}},
		{PublishedDate: day(2), Title: "B", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 20, "word_count": 900, "reads": 150},
			Labels: map[string]string{"publication": "beta"}},
		{PublishedDate: day(3), Title: "C", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 32, "word_count": 1500, "reads": 210},
			Labels: map[string]string{"publication": "alpha"}},
		{PublishedDate: day(4), Title: "D", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 41, "word_count": 2100, "reads": 330},
			Labels: map[string]string{"publication": "beta"}},
		{PublishedDate: day(5), Title: "E", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 48, "word_count": 2400, "reads": 410},
			Labels: map[string]string{"publication": "alpha"}},
		{PublishedDate: day(6), Title: "F", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 61, "word_count": 3000, "reads": 480},
			Labels: map[string]string{"publication": "beta"}},
		{PublishedDate: day(7), Title: "G", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 70, "word_count": 3600, "reads": 540},
			Labels: map[string]string{"publication": "alpha"}},
		{PublishedDate: day(8), Title: "H", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 82, "word_count": 4100, "reads": 620},
			Labels: map[string]string{"publication": "beta"}},
		{PublishedDate: day(9), Title: "Re: A", Kind: dataset.KindResponse,
			Values: map[string]float64{"claps": 5, "word_count": 200, "reads": 40},
			Labels: map[string]string{"publication": "alpha"}},
		{PublishedDate: day(10), Title: "Re: B", Kind: dataset.KindResponse,
			Values: map[string]float64{"claps": 8, "word_count": 350, "reads": 70},
			Labels: map[string]string{"publication": "beta"}},
	}
	return dataset.New(entries)
}

// articlesOnly strips the response rows from testTable.
func articlesOnly() *dataset.Table {
	articles, _ := testTable().Split()
	return articles
}
