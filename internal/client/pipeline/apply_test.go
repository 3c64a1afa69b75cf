package pipeline

import (
	"fmt"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type film struct {
	id       string
	title    string
	genre    string
	rating   float64
	released time.Time
	starts   time.Time
}

var filmSchema = Schema[film]{
	Filters: map[string]Filter[film]{
		"search":     Search(func(f film) string { return f.title }, func(f film) string { return f.genre }),
		"genre":      Exact(func(f film) string { return f.genre }),
		"min_rating": AtLeast(func(f film) float64 { return f.rating }),
		"max_rating": AtMost(func(f film) float64 { return f.rating }),
		"from":       OnOrAfter(func(f film) time.Time { return f.released }),
		"to":         OnOrBefore(func(f film) time.Time { return f.released }),
		"on":         OnDate(func(f film) time.Time { return f.released }),
		"time":       TimeOfDay(func(f film) time.Time { return f.starts }),
	},
	Sorts: map[string]Comparator[film]{
		"title":      ByString(func(f film) string { return f.title }, false),
		"title-desc": ByString(func(f film) string { return f.title }, true),
		"rating":     ByNumber(func(f film) float64 { return f.rating }, true),
		"date":       ByTime(func(f film) time.Time { return f.released }, false),
	},
}

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ids(fs []film) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.id
	}
	return out
}

func catalogue() []film {
	return []film{
		{id: "1", title: "Dune", genre: "Sci-Fi", rating: 8.1, released: day("2024-03-01T20:00:00Z"), starts: day("2025-01-01T09:30:00Z")},
		{id: "2", title: "Arrival", genre: "sci-fi", rating: 7.9, released: day("2016-11-11T00:00:00Z"), starts: day("2025-01-01T13:00:00Z")},
		{id: "3", title: "Heat", genre: "Crime", rating: 8.3, released: day("1995-12-15T10:00:00Z"), starts: day("2025-01-01T18:00:00Z")},
		{id: "4", title: "Élan", genre: "Drama", rating: 7.9, released: day("2024-03-01T08:00:00Z"), starts: day("2025-01-01T23:59:00Z")},
		{id: "5", title: "Zodiac", genre: "Crime", rating: 7.7, released: day("2007-03-02T00:00:00Z"), starts: day("2025-01-01T05:59:00Z")},
	}
}

func query(filters map[string]string, sort string, page, size int) Query {
	return Query{Filters: filters, Sort: sort, Page: Window{CurrentPage: page, PageSize: size}}
}

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{"no filters", nil, []string{"1", "2", "3", "4", "5"}},
		{"blank value ignored", map[string]string{"genre": "  "}, []string{"1", "2", "3", "4", "5"}},
		{"search is case-insensitive", map[string]string{"search": "DUN"}, []string{"1"}},
		{"search spans fields", map[string]string{"search": "crime"}, []string{"3", "5"}},
		{"exact ignores case", map[string]string{"genre": "SCI-FI"}, []string{"1", "2"}},
		{"exact is not substring", map[string]string{"genre": "sci"}, []string{}},
		{"at least", map[string]string{"min_rating": "8"}, []string{"1", "3"}},
		{"at most", map[string]string{"max_rating": "7.9"}, []string{"2", "4", "5"}},
		{"on or after ignores time", map[string]string{"from": "2024-03-01"}, []string{"1", "4"}},
		{"on or before ignores time", map[string]string{"to": "2007-03-02"}, []string{"3", "5"}},
		{"on date", map[string]string{"on": "2024-03-01"}, []string{"1", "4"}},
		{"morning", map[string]string{"time": "morning"}, []string{"1"}},
		{"afternoon", map[string]string{"time": "Afternoon"}, []string{"2"}},
		{"evening", map[string]string{"time": "evening"}, []string{"3", "4"}},
		{"filters combine with AND", map[string]string{"genre": "crime", "min_rating": "8"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Apply(catalogue(), filmSchema, query(tt.filters, "", 1, 10))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(p.Visible))
			assert.Equal(t, len(tt.want), p.TotalMatched)
		})
	}
}

func TestApply_Sorts(t *testing.T) {
	tests := []struct {
		sort string
		want []string
	}{
		{"", []string{"1", "2", "3", "4", "5"}},
		{"title", []string{"2", "1", "4", "3", "5"}},
		{"title-desc", []string{"5", "3", "4", "1", "2"}},
		// stable: 2 and 4 tie at 7.9 and keep input order
		{"rating", []string{"3", "1", "2", "4", "5"}},
		{"date", []string{"3", "5", "2", "4", "1"}},
	}

	for _, tt := range tests {
		t.Run("sort "+tt.sort, func(t *testing.T) {
			p, err := Apply(catalogue(), filmSchema, query(nil, tt.sort, 1, 10))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(p.Visible))
		})
	}
}

func TestApply_LocaleAwareOrdering(t *testing.T) {
	items := []film{{id: "a", title: "Zebra"}, {id: "b", title: "Äpfel"}, {id: "c", title: "Apfel"}}

	q := query(nil, "title", 1, 10)
	q.Locale = language.German
	p, err := Apply(items, filmSchema, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(p.Visible))

	q.Locale = language.Swedish
	p, err = Apply(items, filmSchema, q)
	require.NoError(t, err)
	// Swedish sorts Ä after Z
	assert.Equal(t, []string{"c", "a", "b"}, ids(p.Visible))
}

func TestApply_Pagination(t *testing.T) {
	many := make([]film, 25)
	for i := range many {
		many[i] = film{id: fmt.Sprint(i)}
	}

	p, err := Apply(many, filmSchema, query(nil, "", 3, 12))
	require.NoError(t, err)
	assert.Equal(t, 25, p.TotalMatched)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, []string{"24"}, ids(p.Visible))

	p, err = Apply(many, filmSchema, query(nil, "", 2, 12))
	require.NoError(t, err)
	assert.Len(t, p.Visible, 12)
	assert.Equal(t, "12", p.Visible[0].id)

	// past the end: empty, not clamped
	p, err = Apply(many, filmSchema, query(nil, "", 4, 12))
	require.NoError(t, err)
	assert.Empty(t, p.Visible)
	assert.NotNil(t, p.Visible)
	assert.Equal(t, 3, p.TotalPages)

	p, err = Apply(many, filmSchema, query(nil, "", math.MaxInt, 12))
	require.NoError(t, err)
	assert.Empty(t, p.Visible)
	assert.Equal(t, math.MaxInt, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
}

func TestApply_EmptyListHasOnePage(t *testing.T) {
	p, err := Apply(nil, filmSchema, query(nil, "title", 1, 12))
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalMatched)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Visible)
}

func TestApply_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		q    Query
	}{
		{"unknown filter", query(map[string]string{"colour": "red"}, "", 1, 10)},
		{"bad number", query(map[string]string{"min_rating": "high"}, "", 1, 10)},
		{"bad date", query(map[string]string{"from": "01/03/2024"}, "", 1, 10)},
		{"bad bucket", query(map[string]string{"time": "night"}, "", 1, 10)},
		{"unknown sort", query(nil, "popularity", 1, 10)},
		{"zero page size", query(nil, "", 1, 0)},
		{"negative page size", query(nil, "", 1, -3)},
		{"page zero", query(nil, "", 0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(catalogue(), filmSchema, tt.q)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestApply_IsPure(t *testing.T) {
	in := catalogue()
	before := slices.Clone(in)
	q := query(map[string]string{"min_rating": "7.8"}, "title", 1, 2)

	first, err := Apply(in, filmSchema, q)
	require.NoError(t, err)
	second, err := Apply(in, filmSchema, q)
	require.NoError(t, err)

	assert.Equal(t, before, in)
	assert.Equal(t, first, second)
}

func TestApply_PageSizeBound(t *testing.T) {
	for size := 1; size <= 6; size++ {
		for page := 1; page <= 6; page++ {
			p, err := Apply(catalogue(), filmSchema, query(nil, "", page, size))
			require.NoError(t, err)
			assert.LessOrEqual(t, len(p.Visible), size)
			assert.LessOrEqual(t, len(p.Visible), p.TotalMatched)
		}
	}
}

func TestSchemaKeys(t *testing.T) {
	assert.Equal(t, []string{"date", "rating", "title", "title-desc"}, filmSchema.SortKeys())
	assert.Contains(t, filmSchema.FilterKeys(), "search")
}
