package pipeline

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Window selects one page of a list. CurrentPage is 1-based.
type Window struct {
	CurrentPage int
	PageSize    int
}

// Query is everything Apply needs besides the items.
type Query struct {
	// Filters maps filter keys to raw values. Keys with blank values are
	// ignored.
	Filters map[string]string
	// Sort is a sort key of the schema; empty keeps input order.
	Sort   string
	Page   Window
	Locale language.Tag
}

// Page is the visible slice and the counts needed to render pagination.
type Page[T any] struct {
	Visible      []T
	TotalMatched int
	TotalPages   int
	CurrentPage  int
}

// Apply filters, sorts and paginates all. A CurrentPage beyond TotalPages
// yields an empty Visible slice rather than being clamped.
func Apply[T any](all []T, schema Schema[T], q Query) (Page[T], error) {
	if q.Page.PageSize <= 0 {
		return Page[T]{}, invalid("page size must be positive, got %d", q.Page.PageSize)
	}
	if q.Page.CurrentPage < 1 {
		return Page[T]{}, invalid("page must be at least 1, got %d", q.Page.CurrentPage)
	}

	preds := make([]Predicate[T], 0, len(q.Filters))
	for _, key := range slices.Sorted(maps.Keys(q.Filters)) {
		value := strings.TrimSpace(q.Filters[key])
		if value == "" {
			continue
		}
		f, ok := schema.Filters[key]
		if !ok {
			return Page[T]{}, invalid("unknown filter %q", key)
		}
		p, err := f(value)
		if err != nil {
			return Page[T]{}, err
		}
		preds = append(preds, p)
	}

	var cmp Comparator[T]
	if q.Sort != "" {
		c, ok := schema.Sorts[q.Sort]
		if !ok {
			return Page[T]{}, invalid("unknown sort %q", q.Sort)
		}
		cmp = c
	}

	matched := make([]T, 0, len(all))
	for _, item := range all {
		if matchesAll(item, preds) {
			matched = append(matched, item)
		}
	}

	if cmp != nil {
		col := collate.New(q.Locale)
		slices.SortStableFunc(matched, func(a, b T) int { return cmp(col, a, b) })
	}

	total := len(matched)
	size := q.Page.PageSize
	pages := max(1, (total+size-1)/size)

	visible := []T{}
	if q.Page.CurrentPage <= pages {
		start := (q.Page.CurrentPage - 1) * size
		visible = matched[start:min(start+size, total)]
	}

	return Page[T]{
		Visible:      visible,
		TotalMatched: total,
		TotalPages:   pages,
		CurrentPage:  q.Page.CurrentPage,
	}, nil
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}
