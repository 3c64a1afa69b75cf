package pipeline

import (
	"maps"

	"golang.org/x/text/language"
)

// State is the per-view list state. Methods return modified copies.
// Changing filters or sort goes back to page 1; changing the page does not
// touch filters or sort.
type State struct {
	Filters map[string]string
	Sort    string
	Page    int
}

func NewState() State {
	return State{Filters: map[string]string{}, Page: 1}
}

// WithFilter sets one filter. A blank value removes it.
func (s State) WithFilter(key, value string) State {
	f := maps.Clone(s.Filters)
	if f == nil {
		f = map[string]string{}
	}
	if value == "" {
		delete(f, key)
	} else {
		f[key] = value
	}
	s.Filters = f
	s.Page = 1
	return s
}

func (s State) WithoutFilters() State {
	s.Filters = map[string]string{}
	s.Page = 1
	return s
}

func (s State) WithSort(key string) State {
	s.Sort = key
	s.Page = 1
	return s
}

func (s State) WithPage(n int) State {
	s.Page = n
	return s
}

// Query builds the Apply input for this state.
func (s State) Query(pageSize int, locale language.Tag) Query {
	return Query{
		Filters: maps.Clone(s.Filters),
		Sort:    s.Sort,
		Page:    Window{CurrentPage: s.Page, PageSize: pageSize},
		Locale:  locale,
	}
}
