package pipeline

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

// DateLayout is the calendar date format accepted by date filters.
const DateLayout = "2006-01-02"

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(item T) bool

// Filter parses a filter value into a predicate.
type Filter[T any] func(value string) (Predicate[T], error)

// Comparator orders two items. Collation is per call since a collator is
// not safe for concurrent use.
type Comparator[T any] func(col *collate.Collator, a, b T) int

// Schema names the filters and sort orders a list supports.
type Schema[T any] struct {
	Filters map[string]Filter[T]
	Sorts   map[string]Comparator[T]
}

func (s Schema[T]) FilterKeys() []string { return slices.Sorted(maps.Keys(s.Filters)) }
func (s Schema[T]) SortKeys() []string   { return slices.Sorted(maps.Keys(s.Sorts)) }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Search matches when value is a case-insensitive substring of any field.
func Search[T any](fields ...func(T) string) Filter[T] {
	return func(value string) (Predicate[T], error) {
		needle := strings.ToLower(value)
		return func(item T) bool {
			for _, f := range fields {
				if strings.Contains(strings.ToLower(f(item)), needle) {
					return true
				}
			}
			return false
		}, nil
	}
}

// Exact matches a categorical field, ignoring case.
func Exact[T any](field func(T) string) Filter[T] {
	return func(value string) (Predicate[T], error) {
		return func(item T) bool {
			return strings.EqualFold(field(item), value)
		}, nil
	}
}

// AtLeast keeps items whose field is >= the numeric value.
func AtLeast[T any](field func(T) float64) Filter[T] {
	return number(func(v, limit float64) bool { return v >= limit }, field)
}

// AtMost keeps items whose field is <= the numeric value.
func AtMost[T any](field func(T) float64) Filter[T] {
	return number(func(v, limit float64) bool { return v <= limit }, field)
}

func number[T any](ok func(v, limit float64) bool, field func(T) float64) Filter[T] {
	return func(value string) (Predicate[T], error) {
		limit, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, invalid("%q is not a number", value)
		}
		return func(item T) bool { return ok(field(item), limit) }, nil
	}
}

// OnOrAfter keeps items dated on or after the given YYYY-MM-DD day.
// Time of day is ignored.
func OnOrAfter[T any](field func(T) time.Time) Filter[T] {
	return date(func(c int) bool { return c >= 0 }, field)
}

// OnOrBefore keeps items dated on or before the given day.
func OnOrBefore[T any](field func(T) time.Time) Filter[T] {
	return date(func(c int) bool { return c <= 0 }, field)
}

// OnDate keeps items dated on the given day.
func OnDate[T any](field func(T) time.Time) Filter[T] {
	return date(func(c int) bool { return c == 0 }, field)
}

func date[T any](ok func(cmp int) bool, field func(T) time.Time) Filter[T] {
	return func(value string) (Predicate[T], error) {
		day, err := time.Parse(DateLayout, value)
		if err != nil {
			return nil, invalid("%q is not a YYYY-MM-DD date", value)
		}
		return func(item T) bool {
			t := field(item)
			if t.IsZero() {
				return false
			}
			return ok(compareDays(t, day))
		}, nil
	}
}

// compareDays compares the calendar days of a and b, each in its own
// location.
func compareDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return cmpInt(ay, by)
	case am != bm:
		return cmpInt(int(am), int(bm))
	default:
		return cmpInt(ad, bd)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Time-of-day buckets, as [from, to) hours.
var buckets = map[string][2]int{
	"morning":   {6, 12},
	"afternoon": {12, 18},
	"evening":   {18, 24},
}

// TimeOfDay keeps items whose hour falls in the named bucket: morning
// [6,12), afternoon [12,18) or evening [18,24).
func TimeOfDay[T any](field func(T) time.Time) Filter[T] {
	return func(value string) (Predicate[T], error) {
		b, ok := buckets[strings.ToLower(value)]
		if !ok {
			return nil, invalid("unknown time of day %q", value)
		}
		return func(item T) bool {
			t := field(item)
			if t.IsZero() {
				return false
			}
			h := t.Hour()
			return h >= b[0] && h < b[1]
		}, nil
	}
}

// ByString orders by a text field using the collator.
func ByString[T any](field func(T) string, desc bool) Comparator[T] {
	return directed(func(col *collate.Collator, a, b T) int {
		return col.CompareString(field(a), field(b))
	}, desc)
}

// ByNumber orders by a numeric field.
func ByNumber[T any](field func(T) float64, desc bool) Comparator[T] {
	return directed(func(_ *collate.Collator, a, b T) int {
		x, y := field(a), field(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}, desc)
}

// ByTime orders by a timestamp field.
func ByTime[T any](field func(T) time.Time, desc bool) Comparator[T] {
	return directed(func(_ *collate.Collator, a, b T) int {
		return field(a).Compare(field(b))
	}, desc)
}

func directed[T any](c Comparator[T], desc bool) Comparator[T] {
	if !desc {
		return c
	}
	return func(col *collate.Collator, a, b T) int { return -c(col, a, b) }
}
