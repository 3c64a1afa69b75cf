package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/dmitrijs2005/cinemaclient/internal/client/pipeline"
	"github.com/dmitrijs2005/cinemaclient/internal/client/services"
)

var (
	ErrUsage      = errors.New("usage")
	ErrNoList     = errors.New("no list selected, use: list <entity>")
	ErrUnknownSet = errors.New("unknown list")
)

func usage(text string) error {
	return fmt.Errorf("%w: %s", ErrUsage, text)
}

// pageInfo is the pagination summary of the last render.
type pageInfo struct {
	current int
	total   int
	matched int
}

// browser is one entity list as the REPL sees it, independent of the
// element type.
type browser interface {
	name() string
	load(ctx context.Context, scope string) error
	reload(ctx context.Context) error
	loaded() bool
	render(w io.Writer) (pageInfo, error)
	update(w io.Writer, change func(pipeline.State) pipeline.State) (pageInfo, error)
	state() pipeline.State
	filterKeys() []string
	sortKeys() []string
	reset()
}

// listing adapts a pipeline.View to browser. scope is the optional id a
// fetch is narrowed by (movie for showtimes, cinema for auditoriums).
type listing[T any] struct {
	title   string
	view    *pipeline.View[T]
	fetch   func(ctx context.Context, scope string) ([]T, error)
	columns []string
	row     func(T) []string

	mu    sync.Mutex
	scope string
}

func (l *listing[T]) name() string { return l.title }

func (l *listing[T]) load(ctx context.Context, scope string) error {
	err := l.view.Load(ctx, func(ctx context.Context) ([]T, error) {
		return l.fetch(ctx, scope)
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.scope = scope
	l.mu.Unlock()
	return nil
}

func (l *listing[T]) reload(ctx context.Context) error {
	l.mu.Lock()
	scope := l.scope
	l.mu.Unlock()
	return l.load(ctx, scope)
}

func (l *listing[T]) loaded() bool { return l.view.Loaded() }

func (l *listing[T]) render(w io.Writer) (pageInfo, error) {
	page, err := l.view.Render()
	if err != nil {
		return pageInfo{}, err
	}
	return l.print(w, page)
}

func (l *listing[T]) update(w io.Writer, change func(pipeline.State) pipeline.State) (pageInfo, error) {
	page, err := l.view.Update(change)
	if err != nil {
		return pageInfo{}, err
	}
	return l.print(w, page)
}

func (l *listing[T]) print(w io.Writer, page pipeline.Page[T]) (pageInfo, error) {
	rows := make([][]string, 0, len(page.Visible))
	for _, item := range page.Visible {
		rows = append(rows, l.row(item))
	}
	info := pageInfo{current: page.CurrentPage, total: page.TotalPages, matched: page.TotalMatched}
	if err := writeTable(w, l.columns, rows); err != nil {
		return info, err
	}
	return info, writeFooter(w, info, l.view.State())
}

func (l *listing[T]) state() pipeline.State { return l.view.State() }
func (l *listing[T]) filterKeys() []string  { return l.view.Schema().FilterKeys() }
func (l *listing[T]) sortKeys() []string    { return l.view.Schema().SortKeys() }

func (l *listing[T]) reset() {
	l.view.Reset()
	l.mu.Lock()
	l.scope = ""
	l.mu.Unlock()
}

func unscoped[T any](f func(ctx context.Context) ([]T, error)) func(context.Context, string) ([]T, error) {
	return func(ctx context.Context, _ string) ([]T, error) { return f(ctx) }
}

func newListing[T any](title string, schema pipeline.Schema[T], pageSize int, locale language.Tag,
	fetch func(context.Context, string) ([]T, error), columns []string, row func(T) []string) *listing[T] {
	return &listing[T]{
		title:   title,
		view:    pipeline.NewView(schema, pageSize, locale),
		fetch:   fetch,
		columns: columns,
		row:     row,
	}
}

// newBrowsers builds one browser per list command argument.
func newBrowsers(cs services.CatalogService, pageSize int, locale language.Tag) map[string]browser {
	list := []browser{
		newListing("movies", models.MovieSchema, pageSize, locale, unscoped(cs.Movies), movieColumns, movieRow),
		newListing("cinemas", models.CinemaSchema, pageSize, locale, unscoped(cs.Cinemas), cinemaColumns, cinemaRow),
		newListing("auditoriums", models.AuditoriumSchema, pageSize, locale, cs.Auditoriums, auditoriumColumns, auditoriumRow),
		newListing("showtimes", models.ShowtimeSchema, pageSize, locale, cs.Showtimes, showtimeColumns, showtimeRow),
		newListing("coupons", models.CouponSchema, pageSize, locale, unscoped(cs.Coupons), couponColumns, couponRow),
		newListing("bookings", models.BookingSchema, pageSize, locale, unscoped(cs.MyBookings), bookingColumns, bookingRow),
		newListing("allbookings", models.BookingSchema, pageSize, locale, unscoped(cs.AllBookings), bookingColumns, bookingRow),
		newListing("payments", models.PaymentSchema, pageSize, locale, unscoped(cs.AllPayments), paymentColumns, paymentRow),
	}

	m := make(map[string]browser, len(list))
	for _, b := range list {
		m[b.name()] = b
	}
	return m
}

func (a *App) listNames() []string {
	names := make([]string, 0, len(a.browsers))
	for n := range a.browsers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (a *App) resetBrowsers() {
	for _, b := range a.browsers {
		b.reset()
	}
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
}

func (a *App) selected() (browser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, ErrNoList
	}
	return a.current, nil
}

// List loads an entity list and shows its first page. The optional second
// argument narrows showtimes by movie id and auditoriums by cinema id.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usage("list <" + strings.Join(a.listNames(), "|") + "> [id]")
	}
	b, ok := a.browsers[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSet, args[0])
	}

	scope := ""
	if len(args) == 2 {
		scope = args[1]
	}

	// A list that failed to load is not selected; the previous one stays.
	if err := b.load(ctx, scope); err != nil {
		return err
	}
	a.mu.Lock()
	a.current = b
	a.mu.Unlock()

	_, err := b.render(a.out)
	return err
}

// Reload fetches the selected list again, keeping its state.
func (a *App) Reload(ctx context.Context) error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	if err := b.reload(ctx); err != nil {
		return err
	}
	_, err = b.render(a.out)
	return err
}

// Filter sets one filter; the value is the rest of the line. An empty
// value removes the filter.
func (a *App) Filter(args []string) error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usage("filter <" + strings.Join(b.filterKeys(), "|") + "> [value]")
	}
	key, value := args[0], strings.Join(args[1:], " ")
	_, err = b.update(a.out, func(s pipeline.State) pipeline.State { return s.WithFilter(key, value) })
	return err
}

func (a *App) Unfilter() error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	_, err = b.update(a.out, pipeline.State.WithoutFilters)
	return err
}

// Sort changes the sort key. Without arguments the fetched order is
// restored.
func (a *App) Sort(args []string) error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return usage("sort [" + strings.Join(b.sortKeys(), "|") + "]")
	}
	key := ""
	if len(args) == 1 {
		key = args[0]
	}
	_, err = b.update(a.out, func(s pipeline.State) pipeline.State { return s.WithSort(key) })
	return err
}

// Page jumps to page n. Pages past the end show an empty list.
func (a *App) Page(args []string) error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usage("page <n>")
	}
	_, err = b.update(a.out, func(s pipeline.State) pipeline.State { return s.WithPage(n) })
	return err
}

func (a *App) Next() error {
	return a.step(1)
}

func (a *App) Prev() error {
	return a.step(-1)
}

func (a *App) step(delta int) error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	info, err := b.render(io.Discard)
	if err != nil {
		return err
	}

	target := info.current + delta
	if delta < 0 && target > info.total {
		target = info.total
	}
	if target < 1 || target > info.total {
		fmt.Fprintf(a.out, "No more pages (page %d of %d)\n", info.current, info.total)
		return nil
	}
	_, err = b.update(a.out, func(s pipeline.State) pipeline.State { return s.WithPage(target) })
	return err
}

// Keys prints the filter and sort keys of the selected list.
func (a *App) Keys() error {
	b, err := a.selected()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "filters: %s\n", strings.Join(b.filterKeys(), ", "))
	fmt.Fprintf(a.out, "sorts:   %s\n", strings.Join(b.sortKeys(), ", "))
	return nil
}
