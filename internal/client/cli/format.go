package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
	"github.com/dmitrijs2005/cinemaclient/internal/client/pipeline"
)

func writeTable(w io.Writer, columns []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(nothing to show)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func writeFooter(w io.Writer, info pageInfo, st pipeline.State) error {
	var b strings.Builder
	fmt.Fprintf(&b, "page %d of %d, %d matched", info.current, info.total, info.matched)

	if len(st.Filters) > 0 {
		parts := make([]string, 0, len(st.Filters))
		for _, k := range slices.Sorted(maps.Keys(st.Filters)) {
			parts = append(parts, k+"="+st.Filters[k])
		}
		fmt.Fprintf(&b, "; filters: %s", strings.Join(parts, ", "))
	}
	if st.Sort != "" {
		fmt.Fprintf(&b, "; sort: %s", st.Sort)
	}

	_, err := fmt.Fprintln(w, b.String())
	return err
}

// writeRecord prints a record as sorted name: value lines.
func writeRecord(w io.Writer, rec normalize.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for _, k := range slices.Sorted(maps.Keys(rec)) {
		fmt.Fprintf(tw, "%s:\t%v\n", k, rec[k])
	}
	return tw.Flush()
}

func money(v models.Number) string { return strconv.FormatFloat(v.Float(), 'f', 2, 64) }

func count(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

var movieColumns = []string{"ID", "TITLE", "GENRE", "RATING", "RELEASED", "MINUTES", "STATUS"}

func movieRow(m models.Movie) []string {
	return []string{m.ID.String(), m.Title, m.Genre, strconv.FormatFloat(m.Rating.Float(), 'f', 1, 64),
		m.ReleaseDate.Day(), count(m.DurationMinutes), m.Status}
}

var cinemaColumns = []string{"ID", "NAME", "CITY", "ADDRESS", "AUDITORIUMS"}

func cinemaRow(c models.Cinema) []string {
	return []string{c.ID.String(), c.Name, c.City, c.Address, count(c.TotalAuditoriums)}
}

var auditoriumColumns = []string{"ID", "NAME", "CINEMA", "CAPACITY", "SCREEN"}

func auditoriumRow(a models.Auditorium) []string {
	return []string{a.ID.String(), a.Name, a.CinemaLabel(), count(a.Capacity), a.ScreenType}
}

var showtimeColumns = []string{"ID", "MOVIE", "CINEMA", "AUDITORIUM", "DATE", "TIME", "PRICE", "SEATS"}

func showtimeRow(s models.Showtime) []string {
	return []string{s.ID.String(), s.Title(), s.CinemaLabel(), s.AuditoriumLabel(),
		s.StartTime.Day(), s.StartTime.Clock(), money(s.Price), count(s.AvailableSeats)}
}

var bookingColumns = []string{"ID", "NUMBER", "MOVIE", "BOOKED", "SEATS", "AMOUNT", "STATUS"}

func bookingRow(b models.Booking) []string {
	return []string{b.ID.String(), b.BookingNumber, b.Title(), b.CreatedAt.Day(),
		strings.Join(b.SeatNumbers, ","), money(b.TotalAmount), b.Status}
}

var paymentColumns = []string{"ID", "BOOKING", "METHOD", "AMOUNT", "STATUS", "DATE"}

func paymentRow(p models.Payment) []string {
	return []string{p.ID.String(), p.Reference(), p.PaymentMethod, money(p.Amount), p.Status, p.CreatedAt.Day()}
}

var couponColumns = []string{"ID", "CODE", "DISCOUNT", "VALID UNTIL", "ACTIVE"}

func couponRow(c models.Coupon) []string {
	return []string{c.ID.String(), c.Code, strconv.FormatFloat(c.DiscountPercent.Float(), 'f', -1, 64) + "%",
		c.ValidUntil.Day(), strconv.FormatBool(c.IsActive)}
}
