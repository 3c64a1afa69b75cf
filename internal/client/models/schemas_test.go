package models

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/cinemaclient/internal/client/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, s string) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func firstPage(filters map[string]string, sort string) pipeline.Query {
	return pipeline.Query{Filters: filters, Sort: sort, Page: pipeline.Window{CurrentPage: 1, PageSize: 50}}
}

func TestMovieSchema(t *testing.T) {
	movies := decode[Movie](t, `[
		{"id":"1","title":"Dune","genre":"Sci-Fi","rating":8.1,"release_date":"2024-03-01","director":"Villeneuve"},
		{"id":"2","title":"Arrival","genre":"Sci-Fi","rating":7.9,"release_date":"2016-11-11","director":"Villeneuve"},
		{"id":"3","title":"Heat","genre":"Crime","rating":8.3,"release_date":"1995-12-15","director":"Mann"}
	]`)

	p, err := pipeline.Apply(movies, MovieSchema, firstPage(map[string]string{"search": "villeneuve"}, "rating"))
	require.NoError(t, err)
	require.Len(t, p.Visible, 2)
	assert.Equal(t, "Dune", p.Visible[0].Title)

	p, err = pipeline.Apply(movies, MovieSchema, firstPage(map[string]string{"released_from": "2000-01-01"}, "date-asc"))
	require.NoError(t, err)
	require.Len(t, p.Visible, 2)
	assert.Equal(t, "Arrival", p.Visible[0].Title)
}

func TestShowtimeSchema(t *testing.T) {
	shows := decode[Showtime](t, `[
		{"id":"s1","movie_title":"Dune","start_time":"2025-03-01T10:00:00Z","price":9.5,"cinema_id":"c1"},
		{"id":"s2","movie":{"id":"m2","title":"Heat"},"start_time":"2025-03-01T19:15:00Z","price":12,
		 "auditorium":{"id":"a1","name":"Hall 1","cinema_id":"c2"}},
		{"id":"s3","movie_title":"Arrival","start_time":"2025-03-02T14:00:00Z","price":11,"cinema_id":"c1"}
	]`)

	p, err := pipeline.Apply(shows, ShowtimeSchema, firstPage(map[string]string{"date": "2025-03-01"}, "price-desc"))
	require.NoError(t, err)
	require.Len(t, p.Visible, 2)
	assert.Equal(t, ID("s2"), p.Visible[0].ID)
	assert.Equal(t, "Heat", p.Visible[0].Title())

	p, err = pipeline.Apply(shows, ShowtimeSchema, firstPage(map[string]string{"cinema": "c2"}, ""))
	require.NoError(t, err)
	require.Len(t, p.Visible, 1)
	assert.Equal(t, "Hall 1", p.Visible[0].AuditoriumLabel())

	p, err = pipeline.Apply(shows, ShowtimeSchema, firstPage(map[string]string{"time_of_day": "afternoon", "max_price": "11"}, ""))
	require.NoError(t, err)
	require.Len(t, p.Visible, 1)
	assert.Equal(t, ID("s3"), p.Visible[0].ID)
}

func TestCouponSchema_ActiveFilter(t *testing.T) {
	coupons := decode[Coupon](t, `[
		{"id":"1","code":"SPRING","is_active":true,"discount_percent":10},
		{"id":"2","code":"OLD","is_active":false,"discount_percent":50}
	]`)

	p, err := pipeline.Apply(coupons, CouponSchema, firstPage(map[string]string{"active": "TRUE"}, ""))
	require.NoError(t, err)
	require.Len(t, p.Visible, 1)
	assert.Equal(t, "SPRING", p.Visible[0].Code)

	p, err = pipeline.Apply(coupons, CouponSchema, firstPage(nil, "discount-desc"))
	require.NoError(t, err)
	assert.Equal(t, "OLD", p.Visible[0].Code)
}

func TestBookingAndPaymentFallbacks(t *testing.T) {
	b := Booking{Showtime: &Showtime{Movie: &Movie{Title: "Dune"}}}
	assert.Equal(t, "Dune", b.Title())

	p := Payment{Booking: &Booking{BookingNumber: "BK-9"}}
	assert.Equal(t, "BK-9", p.Reference())

	a := Auditorium{Cinema: &Cinema{Name: "Grand"}}
	assert.Equal(t, "Grand", a.CinemaLabel())
}

func TestSchemasRejectUnknownKeys(t *testing.T) {
	_, err := pipeline.Apply([]Cinema{{Name: "x"}}, CinemaSchema, firstPage(map[string]string{"genre": "x"}, ""))
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfiguration)

	_, err = pipeline.Apply([]Payment{}, PaymentSchema, firstPage(nil, "rating"))
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfiguration)
}
