package models

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/cinemaclient/internal/client/pipeline"
)

// List schemas. Filter and sort keys are what the list commands accept.

var MovieSchema = pipeline.Schema[Movie]{
	Filters: map[string]pipeline.Filter[Movie]{
		"search": pipeline.Search(
			func(m Movie) string { return m.Title },
			func(m Movie) string { return m.Director },
			func(m Movie) string { return m.Description },
		),
		"genre":         pipeline.Exact(func(m Movie) string { return m.Genre }),
		"status":        pipeline.Exact(func(m Movie) string { return m.Status }),
		"min_rating":    pipeline.AtLeast(movieRating),
		"released_from": pipeline.OnOrAfter(movieRelease),
		"released_to":   pipeline.OnOrBefore(movieRelease),
	},
	Sorts: map[string]pipeline.Comparator[Movie]{
		"title":      pipeline.ByString(func(m Movie) string { return m.Title }, false),
		"title-desc": pipeline.ByString(func(m Movie) string { return m.Title }, true),
		"rating":     pipeline.ByNumber(movieRating, true),
		"rating-asc": pipeline.ByNumber(movieRating, false),
		"date-desc":  pipeline.ByTime(movieRelease, true),
		"date-asc":   pipeline.ByTime(movieRelease, false),
		"duration":   pipeline.ByNumber(func(m Movie) float64 { return float64(m.DurationMinutes) }, false),
	},
}

func movieRating(m Movie) float64        { return m.Rating.Float() }
func movieRelease(m Movie) time.Time     { return m.ReleaseDate.Time }
func cinemaName(c Cinema) string         { return c.Name }
func auditoriumName(a Auditorium) string { return a.Name }

var CinemaSchema = pipeline.Schema[Cinema]{
	Filters: map[string]pipeline.Filter[Cinema]{
		"search": pipeline.Search(
			cinemaName,
			func(c Cinema) string { return c.City },
			func(c Cinema) string { return c.Address },
		),
		"city": pipeline.Exact(func(c Cinema) string { return c.City }),
	},
	Sorts: map[string]pipeline.Comparator[Cinema]{
		"name":      pipeline.ByString(cinemaName, false),
		"name-desc": pipeline.ByString(cinemaName, true),
		"city":      pipeline.ByString(func(c Cinema) string { return c.City }, false),
	},
}

var AuditoriumSchema = pipeline.Schema[Auditorium]{
	Filters: map[string]pipeline.Filter[Auditorium]{
		"search":       pipeline.Search(auditoriumName, Auditorium.CinemaLabel),
		"cinema":       pipeline.Exact(Auditorium.CinemaLabel),
		"cinema_id":    pipeline.Exact(func(a Auditorium) string { return a.CinemaID.String() }),
		"min_capacity": pipeline.AtLeast(auditoriumCapacity),
	},
	Sorts: map[string]pipeline.Comparator[Auditorium]{
		"name":          pipeline.ByString(auditoriumName, false),
		"capacity":      pipeline.ByNumber(auditoriumCapacity, false),
		"capacity-desc": pipeline.ByNumber(auditoriumCapacity, true),
	},
}

func auditoriumCapacity(a Auditorium) float64 { return float64(a.Capacity) }

var ShowtimeSchema = pipeline.Schema[Showtime]{
	Filters: map[string]pipeline.Filter[Showtime]{
		"search":      pipeline.Search(Showtime.Title, Showtime.CinemaLabel, Showtime.AuditoriumLabel),
		"movie":       pipeline.Exact(func(s Showtime) string { return s.MovieID.String() }),
		"cinema":      pipeline.Exact(Showtime.CinemaKey),
		"auditorium":  pipeline.Exact(func(s Showtime) string { return s.AuditoriumID.String() }),
		"date":        pipeline.OnDate(showtimeStart),
		"date_from":   pipeline.OnOrAfter(showtimeStart),
		"date_to":     pipeline.OnOrBefore(showtimeStart),
		"time_of_day": pipeline.TimeOfDay(showtimeStart),
		"max_price":   pipeline.AtMost(showtimePrice),
	},
	Sorts: map[string]pipeline.Comparator[Showtime]{
		"time":       pipeline.ByTime(showtimeStart, false),
		"time-desc":  pipeline.ByTime(showtimeStart, true),
		"price":      pipeline.ByNumber(showtimePrice, false),
		"price-desc": pipeline.ByNumber(showtimePrice, true),
		"movie":      pipeline.ByString(Showtime.Title, false),
	},
}

func showtimeStart(s Showtime) time.Time { return s.StartTime.Time }
func showtimePrice(s Showtime) float64   { return s.Price.Float() }

var BookingSchema = pipeline.Schema[Booking]{
	Filters: map[string]pipeline.Filter[Booking]{
		"search":    pipeline.Search(func(b Booking) string { return b.BookingNumber }, Booking.Title),
		"status":    pipeline.Exact(func(b Booking) string { return b.Status }),
		"date_from": pipeline.OnOrAfter(bookingCreated),
		"date_to":   pipeline.OnOrBefore(bookingCreated),
	},
	Sorts: map[string]pipeline.Comparator[Booking]{
		"date-desc":   pipeline.ByTime(bookingCreated, true),
		"date-asc":    pipeline.ByTime(bookingCreated, false),
		"amount-desc": pipeline.ByNumber(bookingAmount, true),
		"amount":      pipeline.ByNumber(bookingAmount, false),
	},
}

func bookingCreated(b Booking) time.Time { return b.CreatedAt.Time }
func bookingAmount(b Booking) float64    { return b.TotalAmount.Float() }

var PaymentSchema = pipeline.Schema[Payment]{
	Filters: map[string]pipeline.Filter[Payment]{
		"search": pipeline.Search(
			Payment.Reference,
			func(p Payment) string { return p.TransactionID },
			func(p Payment) string { return p.UserEmail },
		),
		"status":    pipeline.Exact(func(p Payment) string { return p.Status }),
		"method":    pipeline.Exact(func(p Payment) string { return p.PaymentMethod }),
		"date_from": pipeline.OnOrAfter(paymentCreated),
		"date_to":   pipeline.OnOrBefore(paymentCreated),
	},
	Sorts: map[string]pipeline.Comparator[Payment]{
		"date-desc":   pipeline.ByTime(paymentCreated, true),
		"date-asc":    pipeline.ByTime(paymentCreated, false),
		"amount-desc": pipeline.ByNumber(paymentAmount, true),
		"amount":      pipeline.ByNumber(paymentAmount, false),
	},
}

func paymentCreated(p Payment) time.Time { return p.CreatedAt.Time }
func paymentAmount(p Payment) float64    { return p.Amount.Float() }

var CouponSchema = pipeline.Schema[Coupon]{
	Filters: map[string]pipeline.Filter[Coupon]{
		"search": pipeline.Search(couponCode, func(c Coupon) string { return c.Description }),
		"active": pipeline.Exact(func(c Coupon) string { return strconv.FormatBool(c.IsActive) }),
	},
	Sorts: map[string]pipeline.Comparator[Coupon]{
		"code":          pipeline.ByString(couponCode, false),
		"discount-desc": pipeline.ByNumber(func(c Coupon) float64 { return c.DiscountPercent.Float() }, true),
		"expiry":        pipeline.ByTime(func(c Coupon) time.Time { return c.ValidUntil.Time }, false),
	},
}

func couponCode(c Coupon) string { return c.Code }
