package models

import "encoding/json"

type Movie struct {
	ID              ID        `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Genre           string    `json:"genre,omitempty"`
	Director        string    `json:"director,omitempty"`
	Rating          Number    `json:"rating,omitempty"`
	Status          string    `json:"status,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	ReleaseDate     Timestamp `json:"release_date,omitzero"`
	PosterURL       string    `json:"poster_url,omitempty"`
	TrailerURL      string    `json:"trailer_url,omitempty"`
	AgeRating       string    `json:"age_rating,omitempty"`
}

type Cinema struct {
	ID               ID     `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city,omitempty"`
	Address          string `json:"address,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	TotalAuditoriums int    `json:"total_auditoriums,omitempty"`
}

type Auditorium struct {
	ID         ID              `json:"id"`
	Name       string          `json:"name"`
	CinemaID   ID              `json:"cinema_id,omitempty"`
	CinemaName string          `json:"cinema_name,omitempty"`
	Capacity   int             `json:"capacity,omitempty"`
	ScreenType string          `json:"screen_type,omitempty"`
	SeatLayout json.RawMessage `json:"seat_layout,omitempty"`
	Cinema     *Cinema         `json:"cinema,omitempty"`
}

// CinemaLabel is the cinema name, from the flat field or the nested cinema.
func (a Auditorium) CinemaLabel() string {
	if a.CinemaName != "" || a.Cinema == nil {
		return a.CinemaName
	}
	return a.Cinema.Name
}

type Showtime struct {
	ID             ID          `json:"id"`
	MovieID        ID          `json:"movie_id,omitempty"`
	MovieTitle     string      `json:"movie_title,omitempty"`
	CinemaID       ID          `json:"cinema_id,omitempty"`
	CinemaName     string      `json:"cinema_name,omitempty"`
	AuditoriumID   ID          `json:"auditorium_id,omitempty"`
	AuditoriumName string      `json:"auditorium_name,omitempty"`
	StartTime      Timestamp   `json:"start_time,omitzero"`
	EndTime        Timestamp   `json:"end_time,omitzero"`
	Price          Number      `json:"price,omitempty"`
	AvailableSeats int         `json:"available_seats,omitempty"`
	Movie          *Movie      `json:"movie,omitempty"`
	Auditorium     *Auditorium `json:"auditorium,omitempty"`
}

func (s Showtime) Title() string {
	if s.MovieTitle != "" || s.Movie == nil {
		return s.MovieTitle
	}
	return s.Movie.Title
}

func (s Showtime) AuditoriumLabel() string {
	if s.AuditoriumName != "" || s.Auditorium == nil {
		return s.AuditoriumName
	}
	return s.Auditorium.Name
}

func (s Showtime) CinemaLabel() string {
	if s.CinemaName != "" || s.Auditorium == nil {
		return s.CinemaName
	}
	return s.Auditorium.CinemaLabel()
}

func (s Showtime) CinemaKey() string {
	if s.CinemaID != "" || s.Auditorium == nil {
		return s.CinemaID.String()
	}
	return s.Auditorium.CinemaID.String()
}

type Booking struct {
	ID            ID        `json:"id"`
	BookingNumber string    `json:"booking_number,omitempty"`
	UserID        ID        `json:"user_id,omitempty"`
	ShowtimeID    ID        `json:"showtime_id,omitempty"`
	MovieTitle    string    `json:"movie_title,omitempty"`
	CinemaName    string    `json:"cinema_name,omitempty"`
	StartTime     Timestamp `json:"start_time,omitzero"`
	SeatNumbers   []string  `json:"seat_numbers,omitempty"`
	TotalAmount   Number    `json:"total_amount,omitempty"`
	Status        string    `json:"status,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	CreatedAt     Timestamp `json:"created_at,omitzero"`
	Showtime      *Showtime `json:"showtime,omitempty"`
	User          *User     `json:"user,omitempty"`
}

func (b Booking) Title() string {
	if b.MovieTitle != "" || b.Showtime == nil {
		return b.MovieTitle
	}
	return b.Showtime.Title()
}

type Payment struct {
	ID            ID        `json:"id"`
	BookingID     ID        `json:"booking_id,omitempty"`
	BookingNumber string    `json:"booking_number,omitempty"`
	Amount        Number    `json:"amount,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Status        string    `json:"status,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	CreatedAt     Timestamp `json:"created_at,omitzero"`
	Booking       *Booking  `json:"booking,omitempty"`
}

func (p Payment) Reference() string {
	if p.BookingNumber != "" || p.Booking == nil {
		return p.BookingNumber
	}
	return p.Booking.BookingNumber
}

type Coupon struct {
	ID              ID        `json:"id"`
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountPercent Number    `json:"discount_percent,omitempty"`
	MinPurchase     Number    `json:"min_purchase,omitempty"`
	ValidFrom       Timestamp `json:"valid_from,omitzero"`
	ValidUntil      Timestamp `json:"valid_until,omitzero"`
	IsActive        bool      `json:"is_active"`
	UsageLimit      int       `json:"usage_limit,omitempty"`
	UsedCount       int       `json:"used_count,omitempty"`
}
