package normalize

// Wire (camelCase) to UI (snake_case) pairs. Fields whose name is the same
// in both conventions (id, title, price, status, ...) are not listed.
func init() {
	register(Movie, [][2]string{
		{"releaseDate", "release_date"},
		{"durationMinutes", "duration_minutes"},
		{"posterUrl", "poster_url"},
		{"trailerUrl", "trailer_url"},
		{"ageRating", "age_rating"},
		{"createdAt", "created_at"},
		{"updatedAt", "updated_at"},
	}, nil)

	register(Cinema, [][2]string{
		{"totalAuditoriums", "total_auditoriums"},
		{"phoneNumber", "phone_number"},
		{"createdAt", "created_at"},
		{"updatedAt", "updated_at"},
	}, nil)

	register(Auditorium, [][2]string{
		{"cinemaId", "cinema_id"},
		{"cinemaName", "cinema_name"},
		{"seatLayout", "seat_layout"},
		{"screenType", "screen_type"},
		{"createdAt", "created_at"},
	}, map[string]Entity{
		"cinema": Cinema,
	})

	register(Showtime, [][2]string{
		{"movieId", "movie_id"},
		{"movieTitle", "movie_title"},
		{"cinemaId", "cinema_id"},
		{"cinemaName", "cinema_name"},
		{"auditoriumId", "auditorium_id"},
		{"auditoriumName", "auditorium_name"},
		{"startTime", "start_time"},
		{"endTime", "end_time"},
		{"availableSeats", "available_seats"},
		{"createdAt", "created_at"},
	}, map[string]Entity{
		"movie":      Movie,
		"auditorium": Auditorium,
	})

	register(Booking, [][2]string{
		{"bookingNumber", "booking_number"},
		{"userId", "user_id"},
		{"showtimeId", "showtime_id"},
		{"movieTitle", "movie_title"},
		{"cinemaName", "cinema_name"},
		{"startTime", "start_time"},
		{"seatNumbers", "seat_numbers"},
		{"totalAmount", "total_amount"},
		{"paymentStatus", "payment_status"},
		{"createdAt", "created_at"},
	}, map[string]Entity{
		"showtime": Showtime,
		"user":     User,
	})

	register(Payment, [][2]string{
		{"bookingId", "booking_id"},
		{"bookingNumber", "booking_number"},
		{"paymentMethod", "payment_method"},
		{"transactionId", "transaction_id"},
		{"userEmail", "user_email"},
		{"createdAt", "created_at"},
	}, map[string]Entity{
		"booking": Booking,
	})

	register(Coupon, [][2]string{
		{"discountPercent", "discount_percent"},
		{"minPurchase", "min_purchase"},
		{"validFrom", "valid_from"},
		{"validUntil", "valid_until"},
		{"isActive", "is_active"},
		{"usageLimit", "usage_limit"},
		{"usedCount", "used_count"},
		{"createdAt", "created_at"},
	}, nil)

	register(User, [][2]string{
		{"firstName", "first_name"},
		{"lastName", "last_name"},
		{"phoneNumber", "phone_number"},
		{"createdAt", "created_at"},
	}, nil)
}
