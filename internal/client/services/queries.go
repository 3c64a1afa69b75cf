package services

// Field selections use the gateway's camelCase names; records are mapped
// to snake_case by package normalize after decoding.

const userFields = `id username email role firstName lastName`

const authPayloadFields = `success message token user { ` + userFields + ` }`

const (
	loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) { ` + authPayloadFields + ` }
}`

	registerMutation = `mutation Register($username: String!, $email: String!, $password: String!) {
  register(username: $username, email: $email, password: $password) { ` + authPayloadFields + ` }
}`

	meQuery = `query Me { me { ` + userFields + ` } }`

	pingQuery = `query Ping { __typename }`
)

const (
	movieFields      = `id title description genre director rating status durationMinutes releaseDate posterUrl trailerUrl ageRating`
	cinemaFields     = `id name city address phoneNumber totalAuditoriums`
	auditoriumFields = `id name cinemaId capacity screenType seatLayout cinema { id name }`
	showtimeFields   = `id movieId cinemaId auditoriumId startTime endTime price availableSeats movie { id title } auditorium { id name cinemaId cinema { id name } }`
	bookingFields    = `id bookingNumber userId showtimeId seatNumbers totalAmount status paymentStatus createdAt showtime { id startTime movie { id title } auditorium { id name cinema { id name } } }`
	paymentFields    = `id bookingId amount paymentMethod status transactionId createdAt booking { id bookingNumber user { id email } }`
	couponFields     = `id code description discountPercent minPurchase validFrom validUntil isActive usageLimit usedCount`
)

const (
	moviesQuery       = `query Movies { movies { ` + movieFields + ` } }`
	publicMoviesQuery = `query PublicMovies { publicMovies { ` + movieFields + ` } }`

	cinemasQuery       = `query Cinemas { cinemas { ` + cinemaFields + ` } }`
	publicCinemasQuery = `query PublicCinemas { publicCinemas { ` + cinemaFields + ` } }`

	auditoriumsQuery = `query Auditoriums($cinemaId: ID) { auditoriums(cinemaId: $cinemaId) { ` + auditoriumFields + ` } }`
	showtimesQuery   = `query Showtimes($movieId: ID) { showtimes(movieId: $movieId) { ` + showtimeFields + ` } }`
	couponsQuery     = `query Coupons { coupons { ` + couponFields + ` } }`

	myBookingsQuery  = `query MyBookings { myBookings { ` + bookingFields + ` } }`
	allBookingsQuery = `query AllBookings { allBookings { ` + bookingFields + ` user { id email username } } }`
	allPaymentsQuery = `query AllPayments { allPayments { ` + paymentFields + ` } }`
)
