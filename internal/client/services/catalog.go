package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
	"github.com/dmitrijs2005/cinemaclient/internal/logging"
)

// CatalogService fetches entity lists. Every call issues exactly one
// request, or two when an authenticated list falls back to its public
// variant. Nothing is cached.
type CatalogService interface {
	Movies(ctx context.Context) ([]models.Movie, error)
	Cinemas(ctx context.Context) ([]models.Cinema, error)
	Auditoriums(ctx context.Context, cinemaID string) ([]models.Auditorium, error)
	Showtimes(ctx context.Context, movieID string) ([]models.Showtime, error)
	Coupons(ctx context.Context) ([]models.Coupon, error)
	MyBookings(ctx context.Context) ([]models.Booking, error)
	AllBookings(ctx context.Context) ([]models.Booking, error)
	AllPayments(ctx context.Context) ([]models.Payment, error)
}

type operation struct {
	query string
	field string
}

// listQuery says how a list is fetched: auth only, public only, or auth
// with a public fallback when both are set.
type listQuery struct {
	auth   *operation
	public *operation
	entity normalize.Entity
}

var (
	movieList = listQuery{
		auth:   &operation{moviesQuery, "movies"},
		public: &operation{publicMoviesQuery, "publicMovies"},
		entity: normalize.Movie,
	}
	cinemaList = listQuery{
		auth:   &operation{cinemasQuery, "cinemas"},
		public: &operation{publicCinemasQuery, "publicCinemas"},
		entity: normalize.Cinema,
	}
	auditoriumList  = listQuery{auth: &operation{auditoriumsQuery, "auditoriums"}, entity: normalize.Auditorium}
	showtimeList    = listQuery{public: &operation{showtimesQuery, "showtimes"}, entity: normalize.Showtime}
	couponList      = listQuery{auth: &operation{couponsQuery, "coupons"}, entity: normalize.Coupon}
	myBookingList   = listQuery{auth: &operation{myBookingsQuery, "myBookings"}, entity: normalize.Booking}
	allBookingList  = listQuery{auth: &operation{allBookingsQuery, "allBookings"}, entity: normalize.Booking}
	allPaymentsList = listQuery{auth: &operation{allPaymentsQuery, "allPayments"}, entity: normalize.Payment}
)

// fallbackKinds are the failures of an authenticated list that are retried
// once with the public variant.
var fallbackKinds = []error{
	graphql.ErrAuthenticationRequired,
	graphql.ErrGraphQL,
	graphql.ErrHTTP,
	graphql.ErrInsufficientPrivilege,
}

func shouldFallBack(err error) bool {
	for _, k := range fallbackKinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

type catalogService struct {
	exec   Executor
	tokens graphql.TokenSource
	logger logging.Logger
}

func NewCatalogService(exec Executor, tokens graphql.TokenSource, logger logging.Logger) CatalogService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &catalogService{exec: exec, tokens: tokens, logger: logger}
}

func (c *catalogService) signedIn(ctx context.Context) bool {
	if c.tokens == nil {
		return false
	}
	t, err := c.tokens.Token(ctx)
	return err == nil && t != ""
}

func fetchList[T any](ctx context.Context, c *catalogService, q listQuery, vars map[string]any) ([]T, error) {

	if q.auth != nil && (q.public == nil || c.signedIn(ctx)) {
		items, err := runList[T](ctx, c.exec, *q.auth, q.entity, vars, true)
		if err == nil || q.public == nil || !shouldFallBack(err) {
			return items, err
		}
		c.logger.Debug(ctx, "falling back to public list", "field", q.public.field, "reason", graphql.KindOf(err))
	}

	return runList[T](ctx, c.exec, *q.public, q.entity, vars, false)
}

func runList[T any](ctx context.Context, exec Executor, op operation, e normalize.Entity, vars map[string]any, auth bool) ([]T, error) {
	res, err := exec.Execute(ctx, op.query, vars, auth)
	if err != nil {
		return nil, err
	}
	return decodeList[T](res, op.field, e)
}

func optionalID(name, id string) map[string]any {
	if id == "" {
		return nil
	}
	return map[string]any{name: id}
}

func (c *catalogService) Movies(ctx context.Context) ([]models.Movie, error) {
	return fetchList[models.Movie](ctx, c, movieList, nil)
}

func (c *catalogService) Cinemas(ctx context.Context) ([]models.Cinema, error) {
	return fetchList[models.Cinema](ctx, c, cinemaList, nil)
}

func (c *catalogService) Auditoriums(ctx context.Context, cinemaID string) ([]models.Auditorium, error) {
	return fetchList[models.Auditorium](ctx, c, auditoriumList, optionalID("cinemaId", cinemaID))
}

func (c *catalogService) Showtimes(ctx context.Context, movieID string) ([]models.Showtime, error) {
	return fetchList[models.Showtime](ctx, c, showtimeList, optionalID("movieId", movieID))
}

func (c *catalogService) Coupons(ctx context.Context) ([]models.Coupon, error) {
	return fetchList[models.Coupon](ctx, c, couponList, nil)
}

func (c *catalogService) MyBookings(ctx context.Context) ([]models.Booking, error) {
	return fetchList[models.Booking](ctx, c, myBookingList, nil)
}

func (c *catalogService) AllBookings(ctx context.Context) ([]models.Booking, error) {
	return fetchList[models.Booking](ctx, c, allBookingList, nil)
}

func (c *catalogService) AllPayments(ctx context.Context) ([]models.Payment, error) {
	return fetchList[models.Payment](ctx, c, allPaymentsList, nil)
}
