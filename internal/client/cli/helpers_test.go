package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"golang.org/x/text/language"

	"github.com/dmitrijs2005/cinemaclient/internal/client/config"
	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
	"github.com/dmitrijs2005/cinemaclient/internal/client/services"
	"github.com/dmitrijs2005/cinemaclient/internal/logging"
)

// ---- fake services ----

type fakeAuth struct {
	mu sync.Mutex

	loginEmail, loginPass string
	loginAdmin            bool
	loginCred             models.Credential
	loginErr              error

	regUser, regEmail, regPass string
	regCred                    models.Credential
	regErr                     error

	remember   []bool
	logouts    int
	verify     services.Verification
	current    models.Credential
	currentOK  bool
	pingErr    error
	pings      int
	restore    models.Credential
	restoreErr error
}

func (f *fakeAuth) Login(_ context.Context, email, password string, requireAdmin bool) (models.Credential, error) {
	f.loginEmail, f.loginPass, f.loginAdmin = email, password, requireAdmin
	return f.loginCred, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, username, email, password string) (models.Credential, error) {
	f.regUser, f.regEmail, f.regPass = username, email, password
	return f.regCred, f.regErr
}

func (f *fakeAuth) Logout(context.Context)                            { f.logouts++ }
func (f *fakeAuth) VerifyToken(context.Context) services.Verification { return f.verify }
func (f *fakeAuth) Restore(context.Context) (models.Credential, error) {
	return f.restore, f.restoreErr
}
func (f *fakeAuth) Current(context.Context) (models.Credential, bool) { return f.current, f.currentOK }
func (f *fakeAuth) SetRememberMe(_ context.Context, remember bool) error {
	f.remember = append(f.remember, remember)
	return nil
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

type fakeCatalog struct {
	mu          sync.Mutex
	movies      []models.Movie
	moviesErr   error
	showtimes   map[string][]models.Showtime
	movieCalls  int
	showtimeIDs []string
}

func (f *fakeCatalog) Movies(context.Context) ([]models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movieCalls++
	return f.movies, f.moviesErr
}

func (f *fakeCatalog) Cinemas(context.Context) ([]models.Cinema, error) {
	return []models.Cinema{{ID: "c1", Name: "Odeon", City: "Riga"}}, nil
}

func (f *fakeCatalog) Auditoriums(context.Context, string) ([]models.Auditorium, error) {
	return nil, nil
}

func (f *fakeCatalog) Showtimes(_ context.Context, movieID string) ([]models.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showtimeIDs = append(f.showtimeIDs, movieID)
	return f.showtimes[movieID], nil
}

func (f *fakeCatalog) Coupons(context.Context) ([]models.Coupon, error)      { return nil, nil }
func (f *fakeCatalog) MyBookings(context.Context) ([]models.Booking, error)  { return nil, nil }
func (f *fakeCatalog) AllBookings(context.Context) ([]models.Booking, error) { return nil, nil }
func (f *fakeCatalog) AllPayments(context.Context) ([]models.Payment, error) { return nil, nil }

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movieCalls
}

type adminCall struct {
	op     string
	entity normalize.Entity
	id     string
	input  normalize.Record
}

type fakeAdmin struct {
	calls     []adminCall
	reply     normalize.Record
	deleteMsg string
	err       error
}

func (f *fakeAdmin) Create(_ context.Context, e normalize.Entity, input normalize.Record) (normalize.Record, error) {
	f.calls = append(f.calls, adminCall{op: "create", entity: e, input: input})
	return f.reply, f.err
}

func (f *fakeAdmin) Update(_ context.Context, e normalize.Entity, id string, input normalize.Record) (normalize.Record, error) {
	f.calls = append(f.calls, adminCall{op: "update", entity: e, id: id, input: input})
	return f.reply, f.err
}

func (f *fakeAdmin) Delete(_ context.Context, e normalize.Entity, id string) (string, error) {
	f.calls = append(f.calls, adminCall{op: "delete", entity: e, id: id})
	return f.deleteMsg, f.err
}

// ---- app ----

func sampleMovies() []models.Movie {
	return []models.Movie{
		{ID: "m1", Title: "Zodiac", Genre: "Thriller", Rating: 7.7},
		{ID: "m2", Title: "Amélie", Genre: "Comedy", Rating: 8.3},
		{ID: "m3", Title: "Alien", Genre: "Horror", Rating: 8.5},
	}
}

type testApp struct {
	*App
	auth     *fakeAuth
	catalog  *fakeCatalog
	adminSvc *fakeAdmin
	out      *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fa := &fakeAuth{}
	fc := &fakeCatalog{movies: sampleMovies(), showtimes: map[string][]models.Showtime{}}
	fd := &fakeAdmin{}
	out := &bytes.Buffer{}

	a := &App{
		config:         &config.Config{PageSize: 2},
		logger:         logging.Nop(),
		authService:    fa,
		catalogService: fc,
		adminService:   fd,
		reader:         bufio.NewReader(strings.NewReader("")),
		out:            out,
		browsers:       newBrowsers(fc, 2, language.English),
	}
	return &testApp{App: a, auth: fa, catalog: fc, adminSvc: fd, out: out}
}

func credential(name string, role models.Role) models.Credential {
	return models.Credential{Token: "tok", User: &models.User{ID: "u1", Username: name, Email: name + "@example.org", Role: role}}
}

// ---- input stubs ----

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			parts = append(parts, toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	}
	return ""
}

// stubTexts answers successive text prompts with answers, in order.
func stubTexts(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
	return &prompts
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func stubConfirm(t *testing.T, answer bool) {
	t.Helper()
	orig := getConfirmation
	getConfirmation = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return answer, nil }
	t.Cleanup(func() { getConfirmation = orig })
}

func stubFields(t *testing.T, rec normalize.Record) {
	t.Helper()
	orig := getFields
	getFields = func(_ *bufio.Reader, _ io.Writer) (normalize.Record, error) { return rec, nil }
	t.Cleanup(func() { getFields = orig })
}
