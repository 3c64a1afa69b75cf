package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
	"github.com/dmitrijs2005/cinemaclient/internal/logging"
)

// ErrSignedOut is returned by Login and Register when Logout ran while the
// request was in flight. Nothing is persisted in that case.
var ErrSignedOut = errors.New("signed out while the request was in flight")

// Verification is the outcome of VerifyToken.
type Verification struct {
	Valid  bool
	Reason string
	User   *models.User
}

// AuthService defines the credential lifecycle.
//
// Contract:
//   - Login: authenticate and persist the credential. With requireAdmin a
//     non-admin user fails with graphql.ErrInsufficientPrivilege and
//     nothing is persisted.
//   - Register: create an account and persist the returned credential.
//   - Logout: clear the credential; idempotent, never fails.
//   - VerifyToken: probe the gateway with the stored token; on failure the
//     token is cleared unless the gateway was unreachable.
//   - Restore: start-up hook; drops the credential unless remember-me is set.
//   - Current: the stored credential when it is valid.
type AuthService interface {
	Login(ctx context.Context, email, password string, requireAdmin bool) (models.Credential, error)
	Register(ctx context.Context, username, email, password string) (models.Credential, error)
	Logout(ctx context.Context)
	VerifyToken(ctx context.Context) Verification
	Ping(ctx context.Context) error
	Restore(ctx context.Context) (models.Credential, error)
	Current(ctx context.Context) (models.Credential, bool)
	SetRememberMe(ctx context.Context, remember bool) error
}

type authService struct {
	exec   Executor
	store  CredentialStore
	logger logging.Logger
	now    func() time.Time

	// generation is bumped by Logout; a login that started under an older
	// generation must not persist its result.
	mu         sync.Mutex
	generation uint64
}

func NewAuthService(exec Executor, store CredentialStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{exec: exec, store: store, logger: logger, now: time.Now}
}

func (a *authService) currentGeneration() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation
}

// persist saves c unless a logout happened since gen was read.
func (a *authService) persist(ctx context.Context, gen uint64, c models.Credential) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.generation != gen {
		return ErrSignedOut
	}
	return a.store.Save(ctx, c)
}

func (a *authService) Login(ctx context.Context, email, password string, requireAdmin bool) (models.Credential, error) {

	gen := a.currentGeneration()

	res, err := a.exec.Execute(ctx, loginMutation, map[string]any{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return models.Credential{}, err
	}

	cred, err := decodeAuthPayload(res, "login")
	if err != nil {
		return models.Credential{}, err
	}

	if requireAdmin && !cred.IsAdmin() {
		a.logger.Warn(ctx, "admin login refused", "user_id", cred.User.ID.String(), "role", cred.User.Role)
		return models.Credential{}, &graphql.Error{
			Kind:    graphql.KindInsufficientPrivilege,
			Message: "administrator access required",
		}
	}

	if err := a.persist(ctx, gen, cred); err != nil {
		return models.Credential{}, err
	}

	a.logger.Info(ctx, "signed in", "user_id", cred.User.ID.String(), "role", cred.User.Role)
	return cred, nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) (models.Credential, error) {

	gen := a.currentGeneration()

	res, err := a.exec.Execute(ctx, registerMutation, map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return models.Credential{}, err
	}

	cred, err := decodeAuthPayload(res, "register")
	if err != nil {
		return models.Credential{}, err
	}

	if err := a.persist(ctx, gen, cred); err != nil {
		return models.Credential{}, err
	}

	a.logger.Info(ctx, "registered", "user_id", cred.User.ID.String())
	return cred, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation++
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear credential", "error", err)
	}
}

func (a *authService) VerifyToken(ctx context.Context) Verification {

	gen := a.currentGeneration()

	cred, err := a.store.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "cannot read credential", "error", err)
		return Verification{Reason: "not signed in"}
	}
	if cred.Token == "" {
		return Verification{Reason: "not signed in"}
	}

	if cred.Expired(a.now()) {
		a.clearToken(ctx)
		return Verification{Reason: "session expired"}
	}

	res, err := a.exec.Execute(ctx, meQuery, nil, true)
	if err != nil {
		if !errors.Is(err, graphql.ErrNetworkUnavailable) {
			a.clearToken(ctx)
		}
		return Verification{Reason: err.Error()}
	}

	var raw normalize.Record
	if err := res.Decode("me", &raw); err != nil || raw == nil {
		a.clearToken(ctx)
		return Verification{Reason: "session is no longer valid"}
	}

	var u models.User
	if err := decodeRecord("me", raw, normalize.User, &u); err != nil {
		a.clearToken(ctx)
		return Verification{Reason: err.Error()}
	}

	cred.User = &u
	if err := a.persist(ctx, gen, cred); err != nil && !errors.Is(err, ErrSignedOut) {
		a.logger.Warn(ctx, "failed to refresh stored user", "error", err)
	}

	return Verification{Valid: true, User: &u}
}

func (a *authService) clearToken(ctx context.Context) {
	if err := a.store.ClearToken(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear token", "error", err)
	}
}

func (a *authService) Ping(ctx context.Context) error {
	_, err := a.exec.Execute(ctx, pingQuery, nil, false)
	return err
}

func (a *authService) Restore(ctx context.Context) (models.Credential, error) {

	cred, err := a.store.Load(ctx)
	if err != nil {
		a.Logout(ctx)
		return models.Credential{}, err
	}

	if !cred.RememberMe {
		if cred.Token != "" || cred.User != nil {
			a.logger.Debug(ctx, "dropping credential without remember-me")
		}
		a.Logout(ctx)
		return models.Credential{}, nil
	}

	return cred, nil
}

func (a *authService) Current(ctx context.Context) (models.Credential, bool) {
	cred, err := a.store.Load(ctx)
	if err != nil || !cred.Valid() {
		return models.Credential{}, false
	}
	return cred, true
}

func (a *authService) SetRememberMe(ctx context.Context, remember bool) error {
	return a.store.SetRememberMe(ctx, remember)
}

type authPayload struct {
	Success *bool            `json:"success"`
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    normalize.Record `json:"user"`
}

func decodeAuthPayload(res graphql.Result, field string) (models.Credential, error) {
	var p authPayload
	if err := res.Decode(field, &p); err != nil {
		return models.Credential{}, err
	}

	if p.Success != nil && !*p.Success {
		msg := p.Message
		if msg == "" {
			msg = field + " failed"
		}
		return models.Credential{}, &graphql.Error{Kind: graphql.KindGraphQL, Message: msg}
	}

	if p.Token == "" || p.User == nil {
		return models.Credential{}, &graphql.Error{
			Kind:    graphql.KindMalformedResponse,
			Message: field + " response is missing token or user",
		}
	}

	var u models.User
	if err := decodeRecord(field, p.User, normalize.User, &u); err != nil {
		return models.Credential{}, err
	}

	return models.Credential{Token: p.Token, User: &u}, nil
}
