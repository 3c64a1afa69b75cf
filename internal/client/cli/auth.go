package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirmation = GetConfirmation

// Register prompts for a username, email and password and creates an
// account. The returned credential is persisted by the service and the
// session starts signed in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	cred, err := a.authService.Register(ctx, userName, email, string(password))
	if err != nil {
		return err
	}

	a.signedIn(ctx, cred)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, false)
}

// AdminLogin signs in and requires the account to be an administrator.
// A customer account is rejected and nothing is stored.
func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, true)
}

func (a *App) login(ctx context.Context, requireAdmin bool) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	cred, err := a.authService.Login(ctx, email, string(password), requireAdmin)
	if err != nil {
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		return err
	}

	if err := a.authService.SetRememberMe(ctx, remember); err != nil {
		a.logger.Warn(ctx, "saving remember-me failed", "error", err)
	}

	a.signedIn(ctx, cred)
	return nil
}

func (a *App) signedIn(ctx context.Context, cred models.Credential) {
	name := "user"
	if cred.User != nil {
		name = cred.User.DisplayName()
	}
	a.setUser(name, cred.IsAdmin())
	a.setMode(ctx, ModeOnline)
	a.resetBrowsers()
	fmt.Fprintf(a.out, "Signed in as %s\n", name)
}

// Logout clears the stored credential and every loaded list. It never
// fails.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.setUser("", false)
	a.resetBrowsers()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// Verify checks the stored token with the gateway.
func (a *App) Verify(ctx context.Context) error {
	v := a.authService.VerifyToken(ctx)
	if !v.Valid {
		if _, ok := a.authService.Current(ctx); !ok {
			a.setUser("", false)
		}
		fmt.Fprintf(a.out, "Session is not valid: %s\n", v.Reason)
		return nil
	}

	if v.User != nil {
		a.setUser(v.User.DisplayName(), v.User.IsAdmin())
	}
	fmt.Fprintln(a.out, "Session is valid")
	return nil
}
