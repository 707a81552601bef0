package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, signs in and opens the role's landing
// screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.sess.SignIn(ctx, email, string(password))
	if err == nil && p == nil {
		err = common.ErrNoProfile
	}
	if err != nil {
		a.fail(ctx, err, "Sign-in failed")
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", p.DisplayName(), p.Role)
	a.router.Goto(ctx, p.Role.LandingRoute())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sess.Logout(ctx); err != nil {
		a.fail(ctx, err, "Sign-out could not clear local storage")
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	p := a.sess.Profile()
	if p == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return common.ErrNoProfile
	}
	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\nid: %s\n", p.DisplayName(), p.Email, p.Role, p.ID)
	if p.Phone != "" {
		fmt.Fprintf(a.out, "phone: %s\n", p.Phone)
	}
	if p.Rating > 0 {
		fmt.Fprintf(a.out, "rating: %.2f\n", p.Rating)
	}
	if p.WalletBalance != 0 {
		fmt.Fprintf(a.out, "wallet: %.2f\n", p.WalletBalance)
	}
	if v := p.Vehicle; v != nil {
		fmt.Fprintf(a.out, "vehicle: %s %s %s (%s)\n", v.Color, v.Make, v.Model, v.PlateNumber)
	}
	return nil
}

// Refresh re-reads the profile from the server and re-checks the current
// screen against it.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.sess.RefreshProfile(ctx); err != nil {
		a.fail(ctx, err, "Could not refresh your profile")
		a.guard.Enforce(ctx, a.router, allowedRoles(a.router.Current())...)
		return err
	}
	a.guard.Enforce(ctx, a.router, allowedRoles(a.router.Current())...)
	fmt.Fprintln(a.out, "Profile refreshed.")
	return nil
}

func (a *App) Goto(ctx context.Context, route string) error {
	if !a.router.Goto(ctx, route) {
		return errNotRendered
	}
	return nil
}

func (a *App) Where(context.Context) error {
	fmt.Fprintln(a.out, a.router.Current())
	return nil
}

var errNotRendered = errors.New("screen not rendered")

// fail reports err the way the console always does: authentication
// failures stay silent (the session redirects to /login), everything else
// shows the server's message or fallback.
func (a *App) fail(ctx context.Context, err error, fallback string) {
	a.log.Debug(ctx, "command failed", "error", err)
	if apiclient.IsAuthFailure(err) {
		return
	}
	fmt.Fprintln(a.out, "Error:", userMessage(err, fallback))
}
