package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/api"
)

// Login prompts for credentials and opens a session. The identity and
// token are persisted so a restart restores the same session.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in; run 'logout' first.")
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	id, err := a.gate.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrAccountDeactivated) {
			fmt.Fprintln(a.out, "This account has been deactivated. Contact an administrator.")
			return err
		}
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			fmt.Fprintln(a.out, "Invalid email or password.")
			return err
		}
		a.reportErr(err)
		return err
	}

	a.stores = nil
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", id.Email, id.Role)
	return nil
}

// Logout closes the session and wipes the persisted credential.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.gate.Logout(ctx); err != nil {
		a.reportErr(err)
		return err
	}
	a.stores = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current identity.
func (a *App) WhoAmI(ctx context.Context) error {
	id, ok := a.gate.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>  role=%s  id=%s\n", id.DisplayName, id.Email, id.Role, id.ID)
	return nil
}
