package cli

import (
	"context"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/domain"
	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
	"github.com/scanfact/scanfact/internal/common"
)

// requireUsers gates the user-administration commands on role.
func (a *App) requireUsers() (*store.Store[models.User], bool) {
	st, ok := a.requireStores()
	if !ok {
		return nil, false
	}
	if st.Users == nil {
		fmt.Fprintln(a.out, "User administration requires the admin role.")
		return nil, false
	}
	return st.Users, true
}

// Users lists all accounts.
func (a *App) Users(ctx context.Context, args []string) error {
	users, ok := a.requireUsers()
	if !ok {
		return nil
	}

	if err := users.List(ctx); err != nil {
		a.reportErr(err)
		return err
	}

	page := users.View(a.parseQuery(args), domain.MatchUser)
	for _, u := range page.Items {
		state := "active"
		if !u.Active {
			state = "deactivated"
		}
		fmt.Fprintf(a.out, "%s  %-25s %-20s %-22s %s\n", u.ID, u.Email, u.DisplayName, u.Role, state)
	}
	fmt.Fprintln(a.out, footer(page))
	return nil
}

// AddUser creates an account. New accounts start active.
func (a *App) AddUser(ctx context.Context) error {
	users, ok := a.requireUsers()
	if !ok {
		return nil
	}

	var u models.User
	var err error
	if u.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if u.DisplayName, err = GetSimpleText(a.reader, "Display name", a.out); err != nil {
		return err
	}
	roleRaw, err := GetSimpleText(a.reader, "Role (ADMIN, COMPANY, INTERNAL_ACCOUNTANT, INDEPENDENT_ACCOUNTANT)", a.out)
	if err != nil {
		return err
	}
	role, err := common.ParseRole(roleRaw)
	if err != nil {
		fmt.Fprintln(a.out, "Unknown role:", roleRaw)
		return nil
	}
	u.Role = role
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	u.Password = string(password)

	if ok, err := Confirm(a.reader, fmt.Sprintf("Create %s account for %s?", u.Role, u.Email), a.out); err != nil || !ok {
		return err
	}

	created, err := users.Create(ctx, u)
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Created user %s (%s)\n", created.Email, created.ID)
	return nil
}

// DeleteUser removes an account permanently. Prefer 'deactivate' when the
// account may come back.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	users, ok := a.requireUsers()
	if !ok {
		return nil
	}
	id, ok := a.needOne(args, "deluser <id>")
	if !ok {
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Permanently delete user %s? Deactivation is reversible, deletion is not.", id), a.out); err != nil || !ok {
		return err
	}

	if err := users.Remove(ctx, id); err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// SetActivation toggles an account between active and deactivated.
func (a *App) SetActivation(ctx context.Context, args []string, value bool) error {
	users, ok := a.requireUsers()
	if !ok {
		return nil
	}
	usage, verb := "activate <id>", "Activate"
	if !value {
		usage, verb = "deactivate <id>", "Deactivate"
	}
	id, ok := a.needOne(args, usage)
	if !ok {
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("%s user %s?", verb, id), a.out); err != nil || !ok {
		return err
	}

	updated, err := users.Do(ctx, id, api.ActionActivation, api.ActivationBody{Active: value})
	if err != nil {
		a.reportErr(err)
		return err
	}
	state := "active"
	if !updated.Active {
		state = "deactivated"
	}
	fmt.Fprintf(a.out, "User %s is now %s\n", updated.Email, state)
	return nil
}
