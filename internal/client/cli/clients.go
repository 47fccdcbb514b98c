package cli

import (
	"context"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/domain"
	"github.com/scanfact/scanfact/internal/client/models"
)

// requireStores is the common entry gate of every data command.
func (a *App) requireStores() (*domain.Stores, bool) {
	st := a.ensureStores()
	if st == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil, false
	}
	return st, true
}

// needOne extracts the single id argument a command requires.
func (a *App) needOne(args []string, usage string) (string, bool) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return "", false
	}
	return args[0], true
}

// Clients lists the clients visible under the caller's scope.
func (a *App) Clients(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}

	if err := st.Clients.List(ctx); err != nil {
		a.reportErr(err)
		return err
	}

	page := st.Clients.View(a.parseQuery(args), domain.MatchClient)
	for _, c := range page.Items {
		assigned := ""
		if c.AssignedAccountantID != "" {
			assigned = "  accountant=" + c.AssignedAccountantID
		}
		fmt.Fprintf(a.out, "%s  %-20s %-25s %s%s\n", c.ID, c.Name, c.Email, c.Phone, assigned)
	}
	fmt.Fprintln(a.out, footer(page))
	return nil
}

// AddClient creates a client owned by the calling company or accountant.
func (a *App) AddClient(ctx context.Context) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if id, _ := a.gate.Current(); !id.Role.CanManageClients() {
		fmt.Fprintln(a.out, "Your role cannot manage clients.")
		return nil
	}

	var c models.Client
	var err error
	if c.Name, err = GetSimpleText(a.reader, "Client name", a.out); err != nil {
		return err
	}
	if c.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if c.Phone, err = GetSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Create client %q?", c.Name), a.out); err != nil || !ok {
		return err
	}

	created, err := st.Clients.Create(ctx, c)
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Created client %s (%s)\n", created.Name, created.ID)
	return nil
}

// EditClient updates a client's contact fields. Empty input keeps the
// current value.
func (a *App) EditClient(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	id, ok := a.needOne(args, "editclient <id>")
	if !ok {
		return nil
	}

	current, found := st.Clients.Get(id)
	if !found {
		fmt.Fprintln(a.out, "Unknown client id; run 'clients' first.")
		return nil
	}

	next := current
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.Name), a.out); err != nil {
		return err
	} else if v != "" {
		next.Name = v
	}
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Email [%s]", current.Email), a.out); err != nil {
		return err
	} else if v != "" {
		next.Email = v
	}
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Phone [%s]", current.Phone), a.out); err != nil {
		return err
	} else if v != "" {
		next.Phone = v
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Save changes to %q?", current.Name), a.out); err != nil || !ok {
		return err
	}

	updated, err := st.Clients.Update(ctx, id, next)
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Updated client %s\n", updated.ID)
	return nil
}

// DeleteClient removes a client after confirmation.
func (a *App) DeleteClient(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	id, ok := a.needOne(args, "delclient <id>")
	if !ok {
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Delete client %s? This cannot be undone.", id), a.out); err != nil || !ok {
		return err
	}

	if err := st.Clients.Remove(ctx, id); err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// AssignClient assigns a client to an accountant account.
func (a *App) AssignClient(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: assign <clientID> <accountantID>")
		return nil
	}
	if id, _ := a.gate.Current(); !id.Role.CanAssignAccountants() {
		fmt.Fprintln(a.out, "Your role cannot assign accountants.")
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Assign client %s to accountant %s?", args[0], args[1]), a.out); err != nil || !ok {
		return err
	}

	updated, err := st.Clients.Do(ctx, args[0], api.ActionAssign, api.AssignBody{AccountantID: args[1]})
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Client %s assigned to %s\n", updated.ID, updated.AssignedAccountantID)
	return nil
}
