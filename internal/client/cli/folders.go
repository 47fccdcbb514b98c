package cli

import (
	"context"
	"fmt"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/domain"
	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
)

func (a *App) printFolder(f models.Folder) {
	marks := ""
	if f.Favorite {
		marks += " *"
	}
	if f.Archived {
		marks += " [archived]"
	}
	fmt.Fprintf(a.out, "%s  %-20s client=%s  invoices=%d%s\n",
		f.ID, f.FolderName, f.Client.Name, f.InvoiceCount, marks)
}

// Folders lists the active (non-archived) folders.
func (a *App) Folders(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}

	if err := st.Folders.List(ctx); err != nil {
		a.reportErr(err)
		return err
	}

	q := a.parseQuery(args)
	active := domain.ActiveFolders(st.Folders)
	if q.Search != "" {
		filtered := active[:0:0]
		for _, f := range active {
			if domain.MatchFolder(f, q.Search) {
				filtered = append(filtered, f)
			}
		}
		active = filtered
	}
	page := store.Paginate(active, q.Page, q.PageSize)
	for _, f := range page.Items {
		a.printFolder(f)
	}
	fmt.Fprintln(a.out, footer(page))
	return nil
}

// Favorites lists favorite folders. Archived folders are excluded even
// when their favorite flag is still set.
func (a *App) Favorites(ctx context.Context) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if err := st.Folders.List(ctx); err != nil {
		a.reportErr(err)
		return err
	}
	for _, f := range domain.FavoriteFolders(st.Folders) {
		a.printFolder(f)
	}
	return nil
}

// Archived lists archived folders.
func (a *App) Archived(ctx context.Context) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if err := st.Folders.List(ctx); err != nil {
		a.reportErr(err)
		return err
	}
	for _, f := range domain.ArchivedFolders(st.Folders) {
		a.printFolder(f)
	}
	return nil
}

// AddFolder creates a folder under one of the caller's clients.
func (a *App) AddFolder(ctx context.Context) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	if id, _ := a.gate.Current(); !id.Role.CanManageFolders() {
		fmt.Fprintln(a.out, "Your role cannot manage folders.")
		return nil
	}

	var f models.Folder
	var err error
	if f.FolderName, err = GetSimpleText(a.reader, "Folder name", a.out); err != nil {
		return err
	}
	if f.Description, err = GetSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if f.Client.ID, err = GetSimpleText(a.reader, "Client id", a.out); err != nil {
		return err
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Create folder %q?", f.FolderName), a.out); err != nil || !ok {
		return err
	}

	created, err := st.Folders.Create(ctx, f)
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Created folder %s (%s)\n", created.FolderName, created.ID)
	return nil
}

// EditFolder renames a folder or changes its description. Empty input
// keeps the current value.
func (a *App) EditFolder(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	id, ok := a.needOne(args, "editfolder <id>")
	if !ok {
		return nil
	}

	current, found := st.Folders.Get(id)
	if !found {
		fmt.Fprintln(a.out, "Unknown folder id; run 'folders' first.")
		return nil
	}

	next := current
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.FolderName), a.out); err != nil {
		return err
	} else if v != "" {
		next.FolderName = v
	}
	if v, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s]", current.Description), a.out); err != nil {
		return err
	} else if v != "" {
		next.Description = v
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Save changes to %q?", current.FolderName), a.out); err != nil || !ok {
		return err
	}

	updated, err := st.Folders.Update(ctx, id, next)
	if err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintf(a.out, "Updated folder %s\n", updated.ID)
	return nil
}

// DeleteFolder removes a folder and its invoices after confirmation.
func (a *App) DeleteFolder(ctx context.Context, args []string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	id, ok := a.needOne(args, "delfolder <id>")
	if !ok {
		return nil
	}

	if ok, err := Confirm(a.reader, fmt.Sprintf("Delete folder %s and all its invoices?", id), a.out); err != nil || !ok {
		return err
	}

	if err := st.Folders.Remove(ctx, id); err != nil {
		a.reportErr(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) setFolderFlag(ctx context.Context, args []string, action store.Action, value bool, usage string) error {
	st, ok := a.requireStores()
	if !ok {
		return nil
	}
	id, ok := a.needOne(args, usage)
	if !ok {
		return nil
	}

	updated, err := st.Folders.Do(ctx, id, action, api.FlagBody{Value: value})
	if err != nil {
		a.reportErr(err)
		return err
	}
	a.printFolder(updated)
	return nil
}

// SetFavorite flips the favorite flag to value.
func (a *App) SetFavorite(ctx context.Context, args []string, value bool) error {
	usage := "fav <id>"
	if !value {
		usage = "unfav <id>"
	}
	return a.setFolderFlag(ctx, args, api.ActionFavorite, value, usage)
}

// SetArchived flips the archived flag to value. The favorite flag keeps
// its prior state across archive and unarchive.
func (a *App) SetArchived(ctx context.Context, args []string, value bool) error {
	usage := "archive <id>"
	if !value {
		usage = "unarchive <id>"
	}
	return a.setFolderFlag(ctx, args, api.ActionArchive, value, usage)
}
