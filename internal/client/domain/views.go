package domain

import (
	"errors"

	"github.com/scanfact/scanfact/internal/client/models"
	"github.com/scanfact/scanfact/internal/client/store"
)

var errNoScope = errors.New("role has no access to this collection")

// Folder partitions. All three are pure filters of the base collection.
//
// Policy: favorites exclude archived folders. The favorite flag itself
// survives archiving, so unarchiving restores the folder to the favorites
// view, but an archived folder is only ever visible under Archived.

func FavoriteFolders(s *store.Store[models.Folder]) []models.Folder {
	return s.Where(func(f models.Folder) bool { return f.Favorite && !f.Archived })
}

func ArchivedFolders(s *store.Store[models.Folder]) []models.Folder {
	return s.Where(func(f models.Folder) bool { return f.Archived })
}

func ActiveFolders(s *store.Store[models.Folder]) []models.Folder {
	return s.Where(func(f models.Folder) bool { return !f.Archived })
}

// Text-search matchers, one per entity, for store.View. All matches are
// case-insensitive substring checks; phone numbers compare digits only.

func MatchClient(c models.Client, q string) bool {
	return store.ContainsFold(c.Name, q) ||
		store.ContainsFold(c.Email, q) ||
		(store.Digits(q) != "" && store.ContainsFold(store.Digits(c.Phone), store.Digits(q)))
}

func MatchFolder(f models.Folder, q string) bool {
	return store.ContainsFold(f.FolderName, q) || store.ContainsFold(f.Client.Name, q)
}

func MatchInvoice(i models.Invoice, q string) bool {
	return store.ContainsFold(i.InvoiceName, q)
}

func MatchUser(u models.User, q string) bool {
	return store.ContainsFold(u.Email, q) || store.ContainsFold(u.DisplayName, q)
}
