package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/store"
)

// parseQuery builds a store.Query from positional REPL arguments: an
// optional leading page number, then an optional free-text search. The
// store clamps out-of-range pages itself, so no validation here.
func (a *App) parseQuery(args []string) store.Query {
	q := store.Query{Page: 1, PageSize: a.config.PageSize}
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			q.Page = n
			args = args[1:]
		}
	}
	q.Search = strings.Join(args, " ")
	return q
}

// footer prints the page position below a listing.
func footer[T any](p store.Page[T]) string {
	if p.Total == 0 {
		return "(no results)"
	}
	return fmt.Sprintf("page %d/%d, %d total", p.Number, p.TotalPages, p.Total)
}

// reportErr prints an operation error in user terms. Auth failures are
// already announced by the adapter hook, so they pass silently here.
func (a *App) reportErr(err error) {
	if err == nil {
		return
	}
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return
	}
	fmt.Fprintln(a.out, "Error:", err)
}
