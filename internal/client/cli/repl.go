package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Clients(ctx context.Context, args []string) error
	AddClient(ctx context.Context) error
	EditClient(ctx context.Context, args []string) error
	DeleteClient(ctx context.Context, args []string) error
	AssignClient(ctx context.Context, args []string) error

	Folders(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Archived(ctx context.Context) error
	AddFolder(ctx context.Context) error
	EditFolder(ctx context.Context, args []string) error
	DeleteFolder(ctx context.Context, args []string) error
	SetFavorite(ctx context.Context, args []string, value bool) error
	SetArchived(ctx context.Context, args []string, value bool) error

	Invoices(ctx context.Context, args []string) error
	AddInvoice(ctx context.Context, args []string) error
	DeleteInvoice(ctx context.Context, args []string) error
	ValidateInvoice(ctx context.Context, args []string) error
	CancelInvoice(ctx context.Context, args []string) error
	ExtractInvoice(ctx context.Context, args []string) error

	Users(ctx context.Context, args []string) error
	AddUser(ctx context.Context) error
	DeleteUser(ctx context.Context, args []string) error
	SetActivation(ctx context.Context, args []string, value bool) error
}

// runREPL reads a line, parses the first token as the command and
// dispatches to a. The loop exits on scanner EOF or "exit"/"quit".
// Command handlers print their own errors; the loop only reports
// unknown commands.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sf (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Session:  whoami, logout, exit")
				printlnFn("Clients:  clients [page] [search], addclient, editclient <id>, delclient <id>, assign <clientID> <accountantID>")
				printlnFn("Folders:  folders [page] [search], favorites, archived, addfolder, editfolder <id>, delfolder <id>,")
				printlnFn("          fav <id>, unfav <id>, archive <id>, unarchive <id>")
				printlnFn("Invoices: invoices <folderID> [page] [search], addinvoice <folderID>, delinvoice <folderID> <id>,")
				printlnFn("          validate <folderID> <id>, cancel <folderID> <id>, extract <folderID> <id>")
				printlnFn("Users:    users [page] [search], adduser, deluser <id>, activate <id>, deactivate <id>")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "clients":
			_ = a.Clients(ctx, args)

		case "addclient":
			_ = a.AddClient(ctx)

		case "editclient":
			_ = a.EditClient(ctx, args)

		case "delclient":
			_ = a.DeleteClient(ctx, args)

		case "assign":
			_ = a.AssignClient(ctx, args)

		case "folders":
			_ = a.Folders(ctx, args)

		case "favorites":
			_ = a.Favorites(ctx)

		case "archived":
			_ = a.Archived(ctx)

		case "addfolder":
			_ = a.AddFolder(ctx)

		case "editfolder":
			_ = a.EditFolder(ctx, args)

		case "delfolder":
			_ = a.DeleteFolder(ctx, args)

		case "fav":
			_ = a.SetFavorite(ctx, args, true)

		case "unfav":
			_ = a.SetFavorite(ctx, args, false)

		case "archive":
			_ = a.SetArchived(ctx, args, true)

		case "unarchive":
			_ = a.SetArchived(ctx, args, false)

		case "invoices":
			_ = a.Invoices(ctx, args)

		case "addinvoice":
			_ = a.AddInvoice(ctx, args)

		case "delinvoice":
			_ = a.DeleteInvoice(ctx, args)

		case "validate":
			_ = a.ValidateInvoice(ctx, args)

		case "cancel":
			_ = a.CancelInvoice(ctx, args)

		case "extract":
			_ = a.ExtractInvoice(ctx, args)

		case "users":
			_ = a.Users(ctx, args)

		case "adduser":
			_ = a.AddUser(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx, args)

		case "activate":
			_ = a.SetActivation(ctx, args, true)

		case "deactivate":
			_ = a.SetActivation(ctx, args, false)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
