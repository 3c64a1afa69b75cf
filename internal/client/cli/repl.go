package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Reload(ctx context.Context) error
	Filter(args []string) error
	Unfilter() error
	Sort(args []string) error
	Page(args []string) error
	Next() error
	Prev() error
	Keys() error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, admin, list, filter, unfilter, sort, page, next, prev, reload, keys, exit"
	helpUser  = "Available commands: list, filter, unfilter, sort, page, next, prev, reload, keys, verify, logout, exit"
	helpAdmin = helpUser + ", create, update, delete"
)

// runREPL starts a simple read-eval-print loop for the cinema CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  help                    show available commands
//	  list <entity> [id]      load a list (showtimes by movie, auditoriums by cinema)
//	  filter <key> [value]    set or clear one filter
//	  unfilter                clear all filters
//	  sort [key]              change the sort order
//	  page <n> | next | prev  move between pages
//	  reload                  fetch the current list again
//	  keys                    show filter and sort keys of the current list
//	  exit | quit             leave the program
//
//	Signed out:
//	  register | login | admin
//
//	Signed in:
//	  verify | logout
//	  create <entity> | update <entity> <id> | delete <entity> <id>   (admin)
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cinema %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpUser)
			default:
				printlnFn(helpGuest)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "admin":
			err = a.AdminLogin(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "verify":
			err = a.Verify(ctx)

		case "l", "list":
			err = a.List(ctx, args)

		case "reload":
			err = a.Reload(ctx)

		case "filter":
			err = a.Filter(args)

		case "unfilter":
			err = a.Unfilter()

		case "sort":
			err = a.Sort(args)

		case "page":
			err = a.Page(args)

		case "n", "next":
			err = a.Next()

		case "p", "prev":
			err = a.Prev()

		case "keys":
			err = a.Keys()

		case "create":
			err = a.Create(ctx, args)

		case "update":
			err = a.Update(ctx, args)

		case "delete":
			err = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
