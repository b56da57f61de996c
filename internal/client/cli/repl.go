package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isEditor() bool

	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Profile(ctx context.Context) error

	Buildings(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Geocode(ctx context.Context, args []string) error
	Layout(ctx context.Context, args []string) error
	Gallery(ctx context.Context, args []string) error
	FAQ(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, verify, login, forgot, exit"
	helpViewer = "Available commands: buildings, search <term>, show <id>, geocode <address>, layout <id>, gallery <id>, faq [term], profile, logout, exit"
	helpEditor = "Available commands: buildings, search <term>, show <id>, add, edit <id>, geocode <address>, layout <id>, gallery <id>, faq [term], profile, logout, exit"
)

// guestCommands work without a session.
var guestCommands = map[string]bool{
	"register": true, "verify": true, "login": true, "forgot": true,
}

// editorCommands are hidden from everyone else.
var editorCommands = map[string]bool{"add": true, "edit": true}

// runREPL reads commands line by line and dispatches them to a. The first
// word is the command, the rest are its arguments. The loop ends on EOF or
// on "exit"/"quit".
//
// Errors returned by commands are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("firemap %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch {
		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return
		case cmd == "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpGuest)
			case a.isEditor():
				printlnFn(helpEditor)
			default:
				printlnFn(helpViewer)
			}
			continue
		case !guestCommands[cmd] && !a.isLoggedIn():
			if isCommand(cmd) {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		case editorCommands[cmd] && !a.isEditor():
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func isCommand(cmd string) bool {
	switch cmd {
	case "logout", "profile", "buildings", "ls", "search", "show", "add", "edit",
		"geocode", "layout", "gallery", "faq":
		return true
	}
	return false
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "verify":
		return a.Verify(ctx)
	case "login":
		return a.Login(ctx)
	case "forgot":
		return a.Forgot(ctx)
	case "logout":
		return a.Logout(ctx)
	case "profile":
		return a.Profile(ctx)
	case "buildings", "ls":
		return a.Buildings(ctx, args)
	case "search":
		return a.Search(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "geocode":
		return a.Geocode(ctx, args)
	case "layout":
		return a.Layout(ctx, args)
	case "gallery":
		return a.Gallery(ctx, args)
	case "faq":
		return a.FAQ(ctx, args)
	}
	printlnFn("Unknown command:", cmd)
	return nil
}
