package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	JWT(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Latest(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Agent(ctx context.Context, args []string) error
}

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit" or "quit". Command errors are printed and the loop goes on. The
// prompt, built from statusFn, is only printed when prompt is true.
//
//	Not logged in:  help, login, list, latest, show, agent, exit
//	Logged in:      help, whoami, jwt, logout, list, latest, show, agent, exit
func runREPL(ctx context.Context, a execIface, statusFn func(ctx context.Context) string, scanner *bufio.Scanner, prompt bool) {
	for {
		if prompt {
			printlnFn(fmt.Sprintf("restate %s> ", statusFn(ctx)))
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, jwt, logout, (l)ist, latest, show <id>, agent <id>, exit")
			} else {
				printlnFn("Available commands: login, (l)ist, latest, show <id>, agent <id>, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "jwt":
			err = a.JWT(ctx)

		case "l", "list":
			err = a.List(ctx, args)

		case "latest":
			err = a.Latest(ctx)

		case "show":
			err = a.Show(ctx, args)

		case "agent":
			err = a.Agent(ctx, args)

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
