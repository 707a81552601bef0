package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Goto(ctx context.Context, route string) error
	Where(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Drivers(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Pricing(ctx context.Context, args []string) error
	Promotions(ctx context.Context, args []string) error
	Tickets(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Report(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: login, where, exit"
	helpSignedIn  = "Available commands: whoami, refresh, goto <route>, where, dashboard, users [role], drivers [status], " +
		"orders [status], order <id> [status <S>|assign <driver>], pricing [set <field> <value>], promotions, " +
		"tickets [status], reply <id>, report <revenue|orders> <period>, upload <file> [folder], logout, exit"
)

// runREPL reads commands from in and dispatches them to a until EOF,
// "exit" or "quit". in is the same reader the login and reply prompts use,
// so piped input feeds commands and prompts in order. Errors from handlers
// are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	say := func(args ...any) { fmt.Fprintln(out, args...) }

	for {
		say(fmt.Sprintf("fleetdesk %s > ", statusFn()))
		if ctx.Err() != nil {
			return
		}
		line, err := in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				say(helpSignedIn)
			} else {
				say(helpSignedOut)
			}
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "goto":
			if len(args) != 1 {
				say("usage: goto <route>")
				continue
			}
			_ = a.Goto(ctx, args[0])
		case "where":
			_ = a.Where(ctx)
		case "users":
			_ = a.Users(ctx, args)
		case "drivers":
			_ = a.Drivers(ctx, args)
		case "orders":
			_ = a.Orders(ctx, args)
		case "order":
			_ = a.Order(ctx, args)
		case "pricing":
			_ = a.Pricing(ctx, args)
		case "promotions", "promos":
			_ = a.Promotions(ctx, args)
		case "tickets":
			_ = a.Tickets(ctx, args)
		case "reply":
			_ = a.Reply(ctx, args)
		case "dashboard":
			_ = a.Dashboard(ctx)
		case "report":
			_ = a.Report(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		case "exit", "quit":
			say("Bye!")
			return
		default:
			say("Unknown command:", cmd)
		}
	}
}
