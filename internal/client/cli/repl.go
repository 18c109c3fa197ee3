package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Account(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	List(ctx context.Context) error
	Page(ctx context.Context, args []string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Tweet(ctx context.Context) error

	Search(ctx context.Context, args []string) error
	Results(ctx context.Context) error
	Review(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error

	Set(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Untag(ctx context.Context, args []string) error
	Draft(ctx context.Context) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, search <keyword>, results, buy <n>, whoami, exit"
	userHelp  = "Available commands: list, page <n>, next, prev, show <n>, edit <n>, delete [n], " +
		"search <keyword>, results, review <n>, buy <n>, " +
		"set <field> <value>, tag <text>, untag <n>, draft, save, cancel, " +
		"stats [year month], tweet, account, deleteaccount, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the book review CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Handlers report their own errors. The loop only reacts to
// services.ErrLoginRequired, by prompting for credentials.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("br (%s) > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.Whoami(ctx)
		case "account":
			cmdErr = a.Account(ctx)
		case "deleteaccount":
			cmdErr = a.DeleteAccount(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)
		case "page":
			cmdErr = a.Page(ctx, args)
		case "next":
			cmdErr = a.Next(ctx)
		case "prev":
			cmdErr = a.Prev(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "stats":
			cmdErr = a.Stats(ctx, args)
		case "tweet":
			cmdErr = a.Tweet(ctx)

		case "search":
			cmdErr = a.Search(ctx, args)
		case "results":
			cmdErr = a.Results(ctx)
		case "review":
			cmdErr = a.Review(ctx, args)
		case "buy":
			cmdErr = a.Buy(ctx, args)

		case "set":
			cmdErr = a.Set(ctx, args)
		case "tag":
			cmdErr = a.Tag(ctx, args)
		case "untag":
			cmdErr = a.Untag(ctx, args)
		case "draft":
			cmdErr = a.Draft(ctx)
		case "save":
			cmdErr = a.Save(ctx)
		case "cancel":
			cmdErr = a.Cancel(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(cmdErr, services.ErrLoginRequired) {
			_ = a.Login(ctx)
		}

		if err != nil {
			return
		}
	}
}
