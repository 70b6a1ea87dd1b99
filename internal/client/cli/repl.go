package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/forms"
)

// errUsage makes the REPL print the command's usage line.
var errUsage = errors.New("usage")

type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	// auth marks commands that need a signed-in user.
	auth bool
	run  func(a *App, ctx context.Context, args []string) error
}

// commands lists everything the REPL understands; help prints them in this
// order. It is filled in init because help refers back to it.
var commands []command

func init() {
	commands = []command{
		{name: "help", usage: "help", help: "show available commands", run: (*App).help},
		{name: "login", usage: "login", help: "sign in", run: (*App).login},
		{name: "register", usage: "register", help: "create an account", run: (*App).register},
		{name: "logout", usage: "logout", help: "sign out", auth: true, run: (*App).logout},
		{name: "whoami", usage: "whoami", help: "show the signed-in user", run: (*App).whoami},

		{name: "list", aliases: []string{"l", "ls"}, usage: "list [all|my|favorites]", help: "show the recipe listing", run: (*App).list},
		{name: "search", usage: "search [-t tag,tag] [-c category] [text]", help: "search recipes; no arguments clears the search", run: (*App).search},
		{name: "page", usage: "page <n>", help: "go to a listing page", run: (*App).page},
		{name: "next", aliases: []string{"n"}, usage: "next", help: "next listing page", run: (*App).next},
		{name: "prev", aliases: []string{"p"}, usage: "prev", help: "previous listing page", run: (*App).prev},
		{name: "more", usage: "more", help: "append the next page to the listing", run: (*App).more},
		{name: "fav", usage: "fav <id>", help: "toggle a favorite", auth: true, run: (*App).fav},
		{name: "tags", usage: "tags [text]", help: "list popular tags or those matching text", run: (*App).tags},
		{name: "categories", usage: "categories", help: "list categories", run: (*App).categories},

		{name: "show", usage: "show <id>", help: "open a recipe", run: (*App).show},
		{name: "back", aliases: []string{"b"}, usage: "back", help: "return to the listing", run: (*App).back},
		{name: "open", usage: "open <path>", help: "open an app path, e.g. /recipes/5 or /shared/<token>", run: (*App).open},
		{name: "shared", usage: "shared <token>", help: "open a recipe shared by link", run: (*App).shared},
		{name: "scale", usage: "scale <n|+|-|reset>", help: "change the number of servings", run: (*App).scale},
		{name: "check", usage: "check <ingredient|step> <n>", help: "tick off an ingredient or step", run: (*App).check},

		{name: "new", usage: "new", help: "create a recipe", auth: true, run: (*App).newRecipe},
		{name: "edit", usage: "edit", help: "edit the open recipe", auth: true, run: (*App).editRecipe},
		{name: "delete", usage: "delete", help: "delete the open recipe", auth: true, run: (*App).deleteRecipe},
		{name: "share", usage: "share", help: "enable the share link of the open recipe", auth: true, run: (*App).share},
		{name: "unshare", usage: "unshare", help: "disable the share link of the open recipe", auth: true, run: (*App).unshare},

		{name: "profile", usage: "profile", help: "edit your profile", auth: true, run: (*App).profile},
		{name: "deleteaccount", usage: "deleteaccount", help: "delete your account", auth: true, run: (*App).deleteAccount},
		{name: "export", usage: "export [json|yaml]", help: "export your recipes", auth: true, run: (*App).export},
		{name: "version", usage: "version", help: "show build information", run: (*App).version},
		{name: "exit", aliases: []string{"quit", "q"}, usage: "exit", help: "leave the program"},
	}
}

func lookup(name string) (*command, bool) {
	for i := range commands {
		c := &commands[i]
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return nil, false
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Name)
}

// runREPL starts a simple read–eval–print loop for the recipes CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches through the command table. Unknown commands are reported back
// to the user. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a *App, reader *bufio.Reader) {
	for {
		a.printf("recipes %s> ", a.status())
		line, err := readLine(reader)
		if err != nil {
			a.println()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		name, args := parts[0], parts[1:]
		cmd, ok := lookup(name)
		if !ok {
			a.println("Unknown command:", name)
			continue
		}
		if cmd.name == "exit" {
			a.println("Bye!")
			return
		}
		if cmd.auth && !a.isLoggedIn() {
			a.println("Please log in first.")
			continue
		}

		err = cmd.run(a, ctx, args)
		a.checkRedirect()
		if err != nil {
			a.report(cmd, err)
		}
	}
}

// report prints a handler error. Field errors of a rejected form are listed
// one per line.
func (a *App) report(cmd *command, err error) {
	if errors.Is(err, errUsage) {
		a.println("Usage:", cmd.usage)
		return
	}

	var ferr *fieldError
	if errors.As(err, &ferr) {
		a.printFieldErrors(ferr.errs)
		return
	}

	if apiErr, ok := client.AsError(err); ok {
		if apiErr.Kind == client.KindValidation {
			a.println(apiErr.Summary())
			for _, field := range apiErr.FieldOrder() {
				for _, msg := range apiErr.Fields[field] {
					a.printf("  %s: %s\n", field, msg)
				}
			}
			return
		}
		a.println("Error:", apiErr.Message)
		return
	}
	a.println("Error:", err.Error())
}

// fieldError carries the errors of a form rejected before reaching the
// server.
type fieldError struct {
	errs forms.FieldErrors
}

func (e *fieldError) Error() string {
	return "form has errors"
}

func (a *App) printFieldErrors(errs forms.FieldErrors) {
	if msg := errs.First(forms.GeneralField); msg != "" {
		a.println(msg)
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		if k != forms.GeneralField {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range errs[k] {
			a.printf("  %s: %s\n", k, msg)
		}
	}
}

func (a *App) help(_ context.Context, _ []string) error {
	a.println("Available commands:")
	for _, c := range commands {
		if c.auth && !a.isLoggedIn() {
			continue
		}
		a.printf("  %-42s %s\n", c.usage, c.help)
	}
	return nil
}
