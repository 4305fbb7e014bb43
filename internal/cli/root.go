package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompt renders the shell prompt, including who is signed in.
func (a *App) prompt() string {
	state := a.manager.State()
	if state.IsAuthenticated && state.User != nil {
		return fmt.Sprintf("inboxpilot (%s)> ", state.User.Email)
	}
	return "inboxpilot> "
}

func (a *App) root(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx)
		case "signup":
			a.signup(ctx)
		case "onboarding":
			a.onboarding(ctx, args)
		case "status":
			a.status(ctx)
		case "logout":
			a.logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		default:
			fmt.Fprintf(a.out, "Unknown command %q (type 'help')\n", cmd)
		}
	}
}

func (a *App) help() {
	if a.manager.State().IsAuthenticated {
		fmt.Fprintln(a.out, "Available commands: status, logout, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: login, signup, onboarding [clear], status, exit")
}
