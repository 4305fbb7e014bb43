package cli

import (
	"context"
	"fmt"
)

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	res := a.manager.Login(ctx, email, string(password))
	if !res.Success {
		fmt.Fprintln(a.out, res.Error)
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", res.User.Email)
	a.printRedirect()
}

func (a *App) signup(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	res := a.manager.Signup(ctx, email, string(password), name)
	if !res.Success {
		fmt.Fprintln(a.out, res.Error)
		return
	}

	fmt.Fprintf(a.out, "Account created for %s\n", res.User.Email)
	a.printRedirect()
}

func (a *App) logout(ctx context.Context) {
	if err := a.manager.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	a.printRedirect()
}
