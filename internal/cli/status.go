package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inboxpilot/dashboard-client/internal/common"
	"github.com/inboxpilot/dashboard-client/internal/session"
)

// status prints the current auth state, including the navigation target the
// dashboard would pick and the stored token's expiry when it is a JWT.
func (a *App) status(ctx context.Context) {
	state := a.manager.State()

	if !state.IsAuthenticated {
		fmt.Fprintln(a.out, "Not signed in")
		if state.OnboardingData != nil {
			fmt.Fprintf(a.out, "Onboarding draft in progress for %q\n", state.OnboardingData.BusinessName)
		}
		a.printRedirect()
		return
	}

	u := state.User
	fmt.Fprintf(a.out, "Signed in as %s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	if u.OnboardingCompleted {
		fmt.Fprintln(a.out, "Onboarding: completed")
	} else {
		fmt.Fprintf(a.out, "Onboarding: step %d\n", u.OnboardingStep)
	}

	token, err := a.store.Get(ctx, session.KeyAccessToken)
	switch {
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Access token: none")
	case err != nil:
		fmt.Fprintf(a.out, "Access token: unreadable (%v)\n", err)
	default:
		if exp, ok := session.TokenExpiry(token); ok {
			if exp.Before(time.Now()) {
				fmt.Fprintf(a.out, "Access token: expired %s\n", exp.Format(time.RFC3339))
			} else {
				fmt.Fprintf(a.out, "Access token: valid until %s\n", exp.Format(time.RFC3339))
			}
		} else {
			fmt.Fprintln(a.out, "Access token: present")
		}
	}

	a.printRedirect()
}
