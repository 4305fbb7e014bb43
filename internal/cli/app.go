// Package cli is the interactive shell hosting the session core: it wires
// the store, gateway, and state machine together and drives them from
// terminal commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/inboxpilot/dashboard-client/internal/audit"
	"github.com/inboxpilot/dashboard-client/internal/config"
	"github.com/inboxpilot/dashboard-client/internal/gateway"
	"github.com/inboxpilot/dashboard-client/internal/logging"
	"github.com/inboxpilot/dashboard-client/internal/session"
	"github.com/inboxpilot/dashboard-client/internal/store"
)

type App struct {
	cfg     *config.Config
	manager *session.Manager
	store   store.Store
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the configured session store and builds the state machine
// around it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	gw := gateway.NewHTTP(cfg.GatewayBaseURL, cfg.RequestTimeout, log.With("component", "gateway"))

	manager := session.NewManager(st, gw,
		session.WithLogger(log.With("component", "session")),
		session.WithAuditSink(audit.NewLogSink(log.With("component", "audit"))),
	)

	return &App{
		cfg:     cfg,
		manager: manager,
		store:   st,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run seeds the auth state, reconciles it, and enters the command loop.
//
// The seed happens before anything is rendered, so the first prompt already
// reflects the restored session; the reconcile covers legacy migration and
// corrupt-record recovery.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.store.Close() }()

	state := a.manager.Bootstrap(ctx)
	if state.IsLoading {
		state = a.manager.CheckAuthStatus(ctx)
	}

	if state.IsAuthenticated {
		fmt.Fprintf(a.out, "Welcome back, %s\n", state.User.Name)
	} else {
		fmt.Fprintln(a.out, "Welcome to the InboxPilot client (type 'help' for commands)")
	}
	a.printRedirect()

	return a.root(ctx)
}

// printRedirect shows where the hosting dashboard would navigate next.
func (a *App) printRedirect() {
	fmt.Fprintf(a.out, "-> %s\n", a.manager.RedirectPath())
}
