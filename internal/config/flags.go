package config

import (
	"flag"
	"os"

	"github.com/inboxpilot/dashboard-client/internal/flagx"
	"github.com/inboxpilot/dashboard-client/internal/store"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the identity backend
//	-b string   session store backend: sqlite, bolt, or memory
//	-s string   session store file path
//
// os.Args is filtered to only the flags handled here (flagx.FilterArgs) so
// flags owned by other components don't interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayBaseURL, "a", cfg.GatewayBaseURL, "base URL of the identity backend")
	backend := fs.String("b", string(cfg.StoreBackend), "session store backend (sqlite|bolt|memory)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "session store file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StoreBackend = store.Backend(*backend)
}
