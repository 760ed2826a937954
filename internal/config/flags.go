package config

import (
	"flag"
	"os"

	"github.com/youiz/dri-portal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-g string   table-store gateway base URL
//	-k string   gateway service key
//	-d string   PostgreSQL DSN (self-hosted mode)
//	-l string   path to the local SQLite file
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-g", "-k", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayURL, "g", cfg.GatewayURL, "table-store gateway base URL")
	fs.StringVar(&cfg.GatewayKey, "k", cfg.GatewayKey, "gateway service key")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN (self-hosted mode)")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "path to the local SQLite file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
