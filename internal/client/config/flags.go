package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/restate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-e string   Appwrite endpoint
//	-p string   Appwrite project id
//	-d string   Appwrite database id
//	-l int      login timeout in seconds
//
// Unknown arguments are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-p", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Endpoint, "e", cfg.Endpoint, "appwrite endpoint")
	fs.StringVar(&cfg.ProjectID, "p", cfg.ProjectID, "appwrite project id")
	fs.StringVar(&cfg.DatabaseID, "d", cfg.DatabaseID, "appwrite database id")
	loginTimeout := fs.Int("l", int(cfg.LoginTimeout.Seconds()), "login timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LoginTimeout = time.Duration(*loginTimeout) * time.Second
}
