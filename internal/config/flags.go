package config

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Options are command-line switches that sit on top of the environment.
type Options struct {
	MigrateOnly bool
	Help        bool
	Usage       string
}

// ApplyFlags parses args into cfg. Flags left unset keep the values Load
// read from the environment.
func ApplyFlags(cfg *Config, args []string) (Options, error) {
	var opts Options

	flagSet := pflag.NewFlagSet("ride-pool", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "HTTP listen port")
	flagSet.StringVar(&cfg.Storage.Driver, "storage", cfg.Storage.Driver, "persistence backend (postgres or memory)")
	flagSet.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	flagSet.BoolVar(&cfg.Database.Migrate, "migrate", cfg.Database.Migrate, "apply schema migrations on startup")
	flagSet.BoolVar(&cfg.Sweeper.Enabled, "sweeper", cfg.Sweeper.Enabled, "run the departed-ride sweeper")
	flagSet.BoolVar(&cfg.Redis.Enabled, "redis", cfg.Redis.Enabled, "use redis for caching and locks")
	flagSet.BoolVar(&opts.MigrateOnly, "migrate-only", false, "apply migrations and exit")
	flagSet.BoolVarP(&opts.Help, "help", "h", false, "show help")
	opts.Usage = flagSet.FlagUsages()

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			opts.Help = true
			return opts, nil
		}
		return opts, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.MigrateOnly {
		cfg.Database.Migrate = true
	}
	return opts, nil
}
