package config

import "flag"

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("daily", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "Directory for the task list and logs")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend (file|sqlite|memory)")
	fs.StringVar(&cfg.SeedURL, "seed-url", cfg.SeedURL, "Base URL of the seed task source")
	fs.IntVar(&cfg.SeedCount, "seed-count", cfg.SeedCount, "Number of seed tasks to load on first start")
	fs.IntVar(&cfg.SeedTimeoutSeconds, "seed-timeout", cfg.SeedTimeoutSeconds, "Seed request timeout (seconds)")
	fs.IntVar(&cfg.RedirectDelayMS, "redirect-delay", cfg.RedirectDelayMS, "Delay before returning to the list after an edit (ms)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log lines")

	return fs.Parse(args)
}
