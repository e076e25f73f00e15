package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# daily configuration file
# Values can be overridden by DAILY_* environment variables or CLI flags

# Where the task list and logs live (supports ~ expansion and %VAR% on Windows)
state_dir = "~/.daily"

# Storage backend for the task list: file, sqlite or memory
storage = "file"

# Seed source, used only when no task list has been stored yet
seed_url = "https://jsonplaceholder.typicode.com"
seed_count = 5
seed_timeout_seconds = 10

# Delay before the edit screen returns to the list after saving (milliseconds)
redirect_delay_ms = 1000

# Logging (written to <state_dir>/logs/daily.log)
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = true
`
}
