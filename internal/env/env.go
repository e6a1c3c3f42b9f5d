package env

const AppName = "symtab"

// Set at build time with -ldflags "-X github.com/ostafen/symtab/internal/env.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
