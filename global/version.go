package global

// Set via -ldflags at build time.
var (
	GitCommit = "unknown"
	BuildTime = "unknown"
)
