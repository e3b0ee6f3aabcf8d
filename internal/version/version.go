package version

import "runtime"

// Populated at build time via -ldflags.
var (
	AppName   = "markov-bot"
	Version   = "dev"
	BuildDate = ""
	GoVersion = runtime.Version()
)
