package internal

// Version contains the version and build metadata of contactbook.
// Commit is injected at build time via -ldflags.
var Version = VersionInfo{Version: "0.2.0"}

type VersionInfo struct {
	Version string
	Commit  string
}
