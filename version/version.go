// Package version holds the program version, set at build time with
// -ldflags "-X github.com/tldr-pro/po-compiler/version.Version=...".
package version

// Version is the version of po-compiler.
var Version = "dev"
