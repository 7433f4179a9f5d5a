// Package version holds the build version, overridden at link time via
// -ldflags "-X .../internal/version.Version=...".
package version

// Version is the running build's version string.
var Version = "dev"
