// Package version holds the release version, overridable with -ldflags "-X".
package version

var Version = "0.1.0"
