// Package kestrel holds build metadata for the kestrel CLI.
package kestrel

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"
