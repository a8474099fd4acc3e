package version

// Version is the semantic version stamped into binaries and server
// identification. Overridden at release time via -ldflags.
var Version = "0.3.0"
