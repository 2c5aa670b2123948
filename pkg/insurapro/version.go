// Package insurapro holds build metadata for the insurapro CLI.
package insurapro

// Version is the release version reported by `insurapro version`.
const Version = "0.1.0"
