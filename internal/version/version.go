// Package version holds build information for radgraph.
package version

// Overridable at build time:
// go build -ldflags "-X radgraph/internal/version.Version=1.0.0 -X radgraph/internal/version.Commit=abc123"
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, with the short commit when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns multi-line version information.
func Full() string {
	return "radgraph version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
