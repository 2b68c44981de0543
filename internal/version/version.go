// Package version reports build information for the passforge binary.
//
// Release builds set the variables below with -ldflags, for example:
//
//	go build -ldflags "-X github.com/conneroisu/passforge/internal/version.Version=v1.2.0"
//
// Other builds fall back to the module and VCS data embedded by the Go
// toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildTime is the time when the binary was built (RFC3339 format)
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	Release   bool      `json:"is_release"`
	Dirty     bool      `json:"is_dirty"`
}

// Get collects the build information.
func Get() Info {
	settings := vcsSettings()

	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: parseBuildTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Dirty:     settings["vcs.modified"] == "true",
	}

	if info.GitCommit == "" || info.GitCommit == "unknown" {
		if rev, ok := settings["vcs.revision"]; ok {
			info.GitCommit = rev
		}
	}

	if info.Version == "" || info.Version == "dev" {
		info.Version = "dev"
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		} else if len(info.GitCommit) >= 7 && info.GitCommit != "unknown" {
			info.Version = "dev-" + info.GitCommit[:7]
		}
	}

	if info.BuildTime.IsZero() {
		info.BuildTime = parseBuildTime(settings["vcs.time"])
	}

	info.Release = info.Version != "dev" && !strings.HasPrefix(info.Version, "dev-")

	return info
}

// ShortCommit returns the first seven characters of the commit hash, or ""
// when it is unknown.
func (i Info) ShortCommit() string {
	if i.GitCommit == "unknown" || len(i.GitCommit) < 7 {
		return ""
	}
	return i.GitCommit[:7]
}

// Short returns a one-line version such as "v1.2.0 (abc1234)".
func (i Info) Short() string {
	commit := i.ShortCommit()
	if commit == "" || strings.HasSuffix(i.Version, commit) {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, commit)
}

// String renders the full build information, one field per line.
func (i Info) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "passforge %s", i.Short())
	if i.Dirty {
		b.WriteString(" (dirty)")
	}
	b.WriteString("\n")

	if !i.BuildTime.IsZero() {
		fmt.Fprintf(&b, "Built: %s\n", i.BuildTime.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(&b, "Go: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform: %s\n", i.Platform)

	return b.String()
}

func vcsSettings() map[string]string {
	settings := make(map[string]string)

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	return settings
}

// parseBuildTime accepts RFC3339 and a few common variants and returns the
// zero time for anything else.
func parseBuildTime(s string) time.Time {
	if s == "" || s == "unknown" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
