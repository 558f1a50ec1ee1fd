// Package version holds build metadata injected via ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"go.uber.org/zap/zapcore"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the resolved build metadata of the running binary.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

// Get resolves build metadata. Values not set via ldflags are taken from
// the VCS stamp the Go toolchain embeds, when present.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.fill(bi)
	}
	return info
}

func (i Info) fill(bi *debug.BuildInfo) Info {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "unknown" {
				i.Commit = shortRev(s.Value)
			}
		case "vcs.time":
			if i.Date == "unknown" {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
}

func shortRev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String renders "v1.2.3 (abc123, 2025-01-01T00:00:00Z)".
func (i Info) String() string {
	commit := i.Commit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", i.Version, commit, i.Date)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (i Info) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("version", i.Version)
	enc.AddString("commit", i.Commit)
	enc.AddString("date", i.Date)
	enc.AddString("go", i.GoVersion)
	if i.Modified {
		enc.AddBool("modified", true)
	}
	return nil
}
