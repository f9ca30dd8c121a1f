package cuesheet

import (
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// Version is the release this source tree describes.
const Version = "0.1.0"

const modulePath = "github.com/simonhull/cuesheet"

// Build stamps. Release builds may set them with -ldflags; otherwise they
// come from the VCS settings the go command embeds.
//
//	go build -ldflags="-X github.com/simonhull/cuesheet.commit=$(git rev-parse HEAD)"
var (
	commit     string
	commitTime string
)

// BuildInfo describes the build that linked this package.
type BuildInfo struct {
	// Version is the module version: the tag for `go install pkg@v1.2.3`
	// builds, Version for builds from a checkout.
	Version string
	// Commit is the VCS revision, or "unknown".
	Commit string
	// Modified reports uncommitted changes in the working tree.
	Modified bool
	// Time is the commit time in RFC 3339, or "unknown".
	Time      string
	GoVersion string
}

var buildInfo = sync.OnceValue(func() BuildInfo {
	info, _ := debug.ReadBuildInfo()
	return newBuildInfo(info)
})

// ReadBuildInfo returns the version and VCS details of the running binary.
func ReadBuildInfo() BuildInfo {
	return buildInfo()
}

func newBuildInfo(info *debug.BuildInfo) BuildInfo {
	b := BuildInfo{
		Version:   Version,
		Commit:    commit,
		Time:      commitTime,
		GoVersion: runtime.Version(),
	}

	if info != nil {
		if info.GoVersion != "" {
			b.GoVersion = info.GoVersion
		}
		if v := moduleVersion(info); v != "" {
			b.Version = strings.TrimPrefix(v, "v")
		}
		// VCS settings describe the main module only.
		if info.Main.Path == modulePath {
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					if b.Commit == "" {
						b.Commit = s.Value
					}
				case "vcs.time":
					if b.Time == "" {
						b.Time = s.Value
					}
				case "vcs.modified":
					b.Modified = s.Value == "true"
				}
			}
		}
	}

	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.Time == "" {
		b.Time = "unknown"
	}
	return b
}

// moduleVersion finds this module's version whether it is the main module
// or a dependency. "(devel)" means a local build and is ignored.
func moduleVersion(info *debug.BuildInfo) string {
	v := ""
	if info.Main.Path == modulePath {
		v = info.Main.Version
	} else {
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				v = dep.Version
				if dep.Replace != nil {
					v = dep.Replace.Version
				}
				break
			}
		}
	}
	if v == "(devel)" {
		return ""
	}
	return v
}

// ShortCommit returns the first twelve characters of Commit, with a
// "-dirty" suffix for modified trees.
func (b BuildInfo) ShortCommit() string {
	c := b.Commit
	if len(c) > 12 && c != "unknown" {
		c = c[:12]
	}
	if b.Modified {
		c += "-dirty"
	}
	return c
}
