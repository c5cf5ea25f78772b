package tagbridge

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the tagbridge library.
const Version = "0.3.0"

// BuildInfo describes the binary tagbridge is linked into.
type BuildInfo struct {
	// Version is the library version.
	Version string
	// Commit is the VCS revision stamped by the Go toolchain, or "unknown".
	Commit string
	// Modified reports a build from a dirty working tree.
	Modified bool
	// GoVersion is the toolchain that built the binary.
	GoVersion string
	// Deps lists tag library dependencies as "path@version".
	Deps []string
}

// tagLibraries are the dependencies reported in BuildInfo.Deps.
var tagLibraries = map[string]bool{
	"github.com/bogem/id3v2/v2":      true,
	"github.com/dhowden/tag":         true,
	"github.com/go-flac/go-flac":     true,
	"github.com/Sorrow446/go-mp4tag": true,
	"go.senan.xyz/taglib":            true,
}

// ReadBuildInfo returns version details from the running binary's build
// information. Fields the toolchain did not record are "unknown".
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    "unknown",
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	for _, dep := range bi.Deps {
		if tagLibraries[dep.Path] {
			info.Deps = append(info.Deps, dep.Path+"@"+dep.Version)
		}
	}
	return info
}
