// Package version reports build information for the certgw binaries.
//
// The values are set at build time:
//
//	go build -ldflags "-X github.com/information-sharing-networks/certgw/internal/version.version=v1.2.0 \
//	  -X github.com/information-sharing-networks/certgw/internal/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/information-sharing-networks/certgw/internal/version.gitCommit=$(git rev-parse --short HEAD)"
//
// When they are not set, the module version and vcs settings embedded by the go toolchain are used.
package version

import "runtime/debug"

var (
	version   = ""
	buildDate = ""
	gitCommit = ""
)

type Info struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Get returns the build information for the running binary.
func Get() Info {
	info := Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = shortRevision(s.Value)
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
