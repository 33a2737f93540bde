package app

import (
	"fmt"
	"runtime/debug"
)

// Overridden at link time:
//
//	go build -ldflags "-X github.com/heartmarshall/focloireacht-backend/internal/app.Version=1.4.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion formats the version reported by /health, startup logs and
// focloirctl --version. Missing commit and time fall back to the VCS stamp
// the go tool embeds.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vc, vt := vcsStamp()
		if commit == "" {
			commit = vc
		}
		if built == "" {
			built = vt
		}
	}
	if commit == "" {
		return Version
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if built == "" {
		return fmt.Sprintf("%s (%s)", Version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, built)
}

func vcsStamp() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}
