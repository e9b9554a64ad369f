// Package buildinfo reports which valvepath build is running.
//
// The values are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/valvepath/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/valvepath/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/valvepath/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/valvepath
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Link-time variables.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build identity, as served on /healthz.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the stamped build identity.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Dev reports whether the binary was built without version stamping.
func (i Info) Dev() bool { return i.Version == "dev" }

// Template returns the cobra version template, e.g.
// "valvepath v0.3.0 (abc1234, 2026-01-02T03:04:05Z)".
func Template() string {
	i := Get()
	if i.Dev() {
		return "{{.Name}} dev build\n"
	}
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", i.Version, i.Commit, i.Date)
}
