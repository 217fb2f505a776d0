package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Overridden by ldflags, or filled from build info.
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

// ReleaseURL is the GitHub endpoint describing the latest release.
var ReleaseURL = "https://api.github.com/repos/diillson/momcarebot/releases/latest"

// populateFromBuildInfo fills Version/Commit/BuildTime from the VCS settings
// embedded by the Go toolchain, unless ldflags already set a real version.
func populateFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}

	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	// Module version is "(devel)" for local builds.
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		Version = strings.TrimPrefix(v, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo()
}

// LatestRelease asks GitHub for the newest release and reports whether it is
// newer than current. Development builds are never compared.
func LatestRelease(ctx context.Context, client *http.Client, current string) (string, bool, error) {
	if strings.HasSuffix(current, "-dev") {
		return "", false, nil
	}

	cur, err := semver.NewVersion(current)
	if err != nil {
		return "", false, fmt.Errorf("invalid current version %q: %w", current, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleaseURL, nil)
	if err != nil {
		return "", false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", false, err
	}

	latest, err := semver.NewVersion(release.TagName)
	if err != nil {
		return "", false, fmt.Errorf("invalid release tag %q: %w", release.TagName, err)
	}
	return latest.String(), latest.GreaterThan(cur), nil
}

// FormatVersion returns e.g. "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	if Commit == "" && BuildTime == "" {
		return fmt.Sprintf("%s (development)", ver)
	}

	commit := Commit
	if commit == "" {
		commit = "development"
	}
	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s)", ver, commit)
}
