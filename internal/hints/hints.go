// Package hints turns common failures into one actionable line.
// Every hint reads "\n  hint: <text>" so callers can append it to an
// error message as is.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-docsite/internal/fileutil"
)

const prefix = "\n  hint: "

// ciVars mark a CI runner; any non-empty value counts.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ForBrowserConnect explains why Chrome may not start for social cards.
// getenv is os.Getenv outside tests.
func ForBrowserConnect(getenv func(string) string) string {
	var parts []string
	if sandboxed(getenv) && getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	parts = append(parts, "or build with --no-cards")
	return join(parts...)
}

// sandboxed reports a CI runner or a container, where Chrome's sandbox
// usually fails.
func sandboxed(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return getenv("DOCSITE_CONTAINER") == "1" || fileutil.FileExists("/.dockerenv")
}

// ForTimeout suggests a longer social card timeout.
func ForTimeout() string {
	return join("slow pages need a longer --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound points at --config and at the user config location,
// if it was among the tried paths.
func ForConfigNotFound(tried []string) string {
	hint := "use --config /path/to/docsite.yaml, or run 'docsite init'"
	for _, p := range tried {
		if strings.Contains(filepath.ToSlash(p), "go-docsite/") {
			hint += ", or create " + p
			break
		}
	}
	return join(hint)
}

// ForOutputDirectory covers unwritable output paths.
func ForOutputDirectory() string {
	return join("check the parent directory exists and is writable")
}

// ForSourceDirectory covers a missing or empty source tree.
func ForSourceDirectory(srcDir string) string {
	return join("add .md files under " + srcDir + " or set build.srcDir / --src")
}

// ForThemeNotFound lists the themes to pick from.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

// ForAddressInUse covers a dev server port already taken.
func ForAddressInUse(addr string) string {
	return join(addr + " is busy; pass --port with a free port")
}

// join renders parts as a single hint; no parts, no hint.
func join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	return prefix + strings.Join(parts, "; ")
}
