package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"
)

// Finding levels, from harmless to blocking.
const (
	levelOK    = "ok"
	levelWarn  = "warn"
	levelError = "error"
)

// finding is one line of the doctor report.
type finding struct {
	Section string `json:"section"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// browserInfo describes the Chrome used for social cards.
type browserInfo struct {
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// siteInfo describes the directories a build would use.
type siteInfo struct {
	SrcDir    string `json:"src_dir,omitempty"`
	SrcExists bool   `json:"src_exists"`
	OutDir    string `json:"out_dir,omitempty"`
}

// doctorReport is the outcome of every check. Status is "ready",
// "warnings" or "errors".
type doctorReport struct {
	Status    string      `json:"status"`
	Platform  string      `json:"platform"`
	Container string      `json:"container,omitempty"` // detection signal
	CI        bool        `json:"ci"`
	Browser   browserInfo `json:"browser"`
	Site      siteInfo    `json:"site"`
	Findings  []finding   `json:"findings"`

	getenv func(string) string
}

func (r *doctorReport) add(section, level, format string, args ...any) {
	r.Findings = append(r.Findings, finding{Section: section, Level: level, Message: fmt.Sprintf(format, args...)})
}

// doctorChecks run in order; later checks may read what earlier ones found.
var doctorChecks = []func(*doctorReport){
	checkBrowser,
	checkSandbox,
	checkTempDir,
	checkSite,
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Warnings exit 0; any error exits 1.
func runDoctorCmd(args []string, env *Environment) int {
	fs := newFlagSet("doctor", printDoctorUsage, env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	if err := parse(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	report := runDoctor(env.Getenv)
	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check against the given environment.
func runDoctor(getenv func(string) string) *doctorReport {
	r := &doctorReport{
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		getenv:   getenv,
	}
	for _, check := range doctorChecks {
		check(r)
	}

	r.Status = "ready"
	for _, f := range r.Findings {
		switch f.Level {
		case levelError:
			r.Status = "errors"
		case levelWarn:
			if r.Status == "ready" {
				r.Status = "warnings"
			}
		}
	}
	return r
}

// checkBrowser locates Chrome the way the card renderer will.
func checkBrowser(r *doctorReport) {
	const section = "Browser"

	path := r.getenv("ROD_BROWSER_BIN")
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			r.add(section, levelError, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		r.add(section, levelError, "Chrome not found at %s", path)
		return
	}
	r.Browser.Path = path
	r.add(section, levelOK, "Found at %s", path)

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path is the browser binary
	if err != nil {
		r.add(section, levelWarn, "Could not get Chrome version: %v", err)
	} else {
		r.Browser.Version = strings.TrimSpace(string(out))
		r.add(section, levelOK, "Version: %s", r.Browser.Version)
	}
}

// checkSandbox flags CI runners and containers where Chrome's sandbox
// needs to be turned off.
func checkSandbox(r *doctorReport) {
	const section = "Environment"

	r.add(section, levelOK, "Platform: %s", r.Platform)
	if hint, ok := isContainer(r.getenv); ok {
		r.Container = hint
		r.add(section, levelOK, "Container: detected (%s)", hint)
	}
	for _, v := range ciVars {
		if r.getenv(v) != "" {
			r.CI = true
			r.add(section, levelOK, "CI: detected (%s)", v)
			break
		}
	}

	noSandbox := r.getenv("ROD_NO_SANDBOX") == "1"
	r.Browser.Sandbox = !noSandbox
	if (r.Container != "" || r.CI) && !noSandbox {
		r.add(section, levelWarn, "Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// ciVars mark a CI runner; any non-empty value counts.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// isContainer returns the first container signal found, most explicit first.
func isContainer(getenv func(string) string) (string, bool) {
	if getenv("DOCSITE_CONTAINER") == "1" {
		return "DOCSITE_CONTAINER=1", true
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return "/.dockerenv", true
	}
	if v := getenv("container"); v != "" {
		return "container=" + v, true
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "KUBERNETES_SERVICE_HOST", true
	}
	return "", false
}

// checkTempDir makes sure card HTML can be staged in the temp dir.
func checkTempDir(r *doctorReport) {
	const section = "System"

	f, err := os.CreateTemp("", "docsite-doctor-*")
	if err != nil {
		r.add(section, levelError, "Temp directory not writable: %s", os.TempDir())
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.add(section, levelOK, "Temp directory: writable")
}

// checkSite loads the config a build would use and checks the source
// directory exists.
func checkSite(r *doctorReport) {
	const section = "Site"

	cfg, err := loadConfig("", loadEnvConfig(r.getenv))
	if err != nil {
		r.add(section, levelError, "%v", err)
		return
	}
	r.Site.SrcDir = cfg.Build.SrcDir
	r.Site.OutDir = cfg.Build.OutDir

	if info, err := os.Stat(cfg.Build.SrcDir); err == nil && info.IsDir() {
		r.Site.SrcExists = true
		r.add(section, levelOK, "Source: %s", cfg.Build.SrcDir)
	} else {
		r.add(section, levelWarn, "Source directory %s not found. Create it or set build.srcDir", cfg.Build.SrcDir)
	}
	r.add(section, levelOK, "Output: %s", filepath.Clean(cfg.Build.OutDir))
}

// printDoctorReport prints findings grouped by section, in check order.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "docsite doctor")

	section := ""
	for _, f := range r.Findings {
		if f.Section != section {
			section = f.Section
			fmt.Fprintln(w)
			fmt.Fprintln(w, section)
		}
		fmt.Fprintf(w, "  [%s] %s\n", strings.ToUpper(f.Level), f.Message)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render social cards")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	default:
		fmt.Fprintln(w, "Status: Not ready (fix errors above, or build with --no-cards)")
	}
}
