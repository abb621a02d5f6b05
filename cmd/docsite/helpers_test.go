package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv returns an Environment writing to buffers with the given
// variables as the whole process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// writeFile creates path under dir with content, creating parents.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// newSite writes a small source tree and a config pointing at it, and
// returns the config path and the output directory.
func newSite(t *testing.T) (cfgPath, outDir string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "docs")
	outDir = filepath.Join(dir, "site")

	writeFile(t, src, "index.md", "# Home\n\nWelcome.\n")
	writeFile(t, src, "guide/install.md", "---\ntitle: Install\n---\n\n## Steps\n\n```go\nfmt.Println(1)\n```\n")

	cfgPath = writeFile(t, dir, "docsite.yaml",
		"title: Test Docs\nbuild:\n  srcDir: "+src+"\n  outDir: "+outDir+"\n")
	return cfgPath, outDir
}
