package main

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-docsite/internal/devserver"
	"github.com/alnah/go-docsite/internal/hints"
)

// runServe builds the site, serves it and rebuilds on every change.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	liveReload := devserver.ReloadPath
	if flags.noReload {
		liveReload = ""
	}
	setup, err := prepareSite(flags.common, flags.site, positional, liveReload, env)
	if err != nil {
		return err
	}
	defer func() { _ = setup.Close() }()
	b := setup.builder

	var hub *devserver.Hub
	if !flags.noReload {
		hub = devserver.NewHub()
	}
	srv := &devserver.Server{
		Addr: net.JoinHostPort(flags.host, strconv.Itoa(flags.port)),
		Dir:  b.OutputDir(),
		Hub:  hub,
	}
	ln, err := srv.Listen()
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForAddressInUse(srv.Addr))
	}

	rebuild := func() {
		res, err := b.Build(ctx)
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(env.Stderr, "error: %v\n", withSourceHint(err, b.SourceDir()))
			}
			return
		}
		printBuildResult(res, b.OutputDir(), flags.common.quiet, flags.common.verbose, env)
		if hub != nil {
			hub.Broadcast(res.ID)
		}
	}

	rebuild()
	if ctx.Err() != nil {
		_ = ln.Close()
		return ctx.Err()
	}

	w, err := devserver.NewWatcher(b.SourceDir(), watchSkipper(b.OutputDir()), devserver.DefaultDebounce)
	if err != nil {
		_ = ln.Close()
		return err
	}
	go func() {
		_ = w.Run(ctx, rebuild, func(err error) {
			fmt.Fprintf(env.Stderr, "warning: watch: %v\n", err)
		})
	}()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s at http://%s/\n", b.OutputDir(), ln.Addr())
		fmt.Fprintln(env.Stdout, "Press Ctrl+C to stop")
	}

	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Stopped")
	}
	return nil
}

// watchSkipper ignores the directories a build never reads: hidden and
// underscore directories, node_modules and the output directory.
func watchSkipper(outDir string) func(string) bool {
	absOut, _ := filepath.Abs(outDir)
	return func(p string) bool {
		if abs, err := filepath.Abs(p); err == nil && (abs == absOut || strings.HasPrefix(abs, absOut+string(filepath.Separator))) {
			return true
		}
		name := filepath.Base(p)
		return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "node_modules"
	}
}
