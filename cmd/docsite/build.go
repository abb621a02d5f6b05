package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alnah/go-docsite/internal/assets"
	"github.com/alnah/go-docsite/internal/cards"
	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/hints"
	"github.com/alnah/go-docsite/internal/site"
)

// siteSetup is everything a build or a dev server needs.
type siteSetup struct {
	cfg     *config.Config
	builder *site.Builder
	pool    *cards.Pool // nil when social cards are off
}

// Close releases the browsers behind social cards.
func (s *siteSetup) Close() error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Close()
}

// prepareSite loads config, applies env and flags, and creates the builder.
// positional holds at most the source directory.
func prepareSite(common commonFlags, sf siteFlags, positional []string, liveReload string, env *Environment) (*siteSetup, error) {
	if len(positional) > 1 {
		return nil, fmt.Errorf("%w: expected at most one source directory, got %d", ErrTooManyArgs, len(positional))
	}
	if len(positional) == 1 {
		sf.src = positional[0]
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(common.config, envCfg)
	if err != nil {
		return nil, err
	}
	if err := mergeSiteFlags(&sf, cfg); err != nil {
		return nil, err
	}
	if cfg.Markdown.Theme != "" && !slices.Contains(assets.ThemeNames(), cfg.Markdown.Theme) {
		return nil, fmt.Errorf("%w: %q", assets.ErrThemeNotFound, cfg.Markdown.Theme)
	}
	timeout, err := resolveTimeout(sf.timeout, envCfg)
	if err != nil {
		return nil, err
	}

	setup := &siteSetup{cfg: cfg}
	opts := site.Options{
		Config:     cfg,
		LiveReload: liveReload,
		Clean:      sf.clean,
	}
	if cfg.SocialCards.Enabled {
		size := cards.ResolvePoolSize(cfg.Build.Workers)
		if common.verbose {
			fmt.Fprintf(env.Stderr, "Card pool size: %d\n", size)
		}
		setup.pool = cards.NewPool(size, timeout)
		opts.Cards = site.NewCardPool(setup.pool)
	}

	b, err := site.New(opts)
	if err != nil {
		_ = setup.Close()
		return nil, err
	}
	setup.builder = b
	return setup, nil
}

// runBuild builds the site once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	setup, err := prepareSite(flags.common, flags.site, positional, "", env)
	if err != nil {
		return err
	}
	defer func() { _ = setup.Close() }()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Building %s -> %s\n", setup.builder.SourceDir(), setup.builder.OutputDir())
	}

	res, err := setup.builder.Build(ctx)
	if err != nil {
		return withSourceHint(err, setup.builder.SourceDir())
	}

	failed := printBuildResult(res, setup.builder.OutputDir(), flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d page(s) failed", ErrBuildFailed, failed)
	}
	return nil
}

// printBuildResult outputs page results using the provided writers and
// returns the number of failed pages.
func printBuildResult(res *site.Result, outDir string, quiet, verbose bool, env *Environment) int {
	summary := res.Summary()

	for _, p := range res.Pages {
		for _, w := range p.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}

		if p.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", p.Source, p.Err, pageHint(p.Err))
			continue
		}

		if verbose && !quiet {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", p.Source, p.Output, p.Duration.Round(time.Millisecond))
		}
	}

	if res.CardErr != nil {
		fmt.Fprintf(env.Stderr, "warning: social cards: %v%s\n", res.CardErr, cardHint(res.CardErr, env.Getenv))
	}

	if quiet {
		return summary.Failed
	}
	if verbose {
		for _, s := range res.Skipped {
			fmt.Fprintf(env.Stdout, "Skipped %s (index page wins)\n", s)
		}
	}
	fmt.Fprintf(env.Stdout, "Built %s: %d succeeded, %d failed", outDir, summary.Succeeded, summary.Failed)
	if res.Cards > 0 {
		fmt.Fprintf(env.Stdout, ", %d card(s)", res.Cards)
	}
	fmt.Fprintf(env.Stdout, " in %v\n", res.Duration.Round(time.Millisecond))

	return summary.Failed
}

// withSourceHint appends a hint when the source directory is missing or empty.
func withSourceHint(err error, srcDir string) error {
	if errors.Is(err, site.ErrSourceDir) || errors.Is(err, site.ErrNoPages) {
		return fmt.Errorf("%w%s", err, hints.ForSourceDirectory(srcDir))
	}
	return err
}

// pageHint suggests a fix for a failed page.
func pageHint(err error) string {
	if errors.Is(err, site.ErrWritePage) {
		return hints.ForOutputDirectory()
	}
	return ""
}

// cardHint suggests a fix for a social card failure.
func cardHint(err error, getenv func(string) string) string {
	switch {
	case errors.Is(err, cards.ErrBrowserConnect):
		return hints.ForBrowserConnect(getenv)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	default:
		return ""
	}
}
