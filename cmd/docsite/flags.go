package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Dev server defaults.
const (
	defaultHost = "127.0.0.1"
	defaultPort = 4000
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds flags shared by build and serve. Empty or zero values
// leave the configured value alone.
type siteFlags struct {
	src         string
	out         string
	baseURL     string
	workers     int
	timeout     string
	theme       string
	assetPath   string
	clean       bool
	cards       bool
	noCards     bool
	lineNumbers bool
	noTOC       bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	site   siteFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common   commonFlags
	site     siteFlags
	host     string
	port     int
	noReload bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common      commonFlags
	output      string
	toc         bool
	lineNumbers bool
}

// initFlags holds all flags for the init command.
type initFlags struct {
	format string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds site build flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.src, "src", "", "source directory (default from build.srcDir)")
	fs.StringVarP(&f.out, "out", "o", "", "output directory (default from build.outDir)")
	fs.StringVar(&f.baseURL, "base-url", "", "public site URL for canonical links and sitemap")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "social card timeout per page (e.g., 30s, 2m)")
	fs.StringVar(&f.theme, "theme", "", "syntax highlighting theme")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.clean, "clean", false, "remove the output directory first")
	fs.BoolVar(&f.cards, "cards", false, "render social cards (needs Chrome)")
	fs.BoolVar(&f.noCards, "no-cards", false, "skip social cards")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "number every code block")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable the page outline")
}

func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
}

func addServeFlags(fs *flag.FlagSet, f *serveFlags) {
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.StringVar(&f.host, "host", defaultHost, "address to listen on")
	fs.IntVarP(&f.port, "port", "p", defaultPort, "port to listen on")
	fs.BoolVar(&f.noReload, "no-reload", false, "disable live reload")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "write HTML to a file instead of stdout")
	fs.BoolVar(&f.toc, "toc", false, "print the page outline before the content")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "number every code block")
}

func addInitFlags(fs *flag.FlagSet, f *initFlags) {
	fs.StringVar(&f.format, "format", "yaml", "config format: yaml, toml")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing config")
}

// parse parses args and marks failures as usage errors. A help request
// is returned as flag.ErrHelp after the usage was printed.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}

func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	fs := newFlagSet("build", printBuildUsage, w)
	f := &buildFlags{}
	addBuildFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	fs := newFlagSet("serve", printServeUsage, w)
	f := &serveFlags{}
	addServeFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs := newFlagSet("render", printRenderUsage, w)
	f := &renderFlags{}
	addRenderFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, w io.Writer) (*initFlags, []string, error) {
	fs := newFlagSet("init", printInitUsage, w)
	f := &initFlags{}
	addInitFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
