package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build the site into the output directory")
	fmt.Fprintln(w, "  serve       Build, serve and rebuild on changes")
	fmt.Fprintln(w, "  render      Render one markdown file to HTML")
	fmt.Fprintln(w, "  init        Write a config file with the defaults")
	fmt.Fprintln(w, "  doctor      Check the social card browser setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docsite help <command>' for details on a specific command.")
}

// printSiteFlags prints the flags shared by build and serve.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --src <dir>           Source directory (default: build.srcDir)")
	fmt.Fprintln(w, "  -o, --out <dir>           Output directory (default: build.outDir)")
	fmt.Fprintln(w, "      --base-url <url>      Public URL for canonical links and sitemap")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --clean               Remove the output directory first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --theme <name>        Syntax highlighting theme")
	fmt.Fprintln(w, "      --line-numbers        Number every code block")
	fmt.Fprintln(w, "      --no-toc              Disable the page outline")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles, scripts and templates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Social cards:")
	fmt.Fprintln(w, "      --cards               Render social cards (needs Chrome)")
	fmt.Fprintln(w, "      --no-cards            Skip social cards")
	fmt.Fprintln(w, "  -t, --timeout <d>         Card timeout per page (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite build [srcDir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the documentation site.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCSITE_CONFIG, DOCSITE_SRC_DIR, DOCSITE_OUT_DIR, DOCSITE_BASE_URL,")
	fmt.Fprintln(w, "  DOCSITE_THEME, DOCSITE_WORKERS, DOCSITE_TIMEOUT")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite serve [srcDir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site, serve it and rebuild when sources change.")
	fmt.Fprintln(w, "Open pages reload after every build.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --host <addr>         Address to listen on (default: 127.0.0.1)")
	fmt.Fprintln(w, "  -p, --port <n>            Port to listen on (default: 4000)")
	fmt.Fprintln(w, "      --no-reload           Disable live reload")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite render <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one markdown file to an HTML fragment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
	fmt.Fprintln(w, "      --toc                 Print the page outline first")
	fmt.Fprintln(w, "      --line-numbers        Number every code block")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite init [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a config file holding the defaults (default: docsite.yaml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --format <s>          Config format: yaml, toml")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, sandbox and temp directory setup for social cards.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
