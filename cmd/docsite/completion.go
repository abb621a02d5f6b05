package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docsite/internal/assets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --out
	Short  string   // -o (empty if none)
	Desc   string   // help text
	Bool   bool     // takes no value
	Values []string // for enum flags
	Dir    bool     // directory completion
	Glob   string   // file glob, e.g. "*.yaml"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Files string // glob for file arguments, "" for none
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
var completionMeta = map[string]flagDef{
	"config":     {Glob: "*.yaml *.yml *.toml"},
	"src":        {Dir: true},
	"out":        {Dir: true},
	"asset-path": {Dir: true},
	"format":     {Values: []string{"yaml", "toml"}},
}

// extractFlags lists the flags registered on fs, enriched with metadata.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := completionMeta[f.Name]
		fd.Long = f.Name
		fd.Short = f.Shorthand
		fd.Desc = f.Usage
		fd.Bool = f.Value.Type() == "bool"
		if f.Name == "theme" {
			fd.Values = assets.ThemeNames()
		}
		flags = append(flags, fd)
	})
	return flags
}

// flagsOf builds a command's FlagSet with the same registration as parsing.
func flagsOf(register func(*flag.FlagSet)) []flagDef {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	register(fs)
	return extractFlags(fs)
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	build := flagsOf(func(fs *flag.FlagSet) { addBuildFlags(fs, &buildFlags{}) })
	serve := flagsOf(func(fs *flag.FlagSet) { addServeFlags(fs, &serveFlags{}) })
	render := flagsOf(func(fs *flag.FlagSet) { addRenderFlags(fs, &renderFlags{}) })
	initCmd := flagsOf(func(fs *flag.FlagSet) { addInitFlags(fs, &initFlags{}) })

	return []commandDef{
		{Name: "build", Desc: "Build the site", Flags: build},
		{Name: "serve", Desc: "Serve the site with live reload", Flags: serve},
		{Name: "render", Desc: "Render one markdown file", Flags: render, Files: "*.md *.markdown"},
		{Name: "init", Desc: "Write a config file", Flags: initCmd},
		{Name: "doctor", Desc: "Check the card browser setup", Flags: []flagDef{{Long: "json", Desc: "print results as JSON", Bool: true}}},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for docsite\n")
	b.WriteString("_docsite() {\n")
	b.WriteString("  local cur prev cmd\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("  if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("    return\n  fi\n")
	b.WriteString("  case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Files == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s)\n", c.Name)
		b.WriteString("    case \"$prev\" in\n")
		for _, f := range c.Flags {
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch {
			case len(f.Values) > 0:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
			case f.Dir:
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
			case f.Glob != "":
				fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", pattern)
			}
		}
		b.WriteString("    esac\n")
		var longs []string
		for _, f := range c.Flags {
			longs = append(longs, "--"+f.Long)
		}
		b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "      COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(longs, " "))
		if c.Files != "" {
			b.WriteString("    else\n      COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		} else {
			b.WriteString("    else\n      COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		}
		b.WriteString("    fi\n    ;;\n")
	}
	b.WriteString("  help)\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n    ;;\n", commandNames(cmds))
	b.WriteString("  completion)\n")
	b.WriteString("    COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n    ;;\n")
	b.WriteString("  esac\n}\n")
	b.WriteString("complete -F _docsite docsite\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes a description for use inside single-quoted zsh specs.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	s = strings.ReplaceAll(s, "[", "\\[")
	return strings.ReplaceAll(s, "]", "\\]")
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef docsite\n\n")
	b.WriteString("_docsite() {\n")
	b.WriteString("  local -a commands\n  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n")
	b.WriteString("  if (( CURRENT == 2 )); then\n    _describe 'command' commands\n    return\n  fi\n")
	b.WriteString("  case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Files == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s)\n    _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			action := ":value:"
			switch {
			case f.Bool:
				action = ""
			case len(f.Values) > 0:
				action = ":value:(" + strings.Join(f.Values, " ") + ")"
			case f.Dir:
				action = ":directory:_files -/"
			case f.Glob != "":
				action = ":file:_files"
			}
			fmt.Fprintf(&b, "      '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), action)
		}
		if c.Files != "" {
			b.WriteString("      '*:file:_files -g \"*.md *.markdown\"'\n")
		} else {
			b.WriteString("      '*:directory:_files -/'\n")
		}
		b.WriteString("    ;;\n")
	}
	b.WriteString("  completion)\n    _values 'shell' bash zsh fish\n    ;;\n")
	b.WriteString("  esac\n}\n\n")
	b.WriteString("compdef _docsite docsite\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for docsite\n")
	b.WriteString("complete -c docsite -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c docsite -n __fish_use_subcommand -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c docsite -n %q -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch {
			case f.Bool:
			case len(f.Values) > 0:
				line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
			case f.Dir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -r -F"
			}
			line += fmt.Sprintf(" -d %q", f.Desc)
			b.WriteString(line + "\n")
		}
		if c.Files != "" {
			fmt.Fprintf(&b, "complete -c docsite -n %q -F\n", cond)
		}
	}
	b.WriteString("complete -c docsite -n \"__fish_seen_subcommand_from completion\" -a \"bash zsh fish\"\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsite completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(docsite completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(docsite completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    docsite completion fish > ~/.config/fish/completions/docsite.fish")
}
