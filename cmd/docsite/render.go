package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	docsite "github.com/alnah/go-docsite"
	"github.com/alnah/go-docsite/internal/fileutil"
)

// fileSnippets resolves code imports against the markdown file's directory.
type fileSnippets struct {
	root string
}

func (s fileSnippets) ReadSnippet(rel string) (string, error) {
	p, err := fileutil.JoinWithin(s.root, rel)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(p) // #nosec G304 -- confined to the page directory
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// runRender renders a single markdown file to an HTML fragment.
// The fragment goes to stdout unless --output is set; warnings go to stderr.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: render needs a markdown file", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes one file, got %d", ErrTooManyArgs, len(positional))
	}
	inputPath := positional[0]
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	var toc *docsite.TOC
	if flags.toc {
		toc = docsite.DefaultTOC()
		if cfg.TOC.Title != "" {
			toc.Title = cfg.TOC.Title
		}
	}
	renderer, err := docsite.NewRenderer(
		docsite.WithLineNumbers(flags.lineNumbers || cfg.Markdown.LineNumbers),
		docsite.WithTOC(toc),
	)
	if err != nil {
		return err
	}

	res, err := renderer.Render(ctx, docsite.Input{
		Markdown: string(content),
		Path:     filepath.ToSlash(inputPath),
		Snippets: fileSnippets{root: filepath.Dir(inputPath)},
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s\n", w)
	}

	var b strings.Builder
	if res.TOC != "" {
		b.WriteString(res.TOC)
		b.WriteByte('\n')
	}
	b.WriteString(res.HTML)

	if flags.output == "" {
		_, err := io.WriteString(env.Stdout, b.String())
		return err
	}
	if err := fileutil.WriteFile(flags.output, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}
