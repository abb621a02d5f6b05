package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/fileutil"
	"github.com/alnah/go-docsite/internal/yamlutil"
)

// runInit writes a config file holding the defaults, in the current
// directory or at the given path.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes at most one path, got %d", ErrTooManyArgs, len(positional))
	}

	data, ext, err := encodeDefaults(flags.format)
	if err != nil {
		return err
	}

	path := config.DefaultConfigName + ext
	if len(positional) == 1 {
		path = positional[0]
	}
	if !flags.force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	if _, err := os.Stat(config.DefaultConfig().Build.SrcDir); os.IsNotExist(err) {
		fmt.Fprintf(env.Stdout, "Add markdown pages under %s/ and run 'docsite serve'\n", config.DefaultConfig().Build.SrcDir)
	}
	return nil
}

// encodeDefaults encodes DefaultConfig in the requested format and returns
// the matching file extension.
func encodeDefaults(format string) ([]byte, string, error) {
	cfg := config.DefaultConfig()
	switch format {
	case "yaml", "yml":
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return nil, "", err
		}
		return data, ".yaml", nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".toml", nil
	default:
		return nil, "", fmt.Errorf("%w: %q (supported: yaml, toml)", ErrUnknownFormat, format)
	}
}
