package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-docsite/internal/cards"
	"github.com/alnah/go-docsite/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidFlags       = errors.New("invalid flags")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrConflictingFlags   = errors.New("conflicting flags")
	ErrBuildFailed        = errors.New("build failed")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownFormat      = errors.New("unknown config format")
)

// loadConfig resolves the config file: the --config flag, then
// DOCSITE_CONFIG, then a docsite.{yaml,yml,toml} found in the usual places.
// Only the implicit lookup may fall back to defaults.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		var err error
		cfg, err = config.LoadConfig(config.DefaultConfigName)
		var notFound *config.NotFoundError
		switch {
		case errors.As(err, &notFound):
			cfg = config.DefaultConfig()
		case err != nil:
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeSiteFlags merges CLI flags into config. CLI values override config values.
func mergeSiteFlags(f *siteFlags, cfg *config.Config) error {
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	if f.cards && f.noCards {
		return fmt.Errorf("%w: --cards and --no-cards", ErrConflictingFlags)
	}

	if f.src != "" {
		cfg.Build.SrcDir = f.src
	}
	if f.out != "" {
		cfg.Build.OutDir = f.out
	}
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.workers > 0 {
		cfg.Build.Workers = f.workers
	}
	if f.theme != "" {
		cfg.Markdown.Theme = f.theme
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.cards {
		cfg.SocialCards.Enabled = true
	}
	if f.noCards {
		cfg.SocialCards.Enabled = false
	}
	if f.lineNumbers {
		cfg.Markdown.LineNumbers = true
	}
	if f.noTOC {
		cfg.TOC.Enabled = false
	}

	return cfg.Validate()
}

// validateWorkers checks that the worker count is within bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveTimeout determines the social card timeout.
// Priority: --timeout flag > DOCSITE_TIMEOUT > default.
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if env.Timeout > 0 {
		return env.Timeout, nil
	}
	return cards.DefaultTimeout, nil
}
