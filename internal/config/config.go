package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-docsite/internal/dateutil"
	"github.com/alnah/go-docsite/internal/fileutil"
	"github.com/alnah/go-docsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultConfigName is the config name looked up when none is given.
const DefaultConfigName = "docsite"

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxURLLength         = 2048 // Browser limit
	MaxColorLength       = 20   // "#0b7285" or color name
	MaxThemeLength       = 50
	MaxPathLength        = 1024
	MaxPatternLength     = 256
	MaxTextLength        = 500 // Footer/free-form text
	MaxTOCTitleLength    = 100
	MaxWorkers           = 32
)

// Config holds all configuration for a documentation site.
type Config struct {
	Title       string            `yaml:"title" toml:"title"`
	Description string            `yaml:"description" toml:"description"`
	BaseURL     string            `yaml:"baseURL" toml:"baseURL"`
	Lang        string            `yaml:"lang" toml:"lang"`
	Branding    BrandingConfig    `yaml:"branding" toml:"branding"`
	Search      SearchConfig      `yaml:"search" toml:"search"`
	Markdown    MarkdownConfig    `yaml:"markdown" toml:"markdown"`
	TOC         TOCConfig         `yaml:"toc" toml:"toc"`
	Build       BuildConfig       `yaml:"build" toml:"build"`
	Assets      AssetsConfig      `yaml:"assets" toml:"assets"`
	SocialCards SocialCardsConfig `yaml:"socialCards" toml:"socialCards"`
	Nav         NavConfig         `yaml:"nav" toml:"nav"`
	Footer      FooterConfig      `yaml:"footer" toml:"footer"`
}

// BrandingConfig defines the site identity shown in the header.
type BrandingConfig struct {
	Logo         string `yaml:"logo" toml:"logo"`                 // Path relative to srcDir, or URL
	Favicon      string `yaml:"favicon" toml:"favicon"`           // Path relative to srcDir, or URL
	PrimaryColor string `yaml:"primaryColor" toml:"primaryColor"` // CSS hex color
}

// SearchConfig defines which pages enter the search index.
type SearchConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Exclude []string `yaml:"exclude" toml:"exclude"` // Globs relative to srcDir
}

// MarkdownConfig defines code rendering options.
type MarkdownConfig struct {
	LineNumbers bool   `yaml:"lineNumbers" toml:"lineNumbers"` // Default for fences without an option
	Theme       string `yaml:"theme" toml:"theme"`             // Chroma style name
}

// TOCConfig defines the per-page "On this page" outline.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Title    string `yaml:"title" toml:"title"`
	MinDepth int    `yaml:"minDepth" toml:"minDepth"` // 1-6, default 2
	MaxDepth int    `yaml:"maxDepth" toml:"maxDepth"` // 1-6, default 3
	Numbered bool   `yaml:"numbered" toml:"numbered"`
}

// BuildConfig defines source and destination directories.
type BuildConfig struct {
	SrcDir  string `yaml:"srcDir" toml:"srcDir"`
	OutDir  string `yaml:"outDir" toml:"outDir"`
	Workers int    `yaml:"workers" toml:"workers"` // 0 = number of CPUs
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
}

// SocialCardsConfig defines Open Graph image generation.
type SocialCardsConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// NavConfig defines sidebar ordering.
type NavConfig struct {
	Order []string `yaml:"order" toml:"order"` // Page or directory paths relative to srcDir
}

// FooterConfig defines the page footer.
type FooterConfig struct {
	Text        string `yaml:"text" toml:"text"`
	LastUpdated string `yaml:"lastUpdated" toml:"lastUpdated"` // Date format or preset; empty = hidden
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"description", c.Description, MaxDescriptionLength},
		{"baseURL", c.BaseURL, MaxURLLength},
		{"branding.logo", c.Branding.Logo, MaxURLLength},
		{"branding.favicon", c.Branding.Favicon, MaxURLLength},
		{"branding.primaryColor", c.Branding.PrimaryColor, MaxColorLength},
		{"markdown.theme", c.Markdown.Theme, MaxThemeLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"build.srcDir", c.Build.SrcDir, MaxPathLength},
		{"build.outDir", c.Build.OutDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.BaseURL != "" && !fileutil.IsURL(c.BaseURL) {
		return fmt.Errorf("%w: baseURL: must start with http:// or https://, got %q", ErrInvalidValue, c.BaseURL)
	}
	if c.Branding.PrimaryColor != "" && !hexColorPattern.MatchString(c.Branding.PrimaryColor) {
		return fmt.Errorf("%w: branding.primaryColor: must be #rgb or #rrggbb, got %q", ErrInvalidValue, c.Branding.PrimaryColor)
	}
	if c.Markdown.Theme != "" {
		if _, ok := styles.Registry[c.Markdown.Theme]; !ok {
			return fmt.Errorf("%w: markdown.theme: unknown theme %q", ErrInvalidValue, c.Markdown.Theme)
		}
	}

	for i, pattern := range c.Search.Exclude {
		name := fmt.Sprintf("search.exclude[%d]", i)
		if err := validateFieldLength(name, pattern, MaxPatternLength); err != nil {
			return err
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
	}
	for i, entry := range c.Nav.Order {
		if err := validateFieldLength(fmt.Sprintf("nav.order[%d]", i), entry, MaxPathLength); err != nil {
			return err
		}
	}

	if err := c.TOC.validate(); err != nil {
		return err
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}
	if c.Footer.LastUpdated != "" {
		if _, err := dateutil.Layout(c.Footer.LastUpdated); err != nil {
			return fmt.Errorf("footer.lastUpdated: %w", err)
		}
	}
	return nil
}

func (t TOCConfig) validate() error {
	for _, d := range []struct {
		name  string
		value int
	}{{"toc.minDepth", t.MinDepth}, {"toc.maxDepth", t.MaxDepth}} {
		if d.value != 0 && (d.value < 1 || d.value > 6) {
			return fmt.Errorf("%w: %s: must be between 1 and 6, got %d", ErrInvalidValue, d.name, d.value)
		}
	}
	if t.MinDepth != 0 && t.MaxDepth != 0 && t.MinDepth > t.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) greater than toc.maxDepth (%d)", ErrInvalidValue, t.MinDepth, t.MaxDepth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Title: "Documentation",
		Lang:  "en",
		Search: SearchConfig{
			Enabled: true,
		},
		Markdown: MarkdownConfig{
			LineNumbers: false,
			Theme:       "github",
		},
		TOC: TOCConfig{
			Enabled:  true,
			Title:    "On this page",
			MinDepth: 2,
			MaxDepth: 3,
		},
		Build: BuildConfig{
			SrcDir: "docs",
			OutDir: "site",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) || hasConfigExtension(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode picks the format from the file extension. TOML files are decoded
// strictly like YAML ones: keys that map to no field are an error.
func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown field(s): %s", strings.Join(keys, ", "))
		}
		return nil
	}
	return yamlutil.UnmarshalStrict(data, cfg)
}

var configExtensions = []string{".yaml", ".yml", ".toml"}

func hasConfigExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range configExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, ~/.config/go-docsite/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2) // 2 locations

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, "go-docsite", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError lists every location searched for a named config.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Is reports whether target is ErrConfigNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}
