// Package assets provides the stylesheet, client script and HTML templates
// used to lay out generated documentation pages.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the site builder. It tries the theme
// directory first and falls back to the embedded asset when it is missing. A site can override page.html alone and keep the default styles.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Site stylesheet (default.css)
//	├── scripts/
//	│   └── {name}.js            # Client behavior (docsite.js)
//	└── templates/
//	    ├── page.html            # Page layout (html/template)
//	    └── card.html            # Social card layout
//
// Syntax highlighting CSS is not stored: HighlightCSS generates it from a
// chroma theme so it always matches the classes emitted for code blocks.
//
// # Security
//
// Asset names are limited to [A-Za-z0-9_-]. FilesystemLoader reads through
// os.Root, which refuses paths and symlinks leaving the theme directory.
package assets
