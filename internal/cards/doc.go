// Package cards renders social card images (1200x630 PNG) with headless
// Chrome.
//
// Each Renderer owns one browser, launched lazily on the first card. A Pool
// hands out Renderers to concurrent workers and creates them on demand, so
// a build that renders no card never starts Chrome.
//
// Set ROD_BROWSER_BIN to use a pre-installed browser and ROD_NO_SANDBOX=1
// in containers and CI, where the Chrome sandbox is unavailable.
package cards
