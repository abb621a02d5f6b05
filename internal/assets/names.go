package assets

// Names of the built-in assets.
const (
	DefaultStyleName  = "default"
	DefaultScriptName = "docsite"
	PageTemplateName  = "page"
	CardTemplateName  = "card"
)

// assetKind describes where one type of asset lives and how it is named.
type assetKind struct {
	dir         string
	ext         string
	errNotFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", errNotFound: ErrStyleNotFound}
	scriptKind   = assetKind{dir: "scripts", ext: ".js", errNotFound: ErrScriptNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", errNotFound: ErrTemplateNotFound}
)
