package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// MarkerFamily identifies one kind of trailing code marker.
type MarkerFamily int

// Marker families, in the order they are extracted.
const (
	FamilyDiff MarkerFamily = iota
	FamilyFocus
	FamilyError
	FamilyWarning
	FamilyAnnotation
)

// String returns the family name.
func (f MarkerFamily) String() string {
	switch f {
	case FamilyDiff:
		return "diff"
	case FamilyFocus:
		return "focus"
	case FamilyError:
		return "error"
	case FamilyWarning:
		return "warning"
	case FamilyAnnotation:
		return "annotation"
	}
	return "unknown"
}

// commentStyle is one way of writing a trailing comment.
type commentStyle struct {
	open  string
	close string
}

// The six supported comment syntaxes. Block styles come first so "--" does
// not claim the tail of "<!-- ... -->".
var commentStyles = []commentStyle{
	{open: `<!--`, close: `-->`},
	{open: `/\*`, close: `\*/`},
	{open: `//`},
	{open: `--`},
	{open: `#`},
	{open: `;`},
}

// kind patterns; each captures the payload in one group.
var familyKinds = map[MarkerFamily]string{
	FamilyDiff:       `\[!code (\+\+|--)\]`,
	FamilyFocus:      `\[!code (focus)\]`,
	FamilyError:      `\[!code (error)\]`,
	FamilyWarning:    `\[!code (warning)\]`,
	FamilyAnnotation: `\((\d+)\)`,
}

const anyKind = `(?:\[!code [^\]]+\]|\(\d+\))`

func markerExpr(style commentStyle, kind string) string {
	expr := `\s*` + style.open + `\s*` + kind
	if style.close != "" {
		expr += `\s*` + style.close
	}
	return expr
}

// trailingMarkers matches any run of markers, whatever their comment style.
var trailingMarkers = func() string {
	alts := make([]string, len(commentStyles))
	for i, st := range commentStyles {
		alts[i] = markerExpr(st, anyKind)
	}
	return `((?:` + strings.Join(alts, "|") + `)*)`
}()

// familyPatterns holds, per family, one regexp per comment style. Each
// matches: 1=code before the marker, 2=payload, 3=other markers that trail it.
var familyPatterns = func() map[MarkerFamily][]*regexp.Regexp {
	out := make(map[MarkerFamily][]*regexp.Regexp, len(familyKinds))
	for fam, kind := range familyKinds {
		for _, st := range commentStyles {
			expr := `^(.*?)` + markerExpr(st, kind) + trailingMarkers + `\s*$`
			out[fam] = append(out[fam], regexp.MustCompile(expr))
		}
	}
	return out
}()

// quickMarker rejects bodies that cannot hold any marker.
func quickMarker(fam MarkerFamily, body string) bool {
	if fam == FamilyAnnotation {
		return strings.Contains(body, "(")
	}
	return strings.Contains(body, "[!code ")
}

// ExtractMarkers strips one family of markers from body. It returns the
// cleaned body and a map from 1-based line number to marker payload
// ("++", "--", "focus", "error", "warning", or the annotation number).
// The number of lines never changes.
func ExtractMarkers(fam MarkerFamily, body string) (string, map[int]string) {
	found := make(map[int]string)
	if !quickMarker(fam, body) {
		return body, found
	}
	patterns := familyPatterns[fam]
	lines := strings.Split(body, "\n")
	for i, ln := range lines {
		for _, re := range patterns {
			m := re.FindStringSubmatch(ln)
			if m == nil {
				continue
			}
			found[i+1] = m[2]
			lines[i] = strings.TrimRight(m[1], " \t") + m[3]
			break
		}
	}
	return strings.Join(lines, "\n"), found
}

// record stores extracted payloads on the descriptor.
func (fd *FenceDescriptor) record(fam MarkerFamily, found map[int]string) {
	for ln, payload := range found {
		switch fam {
		case FamilyDiff:
			if payload == "++" {
				fd.Diff[ln] = DiffAdd
			} else {
				fd.Diff[ln] = DiffRemove
			}
		case FamilyFocus:
			fd.Focus[ln] = true
		case FamilyError:
			fd.Errors[ln] = true
		case FamilyWarning:
			fd.Warnings[ln] = true
		case FamilyAnnotation:
			if n, err := strconv.Atoi(payload); err == nil {
				fd.Annotations[ln] = n
			}
		}
	}
}

// MarkerProcessor strips one marker family from every outer-scope fence and
// records the marked lines on the fence's descriptor.
type MarkerProcessor struct {
	Family MarkerFamily
}

// Name implements Processor.
func (p *MarkerProcessor) Name() string {
	return "markers/" + p.Family.String()
}

// Preprocess implements Preprocessor.
func (p *MarkerProcessor) Preprocess(content string, rc *RenderContext) string {
	if !quickMarker(p.Family, content) {
		return content
	}
	return rewriteFences(content, func(index int, f fence, doc string) string {
		body, found := ExtractMarkers(p.Family, f.Body(doc))
		if len(found) == 0 {
			return doc[f.Start:f.End]
		}
		rc.Fence(index).record(p.Family, found)
		return f.replaceBody(doc, body)
	})
}
