package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// ByteRange is a half-open [Start, End) span of a document.
type ByteRange struct {
	Start int
	End   int
}

// Contains reports whether offset lies inside the range.
func (r ByteRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// regionSet is a sorted list of non-overlapping ranges.
type regionSet []ByteRange

func (s regionSet) contains(offset int) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].End > offset })
	return i < len(s) && s[i].Contains(offset)
}

// Container names whose bodies are rendered by their own nested pipeline.
const (
	containerTabs      = "tabs"
	containerCodeGroup = "code-group"
)

var nestedContainers = []string{containerTabs, containerCodeGroup}

var (
	containerOpenPattern  = regexp.MustCompile(`^ {0,3}(:{3,})\s*([A-Za-z][\w-]*)(.*)$`)
	containerClosePattern = regexp.MustCompile(`^ {0,3}(:{3,})\s*$`)
)

// container is one top-level ":::name ... :::" block.
type container struct {
	Name      string
	Args      string
	Start     int
	End       int
	BodyStart int
	BodyEnd   int
}

// Body returns the container body without its trailing newline.
func (c container) Body(doc string) string {
	if c.BodyEnd <= c.BodyStart {
		return ""
	}
	return strings.TrimSuffix(doc[c.BodyStart:c.BodyEnd], "\n")
}

// scanContainers finds top-level containers whose name is in names.
// Nesting is counted over every ":::name" opener so an inner ":::" closer
// is matched to the right block. Lines inside fenced code are ignored.
// An opener without a closer is left alone.
func scanContainers(doc string, names ...string) []container {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	fences := scanFences(doc)
	inFence := func(offset int) bool {
		for _, f := range fences {
			if offset >= f.Start && offset < f.End {
				return true
			}
			if f.Start > offset {
				break
			}
		}
		return false
	}

	var (
		found []container
		open  *container
		depth int
	)
	for _, ln := range splitLines(doc) {
		if inFence(ln.Start) {
			continue
		}
		if m := containerOpenPattern.FindStringSubmatch(ln.Text); m != nil {
			if depth == 0 && wanted[m[2]] {
				open = &container{
					Name:      m[2],
					Args:      strings.TrimSpace(m[3]),
					Start:     ln.Start,
					BodyStart: ln.Next,
				}
			}
			depth++
			continue
		}
		if containerClosePattern.MatchString(ln.Text) && depth > 0 {
			depth--
			if depth == 0 && open != nil {
				open.BodyEnd = ln.Start
				open.End = ln.Next
				found = append(found, *open)
				open = nil
			}
		}
	}
	return found
}

// trackRegions returns the ranges owned by nested-rendering containers.
// Fence-level processors skip any fence that starts inside one of them.
func trackRegions(doc string) regionSet {
	if !strings.Contains(doc, ":::") {
		return nil
	}
	containers := scanContainers(doc, nestedContainers...)
	set := make(regionSet, 0, len(containers))
	for _, c := range containers {
		set = append(set, ByteRange{Start: c.Start, End: c.End})
	}
	return set
}

// TrackRegions exposes the exclusion ranges for a document.
func TrackRegions(doc string) []ByteRange {
	return trackRegions(doc)
}
