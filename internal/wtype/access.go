package wtype

import "strings"

// AccessLevel ranks from most to least restrictive as an enclosing-type
// boundary: AccessDefault defers to whatever encloses it, AccessInternal
// and AccessPublic are concrete levels. Rank order is Public > Internal;
// AccessDefault has no rank of its own until Resolve gives it one.
type AccessLevel int

const (
	AccessDefault AccessLevel = iota
	AccessInternal
	AccessPublic
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessInternal:
		return "internal"
	default:
		return "default"
	}
}

// Resolve returns a concrete level: a itself if it is already concrete,
// otherwise the enclosing level it defers to.
func (a AccessLevel) Resolve(enclosing AccessLevel) AccessLevel {
	if a == AccessDefault {
		return enclosing
	}
	return a
}

// Rank orders concrete access levels for the access-compatibility
// comparison. Callers must Resolve first; AccessDefault has no
// meaningful rank.
func (a AccessLevel) Rank() int {
	return int(a)
}

// ParseAccessLevel scans s for the first of "public", "open", "internal",
// "fileprivate", "private" and returns the corresponding level. "open"
// collapses to AccessPublic and "fileprivate"/"private" collapse to
// AccessInternal: the three-level model has no room for Swift's finer
// distinctions, and nothing downstream depends on that finer ordering.
// An s with none of the five keywords yields AccessInternal, matching
// the host language's own default visibility.
func ParseAccessLevel(s string) AccessLevel {
	type candidate struct {
		keyword string
		level   AccessLevel
	}
	candidates := []candidate{
		{"public", AccessPublic},
		{"open", AccessPublic},
		{"internal", AccessInternal},
		{"fileprivate", AccessInternal},
		{"private", AccessInternal},
	}

	bestIdx := -1
	best := AccessInternal
	for _, c := range candidates {
		if idx := strings.Index(s, c.keyword); idx >= 0 {
			if bestIdx == -1 || idx < bestIdx {
				bestIdx = idx
				best = c.level
			}
		}
	}
	return best
}
