package router

import (
	"net/url"
	"sort"
	"strings"
)

// Match is the result of matching one route against a path.
type Match struct {
	// Pathname is the portion of the URL matched from the root down to
	// and including this route.
	Pathname string

	// Params holds the decoded path parameters visible to this route,
	// including parameters extracted by ancestor routes.
	Params map[string]string

	// Route is the matched route node.
	Route *Route
}

// MatchRoutes matches a URL path against the route tree and returns the
// root-to-leaf sequence of matches, or nil when no route (including no
// catch-all) matches. Outer routes come first; the order determines
// nesting and loader grouping.
func MatchRoutes(routes []*Route, path string) []Match {
	pathname := cleanPathname(path)
	segments := splitPath(pathname)
	return matchLevel(routes, segments, "/", nil)
}

// matchLevel tries each sibling in specificity order against the
// remaining segments, recursing into children on a prefix match.
func matchLevel(routes []*Route, segments []string, base string, params map[string]string) []Match {
	for _, route := range rankSiblings(routes) {
		extracted, rest, consumed, ok := matchPattern(route.Path, segments)
		if !ok {
			continue
		}

		merged := mergeParams(params, extracted)
		m := Match{
			Pathname: joinPaths(base, consumed),
			Params:   merged,
			Route:    route,
		}

		if len(route.Children) > 0 {
			if sub := matchLevel(route.Children, rest, m.Pathname, merged); sub != nil {
				return append([]Match{m}, sub...)
			}
			// A branch route only matches through one of its children.
			continue
		}

		if len(rest) == 0 {
			return []Match{m}
		}
		// Leaf with leftover segments: only a catch-all consumes the
		// remainder, and matchPattern already handled that case.
	}
	return nil
}

// matchPattern matches a route pattern against the head of segments.
// It returns the extracted params, the unconsumed tail, and the matched
// portion of the path.
func matchPattern(pattern string, segments []string) (params map[string]string, rest []string, consumed string, ok bool) {
	patSegs := splitPath(pattern)

	// Index route: matches only an exhausted path.
	if len(patSegs) == 0 {
		if len(segments) == 0 {
			return nil, nil, "", true
		}
		return nil, nil, "", false
	}

	params = make(map[string]string)
	var matched []string
	rest = segments

	for _, pat := range patSegs {
		if isCatchAll(pat) {
			name := strings.TrimPrefix(pat, "*")
			if name == "" {
				name = "*"
			}
			params[name] = decodeSegment(strings.Join(rest, "/"))
			matched = append(matched, rest...)
			rest = nil
			return params, rest, strings.Join(matched, "/"), true
		}
		if len(rest) == 0 {
			return nil, nil, "", false
		}
		seg := rest[0]
		if strings.HasPrefix(pat, ":") {
			params[pat[1:]] = decodeSegment(seg)
		} else if pat != seg {
			return nil, nil, "", false
		}
		matched = append(matched, seg)
		rest = rest[1:]
	}

	return params, rest, strings.Join(matched, "/"), true
}

// rankSiblings orders sibling routes by pattern specificity, compared
// segment by segment from the left: at the first position where two
// patterns differ, static outranks parameter outranks catch-all, so
// "a/:b" is tried before ":a/b". Longer patterns outrank their
// prefixes. The sort is stable, so first-declared wins among
// identically shaped siblings.
func rankSiblings(routes []*Route) []*Route {
	if len(routes) < 2 {
		return routes
	}
	ranked := make([]*Route, len(routes))
	copy(ranked, routes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return moreSpecific(ranked[i].Path, ranked[j].Path)
	})
	return ranked
}

// moreSpecific reports whether pattern a should be tried before b.
func moreSpecific(a, b string) bool {
	as, bs := splitPath(a), splitPath(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		sa, sb := segmentScore(as[i]), segmentScore(bs[i])
		if sa != sb {
			return sa > sb
		}
	}
	return len(as) > len(bs)
}

// segmentScore weights one segment: static 3, parameter 2, catch-all 1.
func segmentScore(seg string) int {
	switch {
	case isCatchAll(seg):
		return 1
	case strings.HasPrefix(seg, ":"):
		return 2
	default:
		return 3
	}
}

func isCatchAll(seg string) bool {
	return strings.HasPrefix(seg, "*")
}

// decodeSegment URL-decodes a path segment, falling back to the raw
// value when decoding fails.
func decodeSegment(seg string) string {
	decoded, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return decoded
}

func mergeParams(parent, extracted map[string]string) map[string]string {
	merged := make(map[string]string, len(parent)+len(extracted))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range extracted {
		merged[k] = v
	}
	return merged
}

// splitPath splits a path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func cleanPathname(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func joinPaths(base, rel string) string {
	if rel == "" {
		return base
	}
	if base == "" || base == "/" {
		return "/" + rel
	}
	return strings.TrimSuffix(base, "/") + "/" + rel
}
