package routing

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled URL segment pattern.
//
// A pattern is a slash-separated sequence of segments without a leading
// slash. Each segment is either a literal ("settings"), a single-segment
// placeholder ("{id}"), or a greedy placeholder ("{rest:path}") that
// consumes one or more segments. The empty pattern matches the empty path
// and is used by index pages.
type Pattern struct {
	raw        string
	re         *regexp.Regexp
	paramNames []string
}

// paramNameRe restricts placeholder names to identifiers so they can be
// used as regexp group names.
var paramNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CompilePattern parses and compiles a segment pattern.
func CompilePattern(raw string) (*Pattern, error) {
	if strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("routing: pattern must not start with a slash: %q", raw)
	}

	if raw == "" {
		return &Pattern{raw: raw}, nil
	}

	segments := strings.Split(raw, "/")
	reSegments := make([]string, 0, len(segments))
	var paramNames []string

	for _, seg := range segments {
		switch {
		case seg == "":
			return nil, fmt.Errorf("routing: pattern contains an empty segment: %q", raw)

		case !strings.HasPrefix(seg, "{"):
			if strings.ContainsAny(seg, "{}") {
				return nil, fmt.Errorf("routing: literal segment contains braces: %q", seg)
			}
			reSegments = append(reSegments, regexp.QuoteMeta(seg))

		case !strings.HasSuffix(seg, "}"):
			return nil, fmt.Errorf("routing: placeholder is not terminated: %q", seg)

		case strings.HasSuffix(seg, ":path}"):
			name := seg[1 : len(seg)-len(":path}")]
			if !paramNameRe.MatchString(name) {
				return nil, fmt.Errorf("routing: invalid placeholder name: %q", seg)
			}
			paramNames = append(paramNames, name)
			reSegments = append(reSegments, "(?P<"+name+">.+)")

		default:
			name := seg[1 : len(seg)-1]
			if !paramNameRe.MatchString(name) {
				return nil, fmt.Errorf("routing: invalid placeholder name: %q", seg)
			}
			paramNames = append(paramNames, name)
			reSegments = append(reSegments, "(?P<"+name+">[^/]+)")
		}
	}

	re, err := regexp.Compile("^" + strings.Join(reSegments, "/"))
	if err != nil {
		return nil, fmt.Errorf("routing: cannot compile pattern %q: %w", raw, err)
	}

	return &Pattern{raw: raw, re: re, paramNames: paramNames}, nil
}

// MustCompilePattern is CompilePattern that panics on error. For use with
// patterns known to be valid at compile time.
func MustCompilePattern(raw string) *Pattern {
	p, err := CompilePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern source text.
func (p *Pattern) String() string { return p.raw }

// ParamNames returns the placeholder names in declaration order.
func (p *Pattern) ParamNames() []string { return p.paramNames }

// Match attempts to match the pattern against the start of path.
//
// The path must not have a leading slash. On success it returns the raw
// (uncoerced) placeholder captures and the unmatched remainder of the path,
// again without a leading slash. The match always ends on a segment
// boundary; a pattern "foo" does not match the path "foobar".
func (p *Pattern) Match(path string) (ok bool, raw map[string]string, rest string) {
	if p.raw == "" {
		return true, nil, path
	}

	loc := p.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return false, nil, path
	}

	end := loc[1]
	if end < len(path) && path[end] != '/' {
		return false, nil, path
	}

	if len(p.paramNames) > 0 {
		raw = make(map[string]string, len(p.paramNames))
		for i, name := range p.re.SubexpNames() {
			if name == "" || loc[2*i] < 0 {
				continue
			}
			raw[name] = path[loc[2*i]:loc[2*i+1]]
		}
	}

	rest = path[end:]
	rest = strings.TrimPrefix(rest, "/")
	return true, raw, rest
}
