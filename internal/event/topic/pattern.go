package topic

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/match"
)

var (
	errEmptyPattern    = errors.New("pattern is empty")
	errEmptySegment    = errors.New("pattern has an empty segment")
	errPartialWildcard = errors.New("wildcards must span a whole segment")
)

// Regexp returns a key matching names against a regular expression.
// The expression must match the entire name: "a1" does not match "a10".
func Regexp(expr string) (Key, error) {
	if expr == "" {
		return Key{}, &InvalidPatternError{Kind: KindRegexp, Expr: expr, Err: errEmptyPattern}
	}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Key{}, &InvalidPatternError{Kind: KindRegexp, Expr: expr, Err: err}
	}
	return Key{kind: KindRegexp, expr: expr, pattern: regexpPattern{re: re}}, nil
}

// MustRegexp is like Regexp but panics if the expression is invalid.
func MustRegexp(expr string) Key {
	k, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return k
}

// Wildcard returns a key matching dot-separated names.
// A "*" segment matches exactly one segment and a "**" segment matches
// zero or more:
//
//	stats.*        matches stats.str, not stats.str.base
//	stats.**       matches stats, stats.str, stats.str.base
//	*.base         matches str.base, int.base
func Wildcard(pattern string) (Key, error) {
	if pattern == "" {
		return Key{}, &InvalidPatternError{Kind: KindWildcard, Expr: pattern, Err: errEmptyPattern}
	}
	segments := Split(pattern)
	for _, seg := range segments {
		switch {
		case seg == "":
			return Key{}, &InvalidPatternError{Kind: KindWildcard, Expr: pattern, Err: errEmptySegment}
		case seg == AnySegment || seg == AnySegments:
		case strings.Contains(seg, AnySegment):
			return Key{}, &InvalidPatternError{Kind: KindWildcard, Expr: pattern, Err: errPartialWildcard}
		}
	}
	return Key{kind: KindWildcard, expr: pattern, pattern: wildcardPattern{segments: segments}}, nil
}

// MustWildcard is like Wildcard but panics if the pattern is invalid.
func MustWildcard(pattern string) Key {
	k, err := Wildcard(pattern)
	if err != nil {
		panic(err)
	}
	return k
}

// Glob returns a key matching whole names with a shell-style glob:
// "*" matches any run of characters and "?" any single character.
func Glob(pattern string) (Key, error) {
	if pattern == "" {
		return Key{}, &InvalidPatternError{Kind: KindGlob, Expr: pattern, Err: errEmptyPattern}
	}
	return Key{kind: KindGlob, expr: pattern, pattern: globPattern{expr: pattern}}, nil
}

// Func returns a key backed by an arbitrary predicate.
// The label identifies the key: Func keys with the same label are equal
// regardless of fn, so callers must keep labels unique per predicate.
func Func(label string, fn func(Topic) bool) Key {
	if fn == nil {
		panic("topic: Func called with nil predicate")
	}
	return Key{kind: KindFunc, expr: label, pattern: funcPattern(fn)}
}

type regexpPattern struct {
	re *regexp.Regexp
}

func (p regexpPattern) Match(name Topic) bool {
	return p.re.MatchString(string(name))
}

type wildcardPattern struct {
	segments []string
}

func (p wildcardPattern) Match(name Topic) bool {
	if name == "" {
		return false
	}
	return matchSegments(name.Segments(), p.segments)
}

type globPattern struct {
	expr string
}

func (p globPattern) Match(name Topic) bool {
	return match.Match(string(name), p.expr)
}

type funcPattern func(Topic) bool

func (p funcPattern) Match(name Topic) bool {
	return p(name)
}
