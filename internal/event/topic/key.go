package topic

import "strings"

// Kind discriminates the variants of Key.
type Kind uint8

const (
	// KindUnknown is the kind of the zero Key.
	KindUnknown Kind = iota

	// KindExact keys name one topic literally.
	KindExact

	// KindRegexp keys full-match names against a regular expression.
	KindRegexp

	// KindWildcard keys match dot segments with "*" and "**".
	KindWildcard

	// KindGlob keys match names with shell-style globs.
	KindGlob

	// KindFunc keys match names with a caller-supplied predicate.
	KindFunc
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindRegexp:
		return "regexp"
	case KindWildcard:
		return "wildcard"
	case KindGlob:
		return "glob"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// IsPattern reports whether keys of this kind are patterns.
func (k Kind) IsPattern() bool {
	return k >= KindRegexp && k <= KindFunc
}

// prefix is the textual marker used by Parse and Key.String.
func (k Kind) prefix() string {
	switch k {
	case KindExact:
		return "exact:"
	case KindRegexp:
		return "re:"
	case KindWildcard:
		return "wild:"
	case KindGlob:
		return "glob:"
	case KindFunc:
		return "func:"
	default:
		return ""
	}
}

// Pattern is a predicate over exact topic names.
// Implementations must match the entire name, never a substring.
type Pattern interface {
	Match(name Topic) bool
}

// Key is what subscribers subscribe to: either an exact topic name or a
// pattern over names. It is a closed variant; the zero Key is invalid.
//
// Keys are values. Two pattern keys built from the same kind and
// expression are equal and share one subscriber list in a mediator.
type Key struct {
	kind    Kind
	expr    string
	pattern Pattern
}

// Exact returns a key naming a single topic.
func Exact(name Topic) Key {
	return Key{kind: KindExact, expr: string(name)}
}

// Exacts returns one exact key per name.
func Exacts(names ...Topic) []Key {
	keys := make([]Key, len(names))
	for i, n := range names {
		keys[i] = Exact(n)
	}
	return keys
}

// Kind returns the key's variant.
func (k Key) Kind() Kind {
	return k.kind
}

// IsExact reports whether the key names a single topic.
func (k Key) IsExact() bool {
	return k.kind == KindExact
}

// IsPattern reports whether the key is a pattern.
func (k Key) IsPattern() bool {
	return k.kind.IsPattern()
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k.kind == KindUnknown
}

// Name returns the topic of an exact key, or "" for patterns.
func (k Key) Name() Topic {
	if k.kind != KindExact {
		return ""
	}
	return Topic(k.expr)
}

// Expr returns the source expression: the name of an exact key or the
// pattern text (the label for Func keys).
func (k Key) Expr() string {
	return k.expr
}

// ID returns a string that is equal for equal keys.
func (k Key) ID() string {
	return k.kind.prefix() + k.expr
}

// Equal reports whether two keys have the same kind and expression.
func (k Key) Equal(other Key) bool {
	return k.kind == other.kind && k.expr == other.expr
}

// Matches reports whether name is denoted by the key.
// Exact keys compare names for equality; patterns must match the whole name.
//
// Matches panics with *UnknownKeyKindError for the zero Key.
func (k Key) Matches(name Topic) bool {
	switch {
	case k.kind == KindExact:
		return string(name) == k.expr
	case k.kind.IsPattern():
		return k.pattern.Match(name)
	default:
		panic(&UnknownKeyKindError{Kind: k.kind})
	}
}

// String renders the key in the syntax accepted by Parse.
// Exact names render bare unless they collide with a pattern prefix.
func (k Key) String() string {
	if k.kind == KindExact && !hasKindPrefix(k.expr) {
		return k.expr
	}
	return k.ID()
}

// hasKindPrefix reports whether s starts with a Parse prefix.
func hasKindPrefix(s string) bool {
	for _, kind := range []Kind{KindExact, KindRegexp, KindWildcard, KindGlob, KindFunc} {
		if strings.HasPrefix(s, kind.prefix()) {
			return true
		}
	}
	return false
}
