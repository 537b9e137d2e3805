package topic

import "strings"

// Topic is the exact name under which data is published.
// Names are free-form strings; dot notation ("astr.base", "aint.contrib")
// is only significant to Wildcard keys.
type Topic string

// Segment syntax understood by Wildcard keys.
const (
	// Separator splits a name into segments.
	Separator = "."

	// AnySegment matches exactly one segment.
	AnySegment = "*"

	// AnySegments matches zero or more segments.
	AnySegments = "**"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the dot-separated parts of the name.
func (t Topic) Segments() []string {
	return Split(string(t))
}

// IsValid reports whether the topic can be published or subscribed to:
// it is non-empty and has no empty segment.
func (t Topic) IsValid() bool {
	s := string(t)
	if s == "" {
		return false
	}
	return !strings.HasPrefix(s, Separator) &&
		!strings.HasSuffix(s, Separator) &&
		!strings.Contains(s, Separator+Separator)
}

// Join builds a topic from segments.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}

// Split breaks s at each separator. An empty string has no segments.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}

// Names converts plain strings to topics.
func Names(names ...string) []Topic {
	out := make([]Topic, len(names))
	for i, n := range names {
		out[i] = Topic(n)
	}
	return out
}

// matchSegments reports whether name consumes the whole wildcard pattern.
func matchSegments(name, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == AnySegments {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for skip := 0; skip <= len(name); skip++ {
				if matchSegments(name[skip:], rest) {
					return true
				}
			}
			return false
		}

		if len(name) == 0 || (head != AnySegment && head != name[0]) {
			return false
		}
		name, pattern = name[1:], pattern[1:]
	}
	return len(name) == 0
}
