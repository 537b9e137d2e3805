// Package topic provides topic names and subscription keys for the mediator.
//
// # Topics
//
// A Topic is the exact name a value is published under:
//
//	astr_base
//	stats.str.base
//	aint_contrib
//
// # Keys
//
// Subscribers subscribe to a Key, which is either an exact topic or a
// pattern over topic names. Patterns are resolved against the names
// published at the time of the query, never at subscription time.
//
// Pattern kinds:
//
//   - Regexp: regular expression matched against the whole name
//   - Wildcard: dot segments, "*" for one segment and "**" for any number
//   - Glob: shell-style "*" and "?" over the whole name
//   - Func: arbitrary predicate identified by a label
//
// Invalid expressions are rejected when the key is built, with an error
// matching ErrInvalidPattern.
//
// # Textual Form
//
// Parse accepts "re:", "wild:", "glob:" and "exact:" prefixes; anything
// else is an exact name:
//
//	k, _ := topic.Parse(`re:a\d`)
//	k.Matches("a1")  // true
//	k.Matches("a10") // false
package topic
