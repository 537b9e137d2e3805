package topic

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed keys a Parser keeps.
const DefaultCacheSize = 256

// Parse builds a key from its textual form:
//
//	re:<expr>       Regexp
//	wild:<pattern>  Wildcard
//	glob:<pattern>  Glob
//	exact:<name>    Exact
//	<name>          Exact
//
// Func keys have no textual form; "func:" is rejected.
func Parse(spec string) (Key, error) {
	switch {
	case strings.HasPrefix(spec, KindRegexp.prefix()):
		return Regexp(strings.TrimPrefix(spec, KindRegexp.prefix()))
	case strings.HasPrefix(spec, KindWildcard.prefix()):
		return Wildcard(strings.TrimPrefix(spec, KindWildcard.prefix()))
	case strings.HasPrefix(spec, KindGlob.prefix()):
		return Glob(strings.TrimPrefix(spec, KindGlob.prefix()))
	case strings.HasPrefix(spec, KindFunc.prefix()):
		return Key{}, &InvalidPatternError{Kind: KindFunc, Expr: spec}
	case strings.HasPrefix(spec, KindExact.prefix()):
		spec = strings.TrimPrefix(spec, KindExact.prefix())
	}
	if !Topic(spec).IsValid() {
		return Key{}, &InvalidPatternError{Kind: KindExact, Expr: spec}
	}
	return Exact(Topic(spec)), nil
}

// ParseAll parses every spec, stopping at the first error.
func ParseAll(specs ...string) ([]Key, error) {
	keys := make([]Key, 0, len(specs))
	for _, s := range specs {
		k, err := Parse(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Parser parses key specs and remembers recent results so repeated specs
// share one compiled pattern. It is safe for concurrent use.
type Parser struct {
	cache *lru.Cache[string, Key]
}

// NewParser returns a parser caching up to size keys.
// A non-positive size selects DefaultCacheSize.
func NewParser(size int) *Parser {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for non-positive sizes.
	cache, _ := lru.New[string, Key](size)
	return &Parser{cache: cache}
}

// Parse is like the package-level Parse but consults the cache first.
// Failed parses are not cached.
func (p *Parser) Parse(spec string) (Key, error) {
	if k, ok := p.cache.Get(spec); ok {
		return k, nil
	}
	k, err := Parse(spec)
	if err != nil {
		return Key{}, err
	}
	p.cache.Add(spec, k)
	return k, nil
}

// ParseAll parses every spec through the cache.
func (p *Parser) ParseAll(specs ...string) ([]Key, error) {
	keys := make([]Key, 0, len(specs))
	for _, s := range specs {
		k, err := p.Parse(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Len returns the number of cached keys.
func (p *Parser) Len() int {
	return p.cache.Len()
}
