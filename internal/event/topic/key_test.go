package topic

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExact(t *testing.T) {
	k := Exact("a1")

	assert.True(t, k.IsExact())
	assert.False(t, k.IsPattern())
	assert.Equal(t, KindExact, k.Kind())
	assert.Equal(t, Topic("a1"), k.Name())
	assert.True(t, k.Matches("a1"))
	assert.False(t, k.Matches("a10"))
	assert.False(t, k.Matches("a"))
}

func TestRegexp_FullMatch(t *testing.T) {
	k, err := Regexp(`a\d`)
	require.NoError(t, err)

	assert.True(t, k.IsPattern())
	assert.Equal(t, Topic(""), k.Name())
	assert.True(t, k.Matches("a1"))
	assert.True(t, k.Matches("a2"))
	assert.False(t, k.Matches("b1"))
	assert.False(t, k.Matches("a10"), "pattern must match the whole name")
	assert.False(t, k.Matches("xa1"), "pattern must match the whole name")
}

func TestRegexp_AlternationIsAnchored(t *testing.T) {
	k := MustRegexp(`a1|b1`)

	assert.True(t, k.Matches("a1"))
	assert.True(t, k.Matches("b1"))
	assert.False(t, k.Matches("a1x"))
	assert.False(t, k.Matches("xb1"))
}

func TestRegexp_Invalid(t *testing.T) {
	_, err := Regexp(`a(`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	var ipe *InvalidPatternError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, KindRegexp, ipe.Kind)
	assert.Equal(t, `a(`, ipe.Expr)
	assert.NotNil(t, ipe.Unwrap())

	_, err = Regexp("")
	assert.ErrorIs(t, err, ErrInvalidPattern)

	assert.Panics(t, func() { MustRegexp(`[`) })
}

func TestWildcard(t *testing.T) {
	k, err := Wildcard("stats.*.base")
	require.NoError(t, err)

	assert.Equal(t, KindWildcard, k.Kind())
	assert.True(t, k.Matches("stats.str.base"))
	assert.False(t, k.Matches("stats.str.adj"))
	assert.False(t, k.Matches(""))

	multi := MustWildcard("stats.**")
	assert.True(t, multi.Matches("stats"))
	assert.True(t, multi.Matches("stats.str.base"))
	assert.False(t, multi.Matches("stat"))
}

func TestWildcard_Invalid(t *testing.T) {
	for _, p := range []string{"", "stats..base", "stats.b*se", ".stats", "stats.***"} {
		t.Run(p, func(t *testing.T) {
			_, err := Wildcard(p)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
	assert.Panics(t, func() { MustWildcard("a..b") })
}

func TestGlob(t *testing.T) {
	k, err := Glob("astr_*")
	require.NoError(t, err)

	assert.Equal(t, KindGlob, k.Kind())
	assert.True(t, k.Matches("astr_base"))
	assert.True(t, k.Matches("astr_"))
	assert.False(t, k.Matches("aint_base"))

	q, err := Glob("a?")
	require.NoError(t, err)
	assert.True(t, q.Matches("a1"))
	assert.False(t, q.Matches("a10"))

	_, err = Glob("")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestFunc(t *testing.T) {
	k := Func("short", func(name Topic) bool { return len(name) <= 2 })

	assert.Equal(t, KindFunc, k.Kind())
	assert.True(t, k.Matches("a1"))
	assert.False(t, k.Matches("a10"))
	assert.Equal(t, "func:short", k.String())

	assert.Panics(t, func() { Func("nil", nil) })
}

func TestKey_Equal(t *testing.T) {
	assert.True(t, Exact("a1").Equal(Exact("a1")))
	assert.False(t, Exact("a1").Equal(Exact("a2")))
	assert.True(t, MustRegexp(`a\d`).Equal(MustRegexp(`a\d`)))
	assert.False(t, MustRegexp(`a\d`).Equal(MustWildcard(`a\d`)))
	assert.False(t, Exact("a1").Equal(MustRegexp("a1")))
	assert.Equal(t, MustRegexp(`a\d`).ID(), MustRegexp(`a\d`).ID())
}

func TestKey_ZeroPanics(t *testing.T) {
	var k Key

	assert.True(t, k.IsZero())
	assert.False(t, k.IsExact())
	assert.False(t, k.IsPattern())

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrUnknownKeyKind))
		assert.True(t, strings.Contains(err.Error(), "unknown"))
	}()
	k.Matches("a1")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "exact", KindExact.String())
	assert.Equal(t, "regexp", KindRegexp.String())
	assert.Equal(t, "wildcard", KindWildcard.String())
	assert.Equal(t, "glob", KindGlob.String())
	assert.Equal(t, "func", KindFunc.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.False(t, KindExact.IsPattern())
	assert.True(t, KindGlob.IsPattern())
}

func TestExacts(t *testing.T) {
	keys := Exacts("a1", "a2")
	require.Len(t, keys, 2)
	assert.True(t, keys[1].Equal(Exact("a2")))
}
