package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strengthYAML = `
name: strength-yaml
values:
  - name: astr_base
    value: 14
  - name: astr_adj
    value: 2
  - name: astr
    kind: dynamic
watch:
  - key: astr
steps:
  - subscribe: {value: astr, keys: [astr_base]}
  - subscribe: {value: astr, keys: [astr_adj]}
  - set: astr_adj
    value: -1
  - set: astr_base
    value: 10
`

func TestLoadFile_YAMLMatchesTOMLDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strength.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strengthYAML), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strength-yaml", s.Name)

	report, err := NewRunner(WithLogger(slogt.New(t))).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 14, 16, 13, 9}, report.Values(StageNotification))
}

func TestLoadFile_NameDefaultsToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[values]]\nname = \"x\"\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "tiny", s.Name)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("scenario.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse("x.toml", []byte("name = \"x\"\ncolour = \"red\"\n"), FormatTOML)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "x.toml", pe.Path)

	_, err = Parse("x.yaml", []byte("name: x\ncolour: red\n"), FormatYAML)
	require.ErrorAs(t, err, &pe)
}

func TestValidate(t *testing.T) {
	s := &Scenario{
		Values: []ValueSpec{
			{Name: "a", Value: 1},
			{Name: "a", Value: 2},
			{Name: "s", Reducer: "sum"},
			{Name: "d", Kind: KindDynamic, Reducer: "median"},
			{Name: "l", Kind: KindDynamic, Reducer: ReducerLua},
			{Name: "k", Kind: "weird"},
			{Name: "p", Kind: KindDynamic, Subscribe: []string{"re:("}},
		},
		Watch: []WatchSpec{{Key: "wild:a.**b"}},
		Steps: []Step{
			{},
			{Set: "d", Value: 1},
			{Set: "ghost"},
			{Subscribe: &SubscribeStep{Value: "a"}},
			{Publish: &PublishStep{Value: "a", Topics: []string{"bad..topic"}}},
			{Set: "a", Publish: &PublishStep{Value: "a"}},
		},
	}

	err := s.Validate()

	assert.ErrorIs(t, err, ErrDuplicateValue)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.ErrorIs(t, err, ErrUnknownValue)
	for _, want := range []string{
		`static value "s" has dynamic settings`,
		`"median"`,
		`"l" uses the lua reducer without a script`,
		`unknown kind "weird"`,
		"step 1:",
		"step 2: invalid step: cannot set dynamic value",
		`step 3: unknown value: "ghost"`,
		`step 4: invalid step: static value "a" cannot subscribe`,
		`bad topic "bad..topic"`,
		"got 2",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestDemoNames(t *testing.T) {
	assert.Equal(t, []string{"intellect", "party", "strength"}, DemoNames())

	_, err := Demo("dexterity")
	assert.ErrorIs(t, err, ErrUnknownDemo)
	assert.Contains(t, err.Error(), "intellect, party, strength")
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml": FormatTOML,
		"a.TOML": FormatTOML,
		"a.yaml": FormatYAML,
		"a.yml":  FormatYAML,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}
