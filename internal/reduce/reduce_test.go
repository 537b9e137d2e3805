package reduce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_Builtins(t *testing.T) {
	values := []int{3, -1, 4}

	assert.Equal(t, 6, Fold(values, 0, Sum[int]))
	assert.Equal(t, -12, Fold(values, 1, Product[int]))
	assert.Equal(t, -1, Fold(values, math.MaxInt, Min[int]))
	assert.Equal(t, 4, Fold(values, math.MinInt, Max[int]))
	assert.Equal(t, 3, Fold(values, 0, Count[int]))
}

func TestFold_EmptyYieldsSeed(t *testing.T) {
	assert.Equal(t, 7.5, Fold(nil, 7.5, Sum[float64]))
}

func TestFold_Order(t *testing.T) {
	concat := func(acc, v string) string { return acc + v }

	assert.Equal(t, "abc", Fold([]string{"b", "c"}, "a", concat))
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"", 6},
		{"sum", 6},
		{"product", 6},
		{"min", 1},
		{"max", 3},
		{"count", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Fold([]float64{1, 2, 3}, b.Seed, b.Func))
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("median")

	assert.ErrorIs(t, err, ErrUnknownReducer)
	assert.Contains(t, err.Error(), `"median"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"count", "max", "min", "product", "sum"}, Names())
}
