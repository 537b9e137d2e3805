package reduce

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Func folds one value into an accumulator.
type Func[T any] func(acc, v T) T

// Number is the set of types the built-in reducers work on.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum adds v to acc.
func Sum[T Number](acc, v T) T {
	return acc + v
}

// Product multiplies acc by v.
func Product[T Number](acc, v T) T {
	return acc * v
}

// Min returns the smaller of acc and v.
func Min[T Number](acc, v T) T {
	if v < acc {
		return v
	}
	return acc
}

// Max returns the larger of acc and v.
func Max[T Number](acc, v T) T {
	if v > acc {
		return v
	}
	return acc
}

// Count ignores v and increments acc.
func Count[T Number](acc, _ T) T {
	return acc + 1
}

// Fold applies fn to every value in order, starting from seed.
func Fold[T any](values []T, seed T, fn Func[T]) T {
	acc := seed
	for _, v := range values {
		acc = fn(acc, v)
	}
	return acc
}

// Builtin pairs a float64 reducer with the seed it is folded from.
type Builtin struct {
	Name string
	Func Func[float64]
	Seed float64
}

var builtins = map[string]Builtin{
	"sum":     {Name: "sum", Func: Sum[float64], Seed: 0},
	"product": {Name: "product", Func: Product[float64], Seed: 1},
	"min":     {Name: "min", Func: Min[float64], Seed: math.Inf(1)},
	"max":     {Name: "max", Func: Max[float64], Seed: math.Inf(-1)},
	"count":   {Name: "count", Func: Count[float64], Seed: 0},
}

// ByName returns the built-in float64 reducer registered under name.
// An empty name selects "sum".
func ByName(name string) (Builtin, error) {
	if name == "" {
		name = "sum"
	}
	b, ok := builtins[name]
	if !ok {
		return Builtin{}, fmt.Errorf("%w: %q", ErrUnknownReducer, name)
	}
	return b, nil
}

// Names returns the built-in reducer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
