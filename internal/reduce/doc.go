// Package reduce provides the folding functions dynamic values use to
// combine the data of their dependencies.
//
// The numeric reducers (Sum, Product, Min, Max, Count) are generic over
// Number. Scenario files select float64 reducers by name through ByName,
// or supply a Lua script:
//
//	r, err := reduce.NewLua(`function reduce(acc, v) return acc + v * 2 end`)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	total := reduce.Fold([]float64{1, 2}, 0, r.Func()) // 6
package reduce
