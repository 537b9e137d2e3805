// Package value implements reactive values on top of an event.Mediator.
//
// A Static value holds data set by its owner. An Aggregate value folds
// the data published under a set of keys, so it follows its dependencies
// without holding references to them:
//
//	m := event.New[int]()
//	base := value.NewStatic(m, "str_base", 10)
//	value.NewStatic(m, "str_adj", 2)
//	str := value.NewDynamic(m, "str")
//	str.Subscribe(topic.MustRegexp(`str_.+`))
//	str.Current() // 12
//	base.Set(8)   // str's subscribers are notified
//	str.Current() // 10
//
// Values are registered on construction and never removed.
package value
