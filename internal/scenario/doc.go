// Package scenario runs declarative scenarios against a fresh mediator.
//
// A scenario file (TOML or YAML) declares static and dynamic values, keys
// to watch and a list of steps. The runner reports the watched data before
// the steps, on every notification of a watched topic, and at the end:
//
//	s, err := scenario.Demo("strength")
//	if err != nil {
//	    return err
//	}
//	report, err := scenario.NewRunner().Run(ctx, s)
//	if err != nil {
//	    return err
//	}
//	report.WriteText(os.Stdout, language.English)
//	// [initial] astr = 0
//	// [notification] astr = 0
//	// [notification] astr = 14
//	// ...
//
// Keys use the topic.Parse syntax: a bare name is exact, and the "re:",
// "wild:" and "glob:" prefixes select patterns.
package scenario
