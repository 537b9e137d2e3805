package scenario

import (
	"context"
	"math"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mediator/internal/event"
	"github.com/dshills/mediator/internal/event/topic"
	"github.com/dshills/mediator/internal/reduce"
)

func runDemo(t *testing.T, name string) *Report {
	t.Helper()
	s, err := Demo(name)
	require.NoError(t, err)

	report, err := NewRunner(WithLogger(slogt.New(t))).Run(context.Background(), s)
	require.NoError(t, err)
	return report
}

func TestRun_Strength(t *testing.T) {
	report := runDemo(t, "strength")

	assert.Equal(t, []float64{0}, report.Values(StageInitial))
	assert.Equal(t, []float64{0, 14, 16, 13, 9}, report.Values(StageNotification))
	assert.Equal(t, []float64{9}, report.Values(StageFinal))
	for _, e := range report.Entries {
		assert.Equal(t, topic.Topic("astr"), e.Name)
	}
}

func TestRun_Intellect(t *testing.T) {
	report := runDemo(t, "intellect")

	assert.Equal(t, []float64{0}, report.Values(StageInitial))
	assert.Equal(t, []float64{0, 12, 13, 11, 9}, report.Values(StageNotification))
	assert.Equal(t, []float64{9}, report.Values(StageFinal))
}

func TestRun_Party(t *testing.T) {
	report := runDemo(t, "party")

	assert.Equal(t, []float64{30, 52, 26}, report.Values(StageInitial))
	assert.Equal(t, []float64{
		30, 52, 26, // replay to the watcher
		30, 42, 21, // cleric drops to 12
		30, 72, 36, // fighter also counts as the rogue
	}, report.Values(StageNotification))
	assert.Equal(t, []float64{30, 72, 36}, report.Values(StageFinal))

	require.Len(t, report.Entries, 15)
	assert.Equal(t, topic.Topic("party.hp.max"), report.Entries[0].Name)
	assert.Equal(t, topic.Topic("party.hp.weighted"), report.Entries[14].Name)
}

func TestRun_ObserversSeeEveryMediator(t *testing.T) {
	var events int
	counter := event.ObserverFunc(func(event.Event) error {
		events++
		return nil
	})
	s, err := Demo("strength")
	require.NoError(t, err)
	r := NewRunner(WithLogger(slogt.New(t)), WithObserver(counter))

	_, err = r.Run(context.Background(), s)
	require.NoError(t, err)
	first := events

	_, err = r.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Positive(t, first)
	assert.Equal(t, 2*first, events)
}

func TestRun_ScriptFailureIsReturned(t *testing.T) {
	s := &Scenario{
		Name: "broken",
		Values: []ValueSpec{
			{Name: "leaf", Value: 1},
			{Name: "agg", Kind: KindDynamic, Reducer: ReducerLua, Script: `function reduce(acc, v) error("no") end`},
		},
		Watch: []WatchSpec{{Key: "agg"}},
		Steps: []Step{{Subscribe: &SubscribeStep{Value: "agg", Keys: []string{"leaf"}}}},
	}
	require.NoError(t, s.Validate())

	_, err := NewRunner(WithLogger(slogt.New(t))).Run(context.Background(), s)

	assert.ErrorIs(t, err, reduce.ErrScript)
	assert.Contains(t, err.Error(), "scenario broken")
}

func TestRun_CanceledContext(t *testing.T) {
	s, err := Demo("strength")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRunner(WithLogger(slogt.New(t))).Run(ctx, s)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SeedOverride(t *testing.T) {
	seed := 100.0
	s := &Scenario{
		Name: "seeded",
		Values: []ValueSpec{
			{Name: "x", Value: 5},
			{Name: "total", Kind: KindDynamic, Seed: &seed, Subscribe: []string{"x", "missing"}},
		},
		Watch: []WatchSpec{{Key: "total"}},
	}

	report, err := NewRunner(WithLogger(slogt.New(t))).Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, []float64{105}, report.Values(StageInitial))
}

func TestRun_UnknownValueInStep(t *testing.T) {
	s := &Scenario{
		Name:  "bad",
		Steps: []Step{{Set: "ghost", Value: 1}},
	}

	_, err := NewRunner(WithLogger(slogt.New(t))).Run(context.Background(), s)

	assert.ErrorIs(t, err, ErrUnknownValue)
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Index)
}

func TestRun_EmptyMaxAggregateReportsSeed(t *testing.T) {
	s := &Scenario{
		Name: "empty",
		Values: []ValueSpec{
			{Name: "hp.max", Kind: KindDynamic, Reducer: "max", Subscribe: []string{"wild:party.*.hp"}},
		},
		Watch: []WatchSpec{{Key: "hp.max"}},
	}

	report, err := NewRunner(WithLogger(slogt.New(t))).Run(context.Background(), s)
	require.NoError(t, err)

	negInf := math.Inf(-1)
	assert.Equal(t, []float64{negInf}, report.Values(StageInitial))
	assert.Equal(t, []float64{negInf}, report.Values(StageNotification))
	assert.Equal(t, []float64{negInf}, report.Values(StageFinal))

	_, err = report.JSON()
	assert.NoError(t, err)
}
