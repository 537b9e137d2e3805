package scenario

import (
	"io"
	"math"
	"strconv"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/mediator/internal/event/topic"
)

// Stage marks when a report entry was recorded.
type Stage string

// Report stages.
const (
	StageInitial      Stage = "initial"
	StageNotification Stage = "notification"
	StageFinal        Stage = "final"
)

// Entry is one reported datum.
type Entry struct {
	Stage Stage
	Name  topic.Topic
	Value float64
}

// Report is the ordered output of a scenario run.
type Report struct {
	Scenario    string
	Description string
	Entries     []Entry
}

func (r *Report) add(stage Stage, name topic.Topic, v float64) {
	r.Entries = append(r.Entries, Entry{Stage: stage, Name: name, Value: v})
}

// Values returns the values recorded at stage, in order.
func (r *Report) Values(stage Stage) []float64 {
	var values []float64
	for _, e := range r.Entries {
		if e.Stage == stage {
			values = append(values, e.Value)
		}
	}
	return values
}

// WriteText writes one "[stage] name = value" line per entry, formatting
// numbers for tag.
func (r *Report) WriteText(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	for _, e := range r.Entries {
		if _, err := p.Fprintf(w, "[%s] %s = %s\n", e.Stage, e.Name, formatValue(p, e.Value)); err != nil {
			return err
		}
	}
	return nil
}

// formatValue prints whole numbers as integers, which the printer groups
// by locale, infinities and NaN as +Inf, -Inf and NaN, and anything else
// in the shortest float form.
func formatValue(p *message.Printer, v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return p.Sprintf("%d", int64(v))
	}
	return p.Sprintf("%v", v)
}

type jsonEntry struct {
	Stage string `json:"stage"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// jsonValue returns v as a JSON number, or as the string "+Inf", "-Inf"
// or "NaN" when JSON has no number for it.
func jsonValue(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

// JSON renders the report as indented JSON:
//
//	{"scenario": "strength", "entries": [{"stage": "initial", "name": "astr", "value": 0}, ...]}
//
// Infinite and NaN values, such as the seed of an empty min or max
// aggregate, are written as strings.
func (r *Report) JSON() ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	if doc, err = sjson.SetBytes(doc, "scenario", r.Scenario); err != nil {
		return nil, err
	}
	if r.Description != "" {
		if doc, err = sjson.SetBytes(doc, "description", r.Description); err != nil {
			return nil, err
		}
	}
	if doc, err = sjson.SetRawBytes(doc, "entries", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, e := range r.Entries {
		je := jsonEntry{Stage: string(e.Stage), Name: string(e.Name), Value: jsonValue(e.Value)}
		if doc, err = sjson.SetBytes(doc, "entries.-1", je); err != nil {
			return nil, err
		}
	}
	if doc, err = sjson.SetBytes(doc, "notifications", len(r.Values(StageNotification))); err != nil {
		return nil, err
	}

	return pretty.Pretty(doc), nil
}
