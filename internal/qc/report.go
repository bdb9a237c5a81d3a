package qc

import (
	"encoding/json"
	"errors"
)

// Report is the model's parsed answer, passed through untouched. Its shape is
// whatever the model sent; the prompt asks for summary, anomalies and
// suggested_actions but nothing here enforces them.
type Report struct {
	// Value is the decoded reply (usually map[string]any).
	Value any

	raw json.RawMessage
}

// MarshalJSON emits the reply as received, keeping the model's key order.
func (r Report) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(r.Value)
}

// Degraded replaces a Report when the model could not be reached or did not
// answer with usable JSON. Raw carries the unparsed reply; RawException the
// transport error.
type Degraded struct {
	Error        string `json:"error"`
	Raw          string `json:"raw,omitempty"`
	RawException string `json:"raw_exception,omitempty"`
}

// Result holds exactly one of Report or Degraded.
type Result struct {
	Report   *Report
	Degraded *Degraded
}

// IsDegraded reports whether the run produced a diagnostic payload instead of a report.
func (r Result) IsDegraded() bool { return r.Degraded != nil }

// MarshalJSON encodes whichever variant is set.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Degraded != nil:
		return json.Marshal(r.Degraded)
	case r.Report != nil:
		return json.Marshal(r.Report)
	default:
		return nil, errors.New("qc: empty result")
	}
}
