package llmjson

import (
	"encoding/json"
	"strings"
)

const (
	jsonFence = "```json"
	fence     = "```"
)

// Result is the outcome of Extract. Exactly one variant is meaningful:
// OK with Value, or !OK with Raw and Reason.
type Result struct {
	OK     bool
	Value  any
	Raw    string
	Reason string

	cleaned string
}

// StripFences removes a leading ```json marker, a leading ``` marker and a
// trailing ``` marker, in that order, each only when present at the edge of
// the trimmed text. Fences anywhere else are left alone. A doubled fence
// ("``````x``````") only loses one layer per call.
func StripFences(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, jsonFence) {
		t = strings.TrimSpace(t[len(jsonFence):])
	}
	if strings.HasPrefix(t, fence) {
		t = strings.TrimSpace(t[len(fence):])
	}
	if strings.HasSuffix(t, fence) {
		t = strings.TrimSpace(t[:len(t)-len(fence)])
	}
	return t
}

// Extract strips fences from model output and strictly parses the rest.
// Parse failures are reported through the result, never as an error.
func Extract(text string) Result {
	cleaned := StripFences(text)
	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return Result{Raw: text, Reason: err.Error()}
	}
	return Result{OK: true, Value: v, Raw: text, cleaned: cleaned}
}

// JSON returns the parsed payload as the model sent it, with key order kept.
// It is nil when r is not OK.
func (r Result) JSON() json.RawMessage {
	if !r.OK {
		return nil
	}
	return json.RawMessage(r.cleaned)
}
