package model

import "encoding/json"

// Result is the outcome of a single plugin analysis. Internally it is a
// tagged success/failure variant; on the wire both collapse into one JSON
// object where a present "error" key signals failure. Keeping the tag
// explicit means callers never have to probe map keys to know whether cost
// normalization is allowed to run.
type Result struct {
	// Data holds the plugin-defined domain mapping (e.g. {"walls": [...]}).
	// Nil on failure.
	Data map[string]any

	// ErrMsg is the failure message. Empty on success.
	ErrMsg string

	// Raw optionally carries the unparseable upstream response text.
	Raw string
}

// Success wraps a domain data map in a successful Result.
func Success(data map[string]any) Result {
	if data == nil {
		data = map[string]any{}
	}
	return Result{Data: data}
}

// Failure builds a failed Result with the given message.
func Failure(msg string) Result {
	return Result{ErrMsg: msg}
}

// FailureRaw builds a failed Result carrying the raw upstream text.
func FailureRaw(msg, raw string) Result {
	return Result{ErrMsg: msg, Raw: raw}
}

// Failed reports whether the result is the failure variant.
func (r Result) Failed() bool {
	return r.ErrMsg != ""
}

// CostBlock returns the result's cost_estimates map, creating and attaching
// an empty one on first use. Returns nil for failed results.
func (r Result) CostBlock() map[string]any {
	if r.Failed() {
		return nil
	}
	if cb, ok := r.Data["cost_estimates"].(map[string]any); ok {
		return cb
	}
	cb := map[string]any{}
	r.Data["cost_estimates"] = cb
	return cb
}

// MarshalJSON renders the wire format: the domain object as-is on success,
// {"error": ..., "raw_response": ...} on failure.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		wire := map[string]any{"error": r.ErrMsg}
		if r.Raw != "" {
			wire["raw_response"] = r.Raw
		}
		return json.Marshal(wire)
	}
	return json.Marshal(r.Data)
}

// UnmarshalJSON restores the tag from the wire object's "error" key.
func (r *Result) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if msg, ok := m["error"].(string); ok && msg != "" {
		r.ErrMsg = msg
		r.Raw, _ = m["raw_response"].(string)
		r.Data = nil
		return nil
	}
	r.Data = m
	r.ErrMsg = ""
	r.Raw = ""
	return nil
}
