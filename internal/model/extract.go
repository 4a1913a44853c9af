package model

// Items returns the result's line items under key as a slice of maps,
// tolerating the loose shapes LLM output produces. Missing or mistyped keys
// yield nil.
func (r Result) Items(key string) []map[string]any {
	if r.Failed() {
		return nil
	}
	raw, ok := r.Data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// HasCost reports whether the result already carries a non-null numeric
// value for the given cost_estimates field, in which case the calculators
// leave the block alone.
func (r Result) HasCost(field string) bool {
	if r.Failed() {
		return false
	}
	cb, ok := r.Data["cost_estimates"].(map[string]any)
	if !ok {
		return false
	}
	switch cb[field].(type) {
	case float64, int, int64:
		return true
	}
	return false
}

// Str returns a string field from a line item, "" when absent or mistyped.
func Str(item map[string]any, key string) string {
	s, _ := item[key].(string)
	return s
}

// Num returns a numeric field from a line item. The second return is false
// when the field is absent or not a JSON number.
func Num(item map[string]any, key string) (float64, bool) {
	switch n := item[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// NilIfZero converts a zero total to nil, matching the wire convention that
// absent costs are null rather than 0.
func NilIfZero(v float64) any {
	if v <= 0 {
		return nil
	}
	return v
}
