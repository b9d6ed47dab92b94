package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseScore extracts a numeric rating from a raw response value. Feedback
// payloads are inconsistent: the value may be a number, a numeric string, a
// JSON document carrying a "score" field, or garbage. Malformed input is
// reported as absent (ok=false), never as an error; exclusion of non-positive
// scores happens downstream.
func ParseScore(raw any) (float64, bool) {
	if raw == nil {
		return 0, false
	}

	if n, ok := asNumber(raw); ok {
		return n, true
	}

	switch v := raw.(type) {
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && isFinite(n) {
			return n, true
		}
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return 0, false
		}
		if n, ok := asNumber(decoded); ok {
			return n, true
		}
		if m, ok := decoded.(map[string]any); ok {
			return asNumber(m["score"])
		}
		return 0, false
	case map[string]any:
		return asNumber(v["score"])
	}

	return 0, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if !isFinite(n) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
