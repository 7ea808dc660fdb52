package analysis

import "math"

// ============================================================================
// PARAMS — Caller-supplied option bag
// ============================================================================
// Each tool defines its own recognized keys with defaults. Unrecognized keys
// are ignored (forward compatibility); missing required keys surface as
// KindInvalidInput via the Require* accessors. Numeric values arriving from
// JSON are float64; the accessors normalize int/float transparently.
// ============================================================================

// Params is a free-form option map supplied with an analysis request.
type Params map[string]any

// Has reports whether key is present (even if nil-valued).
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Float returns the value at key as float64, or def when absent or
// not numeric.
func (p Params) Float(key string, def float64) float64 {
	if v, ok := toFloat(p[key]); ok {
		return v
	}
	return def
}

// FloatOpt returns the value at key as float64 plus a presence flag.
func (p Params) FloatOpt(key string) (float64, bool) {
	return toFloat(p[key])
}

// Int returns the value at key as int, or def when absent.
// JSON numbers are truncated toward zero.
func (p Params) Int(key string, def int) int {
	if v, ok := toFloat(p[key]); ok && !math.IsNaN(v) {
		return int(v)
	}
	return def
}

// String returns the value at key as string, or def when absent.
func (p Params) String(key, def string) string {
	if s, ok := p[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Bool returns the value at key as bool, or def when absent.
func (p Params) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

// Strings returns the value at key as a string slice. Accepts both
// []string and JSON-decoded []any.
func (p Params) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// RequireString returns the string at key or a KindInvalidInput error
// naming the missing parameter.
func (p Params) RequireString(key string) (string, error) {
	if s, ok := p[key].(string); ok && s != "" {
		return s, nil
	}
	return "", Invalidf("parameter %q is required", key)
}

// RequireFloat returns the number at key or a KindInvalidInput error
// naming the missing parameter.
func (p Params) RequireFloat(key string) (float64, error) {
	if v, ok := toFloat(p[key]); ok {
		return v, nil
	}
	return 0, Invalidf("parameter %q is required", key)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
