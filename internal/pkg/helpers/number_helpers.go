package helpers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxAmount bounds coerced amounts to what a NUMERIC(14,2) column holds
const MaxAmount = 1e12

// CoerceFloat converts loosely typed JSON input to a number. Empty strings,
// non-numeric text, booleans and nulls all yield nil, never an error.
func CoerceFloat(v interface{}) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= MaxAmount {
		return nil
	}
	return &f
}

// CoerceInt is CoerceFloat truncated to an integer. Values outside the
// int32 range of an INT column yield nil.
func CoerceInt(v interface{}) *int {
	f := CoerceFloat(v)
	if f == nil {
		return nil
	}
	t := math.Trunc(*f)
	if t < math.MinInt32 || t > math.MaxInt32 {
		return nil
	}
	i := int(t)
	return &i
}

// StringOrEmpty dereferences s, returning "" for nil
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NullableString returns nil for blank input so optional text columns store NULL
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
