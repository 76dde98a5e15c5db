// Package number coerces the numeric representations produced by the JSON
// and YAML decoders into a single comparable form.
package number

import "encoding/json"

// ToFloat64 converts supported numeric values to float64. Booleans and
// numeric strings are not numbers.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
