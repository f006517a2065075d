// Package value provides primitives for extracting values from the
// loosely-typed snapshots that submission systems export.
//
// These helpers solve common problems:
//   - Type coercion (string "123" → int64)
//   - Null/empty handling
//   - Localized text that may be a plain string or a locale map
//   - Lenient date parsing
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Text extracts a string from various representations.
// Handles: string, []byte, fmt.Stringer, json.Number, numeric types, nil
func Text(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []any:
		if len(val) == 0 {
			return ""
		}
		return Text(val[0])
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Int64 extracts an integer from various representations.
// Handles: int, float64, string ("123"), json.Number, nil (→ 0)
func Int64(v any) int64 {
	if v == nil {
		return 0
	}
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case int32:
		return int64(val)
	case float64:
		return int64(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			f, _ := val.Float64()
			return int64(f)
		}
		return i
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return i
	default:
		return 0
	}
}
