package value

import (
	"bytes"
	"encoding/json"
)

// isNull reports whether raw is absent or the JSON null literal.
func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || string(raw) == "null"
}

// decodeAny decodes raw keeping numbers as json.Number.
func decodeAny(raw json.RawMessage) (any, bool) {
	if isNull(raw) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// String extracts a scalar string from a JSON value.
// Numbers keep their literal form, arrays yield their first element and
// null yields "".
func String(raw json.RawMessage) string {
	v, ok := decodeAny(raw)
	if !ok {
		return ""
	}
	if _, isMap := v.(map[string]any); isMap {
		return ""
	}
	return Text(v)
}

// ID extracts a numeric identifier that may be encoded as a number or a
// numeric string.
func ID(raw json.RawMessage) int64 {
	v, ok := decodeAny(raw)
	if !ok {
		return 0
	}
	return Int64(v)
}

// Any decodes a JSON value into plain Go values suitable for structpb.
// Numbers become float64.
func Any(raw json.RawMessage) (any, bool) {
	if isNull(raw) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}
