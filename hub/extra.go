package hub

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// RORKey is the author extra holding the institution's ROR identifier.
const RORKey = "rorId"

// SetExtra sets an extra field value on the author.
func SetExtra(a *Author, key string, value any) {
	if a.Extra == nil {
		a.Extra = &structpb.Struct{
			Fields: make(map[string]*structpb.Value),
		}
	}
	v, err := structpb.NewValue(value)
	if err == nil {
		a.Extra.Fields[key] = v
	}
}

// GetExtra retrieves an extra field value.
func GetExtra(a *Author, key string) (any, bool) {
	if a == nil || a.Extra == nil || a.Extra.Fields == nil {
		return nil, false
	}
	v, ok := a.Extra.Fields[key]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// GetExtraString retrieves an extra field as a string.
func GetExtraString(a *Author, key string) string {
	v, ok := GetExtra(a, key)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// RORID returns the author's institutional ROR identifier, or "".
func RORID(a *Author) string {
	return GetExtraString(a, RORKey)
}
