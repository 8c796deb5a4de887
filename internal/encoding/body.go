package encoding

import "time"

// EncodeBody prepares a parameter tree for a JSON request body. Structure is
// kept as-is, booleans and numbers stay native and times become ISO-8601 strings.
func EncodeBody(tree map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(tree))
	for key, value := range tree {
		out[key] = encodeBodyValue(value)
	}
	return out
}

func encodeBodyValue(value interface{}) interface{} {
	switch v := normalize(value).(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return EncodeBody(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = encodeBodyValue(elem)
		}
		return out
	case time.Time:
		return FormatTime(v)
	case []byte:
		return string(v)
	default:
		return v
	}
}
