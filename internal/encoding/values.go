package encoding

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Mapper is implemented by values that can flatten themselves into a parameter tree
type Mapper interface {
	AsMap() map[string]interface{}
}

// normalize reduces a parameter value to one of: nil, a scalar, time.Time,
// map[string]interface{} or []interface{}. Map keys of any kind are
// converted with fmt.Sprint so that bracket keys can be built by concatenation.
func normalize(value interface{}) interface{} {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	switch v := value.(type) {
	case nil, string, bool, []byte, time.Time:
		return v
	case map[string]interface{}:
		return v
	case []interface{}:
		return v
	case Mapper:
		return v.AsMap()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return normalize(rv.Elem().Interface())
	case reflect.Map:
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		// fixed-size ids such as uuid.UUID render as scalars
		if _, ok := value.(fmt.Stringer); ok {
			return value
		}
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return value
}

// Stringify renders a scalar the way it travels in a query string
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return FormatTime(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// sortedKeys returns map keys in lexical order so encoded output is stable
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
