package encoding

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Pair is one flattened query-string entry
type Pair struct {
	Key   string
	Value string
}

// EncodeQuery flattens a parameter tree into bracket-keyed pairs.
//
// Nested maps become key[sub], sequences become repeated key[] entries and
// maps inside sequences become key[][sub]. Keys are visited in sorted order.
func EncodeQuery(tree map[string]interface{}) []Pair {
	pairs := make([]Pair, 0, len(tree))
	for _, key := range sortedKeys(tree) {
		pairs = appendQuery(pairs, key, tree[key])
	}
	return pairs
}

func appendQuery(pairs []Pair, key string, value interface{}) []Pair {
	switch v := normalize(value).(type) {
	case nil:
		return append(pairs, Pair{Key: key, Value: "null"})
	case []interface{}:
		for _, elem := range v {
			if sub, ok := normalize(elem).(map[string]interface{}); ok {
				pairs = appendNested(pairs, key+"[]", sub)
				continue
			}
			pairs = append(pairs, Pair{Key: key + "[]", Value: Stringify(normalize(elem))})
		}
		return pairs
	case map[string]interface{}:
		return appendNested(pairs, key, v)
	case time.Time:
		return append(pairs, Pair{Key: key, Value: FormatTime(v)})
	default:
		return append(pairs, Pair{Key: key, Value: Stringify(v)})
	}
}

func appendNested(pairs []Pair, prefix string, m map[string]interface{}) []Pair {
	for _, sub := range sortedKeys(m) {
		pairs = appendQuery(pairs, prefix+"["+sub+"]", m[sub])
	}
	return pairs
}

// QueryString joins pairs into an escaped query string, preserving order
func QueryString(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// MergeQuery appends query to any query already present on rawURL
func MergeQuery(rawURL, query string) (string, error) {
	if query == "" {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	if u.RawQuery != "" {
		u.RawQuery = u.RawQuery + "&" + query
	} else {
		u.RawQuery = query
	}
	return u.String(), nil
}
