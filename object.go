package emburse

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/MarcFord/emburse-go/internal/apierrors"
	"github.com/MarcFord/emburse-go/internal/requestor"
	"github.com/bytedance/sonic"
)

// Params is a parameter tree sent with a request. Values may be nil, bools,
// numbers, strings, time.Time, nested maps, slices or resources.
type Params = map[string]interface{}

// Resource is a materialized API object. Every typed resource (*Account,
// *Card, ...) and the generic *Object implement it.
type Resource interface {
	Kind() string
	ID() string
	AsMap() map[string]interface{}
	base() *Object
}

// asResource reports whether v is a usable resource. Typed nil pointers such
// as (*Card)(nil) are treated as null, not as resources.
func asResource(v interface{}) (Resource, bool) {
	r, ok := v.(Resource)
	if !ok {
		return nil, false
	}
	if rv := reflect.ValueOf(r); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return r, true
}

// paramsPayload copies params, replacing resources by their field maps
func paramsPayload(params Params, extra int) Params {
	payload := make(Params, len(params)+extra)
	for k, v := range params {
		if r, ok := asResource(v); ok {
			payload[k] = r.AsMap()
			continue
		}
		payload[k] = v
	}
	return payload
}

// Object holds the fields of one API object. It remembers the auth token it
// was materialized with and never prints or serializes it.
//
// Objects are not safe for concurrent mutation.
type Object struct {
	kind    string
	token   string
	backend *requestor.Requestor
	fields  map[string]interface{}
}

func newObject(kind, token string, backend *requestor.Requestor) *Object {
	return &Object{
		kind:    kind,
		token:   token,
		backend: backend,
		fields:  make(map[string]interface{}),
	}
}

func (o *Object) base() *Object { return o }

// spawnAs returns an empty object of another kind sharing o's token and backend
func (o *Object) spawnAs(kind string) *Object {
	return newObject(kind, o.token, o.backend)
}

// Kind returns the resource kind, e.g. "card". Generic objects carry the
// field name they were found under.
func (o *Object) Kind() string { return o.kind }

// ID returns the "id" field, or "" when it is not set
func (o *Object) ID() string {
	switch v := o.fields["id"].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Get returns a field value
func (o *Object) Get(key string) (interface{}, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether the field is present, even when its value is null
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Set stores a field value as is
func (o *Object) Set(key string, value interface{}) {
	o.fields[key] = value
}

// Keys returns the field names in sorted order
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns a string field, or "" when absent or of another type
func (o *Object) GetString(key string) string {
	s, _ := o.fields[key].(string)
	return s
}

// GetFloat returns a numeric field as float64
func (o *Object) GetFloat(key string) float64 {
	switch v := o.fields[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// GetBool returns a boolean field
func (o *Object) GetBool(key string) bool {
	b, _ := o.fields[key].(bool)
	return b
}

// GetTime returns a date-time field, or the zero time
func (o *Object) GetTime(key string) time.Time {
	t, _ := o.fields[key].(time.Time)
	return t
}

// GetResource returns a nested object field, or nil
func (o *Object) GetResource(key string) Resource {
	r, _ := o.fields[key].(Resource)
	return r
}

// GetList returns a list field
func (o *Object) GetList(key string) []interface{} {
	l, _ := o.fields[key].([]interface{})
	return l
}

// AsMap returns the fields as a plain parameter tree. Nested objects are
// converted recursively; the auth token is never included.
func (o *Object) AsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(o.fields))
	for k, v := range o.fields {
		out[k] = plain(v)
	}
	return out
}

func plain(value interface{}) interface{} {
	if r, ok := asResource(value); ok {
		return r.AsMap()
	}
	switch v := value.(type) {
	case Resource:
		return nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// String renders the object for debugging, without its token
func (o *Object) String() string {
	name := o.kind
	if name == "" {
		name = "object"
	}
	data, err := sonic.ConfigStd.MarshalToString(o.AsMap())
	if err != nil {
		return fmt.Sprintf("<%s id=%q>", name, o.ID())
	}
	return fmt.Sprintf("<%s %s>", name, data)
}

// MarshalJSON encodes the fields, without the token
func (o *Object) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(o.AsMap())
}

// refreshFrom materializes every key of resp onto o. The "parent" key is
// typed as o's own kind; any other key is typed by its name.
func (o *Object) refreshFrom(resp map[string]interface{}) {
	for k, v := range resp {
		hint := k
		if k == "parent" {
			hint = o.kind
		}
		o.fields[k] = materialize(v, o.token, o.backend, hint)
	}
}

// requestor returns the backend bound to o's token
func (o *Object) requestor() (*requestor.Requestor, error) {
	if o.backend == nil {
		return nil, apierrors.New(apierrors.KindConfiguration,
			"%s is not bound to a client: obtain it from a Client to call the API", o.displayKind())
	}
	return o.backend, nil
}

func (o *Object) displayKind() string {
	if o.kind == "" {
		return "object"
	}
	return o.kind
}
