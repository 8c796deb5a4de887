package emburse

import (
	"strings"

	"github.com/MarcFord/emburse-go/internal/coerce"
	"github.com/MarcFord/emburse-go/internal/requestor"
)

// kindInfo describes how one resource kind maps onto the API
type kindInfo struct {
	// segment is the collection path, e.g. "shared-links"
	segment string
	// envelope is the key holding items in a list response
	envelope string
	schema   Schema
	wrap     func(*Object) Resource
}

var registry = map[string]kindInfo{
	"account": {
		segment:  "accounts",
		envelope: "accounts",
		wrap:     func(o *Object) Resource { return &Account{o} },
	},
	"allowance": {
		segment:  "allowances",
		envelope: "allowances",
		schema: Schema{
			{Name: "interval", Type: TypeString},
			{Name: "amount", Type: TypeFloat},
			{Name: "transaction_limit", Type: TypeFloat},
		},
		wrap: func(o *Object) Resource { return &Allowance{o} },
	},
	"card": {
		segment:  "cards",
		envelope: "cards",
		schema: Schema{
			{Name: "allowance", Type: FieldType("allowance")},
			{Name: "description", Type: TypeString},
			{Name: "is_virtual", Type: TypeBool},
		},
		wrap: func(o *Object) Resource { return &Card{o} },
	},
	"category": {
		segment:  "categories",
		envelope: "categories",
		schema:   Schema{{Name: "name", Type: TypeString}},
		wrap:     func(o *Object) Resource { return &Category{o} },
	},
	"company": {
		segment:  "company",
		envelope: "company",
		wrap:     func(o *Object) Resource { return &Company{o} },
	},
	"department": {
		segment:  "departments",
		envelope: "departments",
		schema:   Schema{{Name: "name", Type: TypeString}},
		wrap:     func(o *Object) Resource { return &Department{o} },
	},
	"label": {
		segment:  "labels",
		envelope: "labels",
		schema:   Schema{{Name: "name", Type: TypeString}},
		wrap:     func(o *Object) Resource { return &Label{o} },
	},
	"location": {
		segment:  "locations",
		envelope: "locations",
		schema:   Schema{{Name: "name", Type: TypeString}},
		wrap:     func(o *Object) Resource { return &Location{o} },
	},
	"member": {
		segment:  "members",
		envelope: "members",
		wrap:     func(o *Object) Resource { return &Member{o} },
	},
	"shared_link": {
		segment:  "shared-links",
		envelope: "shared-links",
		schema:   Schema{{Name: "card", Type: TypeString}},
		wrap:     func(o *Object) Resource { return &SharedLink{o} },
	},
	"statement": {
		segment:  "statements",
		envelope: "statements",
		wrap:     func(o *Object) Resource { return &Statement{o} },
	},
	"transaction": {
		segment:  "transactions",
		envelope: "transactions",
		wrap:     func(o *Object) Resource { return &Transaction{o} },
	},
}

// Materialize converts a decoded JSON value into resources. Maps become the
// resource registered for kind (a generic *Object when kind is unknown),
// lists are converted element by element, date-like strings become
// time.Time and decimal strings become float64. Everything else is returned
// unchanged.
//
// The resulting objects are not bound to a client; use Client.Materialize
// for objects that can call the API.
func Materialize(value interface{}, token, kind string) interface{} {
	return materialize(value, token, nil, kind)
}

func materialize(value interface{}, token string, backend *requestor.Requestor, kind string) interface{} {
	switch v := value.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = materialize(item, token, backend, kind)
		}
		return out
	case Resource:
		return v
	case map[string]interface{}:
		return newResource(kind, token, backend, v)
	case string:
		return coerce.Scalar(v)
	default:
		return v
	}
}

func newResource(kind, token string, backend *requestor.Requestor, fields map[string]interface{}) Resource {
	o := newObject(strings.ToLower(kind), token, backend)
	o.refreshFrom(fields)
	return wrap(o)
}

// wrap returns the typed variant registered for o's kind
func wrap(o *Object) Resource {
	if info, ok := registry[o.kind]; ok {
		return info.wrap(o)
	}
	return o
}

func lookup(kind string) (kindInfo, bool) {
	info, ok := registry[kind]
	return info, ok
}
