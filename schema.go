package emburse

import "github.com/MarcFord/emburse-go/internal/apierrors"

// FieldType is the type a create parameter must have. Any value other than
// the scalar types names a resource kind, e.g. "allowance".
type FieldType string

const (
	TypeString FieldType = "string"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
)

// Field is one required create parameter
type Field struct {
	Name string
	Type FieldType
}

// Schema lists the parameters a resource requires on create
type Schema []Field

// validate checks params against s and returns a copy suitable for sending:
// resource values are replaced by their field maps.
func (s Schema) validate(kind string, params Params) (Params, error) {
	if len(s) == 0 {
		return nil, apierrors.New(apierrors.KindResource, "%s: required create params are empty!", kind)
	}

	for _, f := range s {
		v, ok := params[f.Name]
		if !ok || !f.Type.matches(v) {
			return nil, apierrors.New(apierrors.KindAttribute,
				"%s: is a required property and must be of type %s!", f.Name, f.Type)
		}
	}

	return paramsPayload(params, 0), nil
}

func (t FieldType) matches(v interface{}) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeFloat:
		switch v.(type) {
		case float64, float32:
			return true
		}
		return false
	case TypeBool:
		_, ok := v.(bool)
		return ok
	default:
		r, ok := asResource(v)
		return ok && r.Kind() == string(t)
	}
}
