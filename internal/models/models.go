package models

import (
	"encoding/json"
	"math/big"
	"reflect"
)

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Member is a single key/value pair of an OrderedObject.
type Member struct {
	Key   JSONValue
	Value JSONValue
}

// OrderedObject is a mapping that keeps its members in document order.
// Keys are not restricted to strings, so it can also carry mappings that are
// not valid JSON (for example YAML mappings with integer keys).
type OrderedObject []Member

// Kind is the closed set of node kinds a value tree can contain.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindText
	KindSequence
	KindMapping
	KindOther
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBoolean:  "boolean",
	KindNumber:   "number",
	KindText:     "text",
	KindSequence: "sequence",
	KindMapping:  "mapping",
	KindOther:    "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsComposite reports whether k is a Sequence or a Mapping.
func (k Kind) IsComposite() bool {
	return k == KindSequence || k == KindMapping
}

var (
	numberType        = reflect.TypeOf(json.Number(""))
	bigIntType        = reflect.TypeOf((*big.Int)(nil))
	bigFloatType      = reflect.TypeOf((*big.Float)(nil))
	bigRatType        = reflect.TypeOf((*big.Rat)(nil))
	orderedObjectType = reflect.TypeOf(OrderedObject(nil))
)

// KindOf classifies an arbitrary Go value.
func KindOf(v any) Kind {
	if v == nil {
		return KindNull
	}
	return KindOfValue(reflect.ValueOf(v))
}

// KindOfValue classifies a reflected value. Interface values are unwrapped
// to their dynamic value first.
func KindOfValue(rv reflect.Value) Kind {
	rv = Indirect(rv)
	if !rv.IsValid() {
		return KindNull
	}

	// json.Number is a string kind and math/big numbers are pointers
	switch rv.Type() {
	case numberType:
		return KindNumber
	case bigIntType, bigFloatType, bigRatType:
		if rv.IsNil() {
			return KindNull
		}
		return KindNumber
	case orderedObjectType:
		return KindMapping
	}

	switch rv.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindText
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMapping
	default:
		return KindOther
	}
}

// Indirect strips interface wrappers. A nil interface yields the zero Value.
func Indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// IntermediateRepresentation holds a parsed value tree together with the
// kind of its root and the input format it was read from.
type IntermediateRepresentation struct {
	Root     JSONValue
	RootKind Kind
	Format   string
}
