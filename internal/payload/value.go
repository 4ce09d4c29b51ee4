// Package payload holds the loosely structured documents returned by the
// generation backend. A Value is an immutable tree of objects, arrays and
// scalars that keeps object keys in the order they were received. Every
// accessor is total: a missing key or an unexpected type yields an absent
// Value, never a panic.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Type is the JSON type of a Value.
type Type int

const (
	// Absent marks a value that does not exist (missing key, out of range
	// index, wrong container type).
	Absent Type = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "absent"
	}
}

// Field is one key/value pair of an object.
type Field struct {
	Key   string
	Value Value
}

// Value is a JSON document node. The zero Value is absent.
type Value struct {
	typ    Type
	b      bool
	num    string
	str    string
	items  []Value
	fields []Field
}

// Constructors for building documents in code and tests.

func NullValue() Value           { return Value{typ: Null} }
func BoolValue(b bool) Value     { return Value{typ: Bool, b: b} }
func StringValue(s string) Value { return Value{typ: String, str: s} }

// NumberValue formats f the way JSON encoders do.
func NumberValue(f float64) Value {
	b, err := json.Marshal(f)
	if err != nil {
		// NaN and Inf have no JSON form
		return Value{typ: Null}
	}
	return Value{typ: Number, num: string(b)}
}

// ArrayValue returns an array holding items in order.
func ArrayValue(items ...Value) Value {
	return Value{typ: Array, items: append([]Value(nil), items...)}
}

// ObjectValue returns an object holding fields in order. A repeated key keeps
// its first position and its last value.
func ObjectValue(fields ...Field) Value {
	v := Value{typ: Object}
	for _, f := range fields {
		v.fields = setField(v.fields, f.Key, f.Value)
	}
	return v
}

func setField(fields []Field, key string, val Value) []Field {
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = val
			return fields
		}
	}
	return append(fields, Field{Key: key, Value: val})
}

// Type returns the node type.
func (v Value) Type() Type { return v.typ }

// IsAbsent reports whether v does not exist.
func (v Value) IsAbsent() bool { return v.typ == Absent }

// Present reports whether v exists and is not null.
func (v Value) Present() bool { return v.typ != Absent && v.typ != Null }

// Truthy follows JavaScript truthiness: absent, null, false, 0 and "" are
// falsy; every array and object, even an empty one, is truthy.
func (v Value) Truthy() bool {
	switch v.typ {
	case Bool:
		return v.b
	case Number:
		f, err := strconv.ParseFloat(v.num, 64)
		return err == nil && f != 0
	case String:
		return v.str != ""
	case Array, Object:
		return true
	default:
		return false
	}
}

// Get returns the member named key, or an absent Value when v is not an
// object or has no such member.
func (v Value) Get(key string) Value {
	if v.typ != Object {
		return Value{}
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return Value{}
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	return v.Get(key).typ != Absent
}

// First returns the first truthy member among keys, in priority order,
// together with the key that matched. ok is false when none is truthy.
func (v Value) First(keys ...string) (key string, val Value, ok bool) {
	for _, k := range keys {
		if m := v.Get(k); m.Truthy() {
			return k, m, true
		}
	}
	return "", Value{}, false
}

// Index returns the i-th element of an array, or an absent Value.
func (v Value) Index(i int) Value {
	if v.typ != Array || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.typ {
	case Array:
		return len(v.items)
	case Object:
		return len(v.fields)
	default:
		return 0
	}
}

// List returns the elements of an array in order, or nil for any other type.
func (v Value) List() []Value {
	if v.typ != Array {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Entries returns the members of an object in document order, or nil.
func (v Value) Entries() []Field {
	if v.typ != Object {
		return nil
	}
	return append([]Field(nil), v.fields...)
}

// Text renders a scalar as display text. Strings are returned verbatim,
// numbers and booleans in their JSON form, null and absent as "". Arrays and
// objects are stringified as compact JSON.
func (v Value) Text() string {
	switch v.typ {
	case String:
		return v.str
	case Number:
		return v.num
	case Bool:
		return strconv.FormatBool(v.b)
	case Array, Object:
		return v.Compact()
	default:
		return ""
	}
}

// TextOr returns Text when v is truthy and fallback otherwise.
func (v Value) TextOr(fallback string) string {
	if !v.Truthy() {
		return fallback
	}
	return v.Text()
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool { return v.typ == Array || v.typ == Object }

// Equal reports structural equality. Object member order is significant.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case Bool:
		return v.b == o.b
	case Number:
		return v.num == o.num
	case String:
		return v.str == o.str
	case Array:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != o.fields[i].Key || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// From converts decoded Go values into a Value. Maps are converted with keys
// in sorted order since Go maps carry no order of their own. Types that are
// not plain JSON shapes go through encoding/json first.
func From(x any) Value {
	switch t := x.(type) {
	case nil:
		return NullValue()
	case Value:
		return t
	case *Value:
		if t == nil {
			return NullValue()
		}
		return *t
	case bool:
		return BoolValue(t)
	case string:
		return StringValue(t)
	case json.Number:
		return Value{typ: Number, num: t.String()}
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return Value{typ: Number, num: strconv.Itoa(t)}
	case int64:
		return Value{typ: Number, num: strconv.FormatInt(t, 10)}
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = StringValue(s)
		}
		return Value{typ: Array, items: items}
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = From(e)
		}
		return Value{typ: Array, items: items}
	case map[string]string:
		keys := sortedKeys(t)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: StringValue(t[k])}
		}
		return Value{typ: Object, fields: fields}
	case map[string]any:
		keys := sortedKeys(t)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: From(t[k])}
		}
		return Value{typ: Object, fields: fields}
	case json.RawMessage:
		v, err := Parse(t)
		if err != nil {
			return Value{}
		}
		return v
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Value{}
		}
		v, err := Parse(b)
		if err != nil {
			return Value{}
		}
		return v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface converts v back into plain Go values (map[string]any, []any,
// float64, string, bool, nil). Object order is lost.
func (v Value) Interface() any {
	switch v.typ {
	case Bool:
		return v.b
	case Number:
		f, err := strconv.ParseFloat(v.num, 64)
		if err != nil {
			return v.num
		}
		return f
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.items))
		for i, e := range v.items {
			out[i] = e.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// GoString supports %#v in test failure output.
func (v Value) GoString() string {
	return fmt.Sprintf("payload.Value(%s)", v.Compact())
}

// Compact returns v as single-line JSON. Absent renders as null.
func (v Value) Compact() string {
	var buf bytes.Buffer
	writeJSON(&buf, v, "", 0)
	return buf.String()
}

// Pretty returns v as JSON indented by two spaces, keeping member order.
func (v Value) Pretty() string {
	var buf bytes.Buffer
	writeJSON(&buf, v, "  ", 0)
	return buf.String()
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writeJSON(&buf, v, "", 0)
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. A struct field of type Value that
// is missing from the input stays absent; an explicit null becomes Null.
func (v *Value) UnmarshalJSON(b []byte) error {
	parsed, err := Parse(b)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
