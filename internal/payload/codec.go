package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTrailingData is returned when input holds more than one JSON document.
var ErrTrailingData = errors.New("payload: trailing data after document")

// Parse decodes a JSON document, keeping object members in document order.
func Parse(b []byte) (Value, error) {
	return Decode(bytes.NewReader(b))
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Decode(strings.NewReader(s))
}

// Decode reads exactly one JSON document from r.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("payload: decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, ErrTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return StringValue(t), nil
	case json.Number:
		return Value{typ: Number, num: t.String()}, nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return NullValue(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{typ: Object}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		member, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("member %q: %w", key, err)
		}
		v.fields = setField(v.fields, key, member)
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{typ: Array, items: []Value{}}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", len(v.items), err)
		}
		v.items = append(v.items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// writeJSON encodes v. With a non-empty indent the layout matches a two-space
// pretty printer: empty containers stay on one line, "key": value pairs.
func writeJSON(buf *bytes.Buffer, v Value, indent string, depth int) {
	switch v.typ {
	case Bool, Number:
		buf.WriteString(v.Text())
	case String:
		writeString(buf, v.str)
	case Array:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeJSON(buf, item, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case Object:
		if len(v.fields) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeString(buf, f.Key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			writeJSON(buf, f.Value, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(indent)
	}
}

// writeString quotes s without HTML escaping so the diagnostic block shows
// text exactly as received.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
