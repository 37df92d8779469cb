package jsonv

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal encodes v as compact JSON. Absent members are dropped from
// objects and written as null inside arrays.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Text is the compact JSON text of v, or "" when v cannot be encoded.
func Text(v Value) string {
	b, err := Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func encode(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if !json.Valid([]byte(t)) {
			return fmt.Errorf("jsonv: invalid number literal %q", string(t))
		}
		buf.WriteString(string(t))
	case String:
		if err := quote(buf, string(t)); err != nil {
			return err
		}
	case Array:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		first := true
		for _, m := range t.members {
			if m.Value == nil {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := quote(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jsonv: unsupported value %T", v)
	}
	return nil
}

// quote writes s as a JSON string without HTML escaping.
func quote(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func (n Null) MarshalJSON() ([]byte, error)   { return Marshal(n) }
func (b Bool) MarshalJSON() ([]byte, error)   { return Marshal(b) }
func (n Number) MarshalJSON() ([]byte, error) { return Marshal(n) }
func (s String) MarshalJSON() ([]byte, error) { return Marshal(s) }
func (a Array) MarshalJSON() ([]byte, error)  { return Marshal(a) }
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}
