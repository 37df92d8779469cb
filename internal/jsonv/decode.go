package jsonv

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("invalid json")

// ParseBytes decodes a JSON document; object members keep document order.
func ParseBytes(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

func Parse(s string) (Value, error) {
	return ParseBytes([]byte(s))
}

func ParseFile(path string) (Value, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// MustParse is for tests and literals; it panics on bad input.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromResult converts an already parsed gjson result.
// A non-existent result converts to nil.
func FromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		if !r.Exists() {
			return nil
		}
		return Null{}
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Raw)
	case gjson.String:
		return String(r.Str)
	}
	if r.IsArray() {
		arr := Array{}
		r.ForEach(func(_, item gjson.Result) bool {
			arr = append(arr, FromResult(item))
			return true
		})
		return arr
	}
	obj := &Object{}
	r.ForEach(func(key, item gjson.Result) bool {
		obj.Set(key.Str, FromResult(item))
		return true
	})
	return obj
}
