// Package jsonv is a small JSON value model that keeps object members in
// document order. Behaviour data has no schema, so every node is handled as
// one of these values and classified by Kind.
package jsonv

import "strconv"

type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one of Null, Bool, Number, String, Array or *Object.
// A nil Value means the value is absent.
type Value interface {
	Kind() Kind
	jsonValue()
}

type Null struct{}

type Bool bool

// Number holds the literal text of a JSON number.
type Number string

type String string

type Array []Value

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

func (Null) jsonValue()   {}
func (Bool) jsonValue()   {}
func (Number) jsonValue() {}
func (String) jsonValue() {}
func (Array) jsonValue()  {}

// KindOf reports the kind of v; nil reports KindAbsent.
func KindOf(v Value) Kind {
	if v == nil {
		return KindAbsent
	}
	return v.Kind()
}

func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Truthy follows JavaScript truthiness for JSON values.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(t)
	case String:
		return t != ""
	case Number:
		f, err := t.Float64()
		if err != nil {
			return true
		}
		return f != 0
	case *Object:
		return t != nil
	}
	return true
}

type Member struct {
	Key   string
	Value Value
}

// Object is an ordered set of members. index maps each key to its
// position in members.
type Object struct {
	members []Member
	index   map[string]int
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) jsonValue() {}

func NewObject(members ...Member) *Object {
	o := &Object{
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

func (o *Object) Len() int { return len(o.members) }

func (o *Object) indexOf(key string) int {
	if i, ok := o.index[key]; ok {
		return i
	}
	return -1
}

func (o *Object) Has(key string) bool { return o.indexOf(key) >= 0 }

func (o *Object) Get(key string) (Value, bool) {
	if i := o.indexOf(key); i >= 0 {
		return o.members[i].Value, true
	}
	return nil, false
}

// Set replaces an existing member in place or appends a new one.
func (o *Object) Set(key string, v Value) {
	if i := o.indexOf(key); i >= 0 {
		o.members[i].Value = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (o *Object) Delete(key string) {
	i := o.indexOf(key)
	if i < 0 {
		return
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
}

func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the member list; the values are shared.
func (o *Object) Members() []Member {
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// Each visits members in order until fn returns false.
func (o *Object) Each(fn func(key string, v Value) bool) {
	for _, m := range o.members {
		if !fn(m.Key, m.Value) {
			return
		}
	}
}
