package jsonv

// Clone returns a deep copy of v. Arrays and objects get fresh storage at
// every level; scalars are immutable and come back as they are.
// v must be tree shaped; Clone does not detect cycles.
func Clone(v Value) Value {
	switch t := v.(type) {
	case Array:
		if t == nil {
			return Array(nil)
		}
		out := make(Array, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	case *Object:
		return CloneObject(t)
	}
	return v
}

func CloneObject(o *Object) *Object {
	if o == nil {
		return nil
	}
	out := &Object{
		members: make([]Member, len(o.members)),
		index:   make(map[string]int, len(o.members)),
	}
	for i, m := range o.members {
		out.members[i] = Member{Key: m.Key, Value: Clone(m.Value)}
		out.index[m.Key] = i
	}
	return out
}

// Equal reports structural equality. Numbers compare by literal text.
func Equal(a, b Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch x := a.(type) {
	case Array:
		y := b.(Array)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if x == nil || y == nil {
			return x == y
		}
		if len(x.members) != len(y.members) {
			return false
		}
		for i := range x.members {
			if x.members[i].Key != y.members[i].Key || !Equal(x.members[i].Value, y.members[i].Value) {
				return false
			}
		}
		return true
	}
	return a == b
}
