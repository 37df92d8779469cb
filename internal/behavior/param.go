package behavior

import "github.com/The-Foxer/gacha-party/internal/jsonv"

// ParamKeys is the order in which ResolveParam looks for a representative
// field inside an object param.
var ParamKeys = []string{"method", "param", "area", "condition", "count", "range", "unitorder"}

// ResolveParam picks the most meaningful value out of a raw param for
// display. Objects yield their first present ParamKeys field, or
// themselves; arrays are resolved per element. The result is a copy.
func ResolveParam(v jsonv.Value) jsonv.Value {
	switch t := v.(type) {
	case jsonv.Array:
		out := make(jsonv.Array, len(t))
		for i, item := range t {
			if o, ok := item.(*jsonv.Object); ok && o != nil {
				out[i] = pickParam(o)
				continue
			}
			out[i] = jsonv.Clone(item)
		}
		return out
	case *jsonv.Object:
		if t == nil {
			return v
		}
		return pickParam(t)
	}
	return v
}

func pickParam(o *jsonv.Object) jsonv.Value {
	for _, key := range ParamKeys {
		if v, ok := o.Get(key); ok {
			return jsonv.Clone(v)
		}
	}
	return jsonv.CloneObject(o)
}
