package behavior

import (
	"strconv"

	"github.com/The-Foxer/gacha-party/internal/jsonv"
)

type NodeKind string

const (
	KindAction     NodeKind = "action"
	KindComposite  NodeKind = "composite"
	KindObject     NodeKind = "object"
	KindLiteral    NodeKind = "literal"
	KindDepthLimit NodeKind = "depth_limit"
	KindParseError NodeKind = "parse_error"
)

// Method names produced by the normalizer itself rather than read from data.
const (
	MethodUnknown        = "unknown_method"
	TypeUnknown          = "unknown_type"
	MethodObjectProperty = "object_property"
	MethodLiteral        = "literal_value"
	MethodMaxDepth       = "max_depth_reached"
	MethodParseError     = "parse_error"
)

type Property struct {
	Key   string
	Value jsonv.Value
}

// Node is the single output shape of the normalizer. Kind says which of
// the optional fields are meaningful; every jsonv value a Node holds is a
// private copy.
type Node struct {
	Kind   NodeKind
	Method string
	Param  jsonv.Value

	// composite nodes only; always non-nil for them
	Children []Node

	// object nodes only
	Properties     []Property
	OriginalObject *jsonv.Object

	Operator jsonv.Value
	Yield    jsonv.Value
	Type     jsonv.Value

	// Index is the recursion depth the node was produced at. Sentinel
	// nodes have none.
	Index int

	OriginalIndex *int
	ParentIndex   *int
}

func (n Node) hasIndex() bool {
	return n.Kind != KindDepthLimit && n.Kind != KindParseError
}

// ToValue renders the node as an ordered JSON object.
func (n Node) ToValue() *jsonv.Object {
	out := jsonv.NewObject(jsonv.Member{Key: "method", Value: jsonv.String(n.Method)})
	if n.Param != nil {
		out.Set("param", n.Param)
	}
	if n.Kind == KindComposite || n.Children != nil {
		children := make(jsonv.Array, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.ToValue()
		}
		out.Set("children", children)
	}
	if n.Kind == KindObject {
		props := make(jsonv.Array, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = jsonv.NewObject(
				jsonv.Member{Key: "key", Value: jsonv.String(p.Key)},
				jsonv.Member{Key: "value", Value: p.Value},
			)
		}
		out.Set("properties", props)
		if n.OriginalObject != nil {
			out.Set("originalObject", n.OriginalObject)
		}
	}
	for _, m := range []jsonv.Member{
		{Key: "yield", Value: n.Yield},
		{Key: "type", Value: n.Type},
		{Key: "operator", Value: n.Operator},
	} {
		if m.Value != nil {
			out.Set(m.Key, m.Value)
		}
	}
	if n.hasIndex() {
		out.Set("index", intValue(n.Index))
	}
	if n.OriginalIndex != nil {
		out.Set("originalIndex", intValue(*n.OriginalIndex))
	}
	if n.ParentIndex != nil {
		out.Set("parentIndex", intValue(*n.ParentIndex))
	}
	return out
}

func (n Node) MarshalJSON() ([]byte, error) {
	return jsonv.Marshal(n.ToValue())
}

func intValue(i int) jsonv.Number {
	return jsonv.Number(strconv.Itoa(i))
}

func intPtr(i int) *int { return &i }
