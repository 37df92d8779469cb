package behavior

import "github.com/The-Foxer/gacha-party/internal/jsonv"

const DefaultMaxDepth = 10

// Shape is the classification of a raw behaviour node.
type Shape int

const (
	ShapeSequence Shape = iota
	ShapeAction
	ShapeComposite
	ShapeObject
	ShapeLiteral
)

func (s Shape) String() string {
	switch s {
	case ShapeSequence:
		return "sequence"
	case ShapeAction:
		return "action"
	case ShapeComposite:
		return "composite"
	case ShapeObject:
		return "object"
	}
	return "literal"
}

// Classify inspects a raw node once. The order matters: a node with both
// "method" and "type" is an action.
func Classify(v jsonv.Value) Shape {
	switch t := v.(type) {
	case jsonv.Array:
		return ShapeSequence
	case *jsonv.Object:
		switch {
		case t.Has("method"):
			return ShapeAction
		case t.Has("type"):
			return ShapeComposite
		}
		return ShapeObject
	}
	return ShapeLiteral
}

// Result is the output of one Normalize call: a single node, or a flat
// fan-out when the raw node was an array.
type Result struct {
	nodes  []Node
	fanout bool
}

func (r Result) IsFanout() bool { return r.fanout }

// Nodes returns the produced nodes in order; a single result has one.
func (r Result) Nodes() []Node { return r.nodes }

// Node returns the node of a single result.
func (r Result) Node() (Node, bool) {
	if r.fanout || len(r.nodes) != 1 {
		return Node{}, false
	}
	return r.nodes[0], true
}

func single(n Node) Result { return Result{nodes: []Node{n}} }

// Normalizer turns raw behaviour nodes into Nodes. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	maxDepth int
}

func NewNormalizer(opts ...Option) *Normalizer {
	o := buildOptions(opts)
	return &Normalizer{maxDepth: o.maxDepth}
}

func (n *Normalizer) MaxDepth() int { return n.maxDepth }

// Normalize converts v, found at the given recursion depth. Input is
// assumed to be tree shaped; the depth limit is the only guard against
// runaway recursion.
func (n *Normalizer) Normalize(v jsonv.Value, depth int) Result {
	if depth > n.maxDepth {
		return single(depthLimitNode())
	}
	switch Classify(v) {
	case ShapeSequence:
		items := v.(jsonv.Array)
		out := Result{nodes: make([]Node, 0, len(items)), fanout: true}
		for _, item := range items {
			// nested arrays are spliced in place
			out.nodes = append(out.nodes, n.Normalize(item, depth+1).nodes...)
		}
		return out
	case ShapeAction:
		return single(actionNode(v.(*jsonv.Object), depth))
	case ShapeComposite:
		return single(compositeNode(v.(*jsonv.Object), depth))
	case ShapeObject:
		return single(objectNode(v.(*jsonv.Object), depth))
	}
	return single(Node{
		Kind:   KindLiteral,
		Method: MethodLiteral,
		Param:  jsonv.Clone(v),
		Index:  depth,
	})
}

func depthLimitNode() Node {
	return Node{
		Kind:   KindDepthLimit,
		Method: MethodMaxDepth,
		Param:  jsonv.String("..."),
		Type:   jsonv.String("depth_limit"),
	}
}

func member(o *jsonv.Object, key string) jsonv.Value {
	v, _ := o.Get(key)
	return v
}

func actionNode(o *jsonv.Object, depth int) Node {
	return Node{
		Kind:     KindAction,
		Method:   nameOf(member(o, "method"), MethodUnknown),
		Param:    jsonv.Clone(member(o, "param")),
		Yield:    jsonv.Clone(member(o, "yield")),
		Type:     jsonv.Clone(member(o, "type")),
		Operator: jsonv.Clone(member(o, "operator")),
		Index:    depth,
	}
}

// compositeNode covers sequence/selector/condition style nodes. Their
// children are only collected when the node itself is an array, and an
// object never is, so Children stays empty.
func compositeNode(o *jsonv.Object, depth int) Node {
	return Node{
		Kind:     KindComposite,
		Method:   nameOf(member(o, "type"), TypeUnknown),
		Children: []Node{},
		Param:    jsonv.Clone(member(o, "param")),
		Index:    depth,
	}
}

func objectNode(o *jsonv.Object, depth int) Node {
	props := make([]Property, 0, o.Len())
	o.Each(func(key string, v jsonv.Value) bool {
		// "index" would clash with the node's own index
		if key != "index" {
			props = append(props, Property{Key: key, Value: jsonv.Clone(v)})
		}
		return true
	})
	return Node{
		Kind:           KindObject,
		Method:         MethodObjectProperty,
		Properties:     props,
		OriginalObject: jsonv.CloneObject(o),
		Index:          depth,
	}
}

// nameOf renders a method or type value; falsy values give fallback.
func nameOf(v jsonv.Value, fallback string) string {
	if !jsonv.Truthy(v) {
		return fallback
	}
	if s, ok := v.(jsonv.String); ok {
		return string(s)
	}
	if text := jsonv.Text(v); text != "" {
		return text
	}
	return fallback
}
