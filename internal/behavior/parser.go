package behavior

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/The-Foxer/gacha-party/internal/jsonv"
)

// Parser drives the normalizer over a whole behaviour tree, one top-level
// node at a time.
type Parser struct {
	norm *Normalizer
	log  *zap.Logger
}

func NewParser(opts ...Option) *Parser {
	o := buildOptions(opts)
	norm := o.normalizer
	if norm == nil {
		norm = &Normalizer{maxDepth: o.maxDepth}
	}
	return &Parser{norm: norm, log: o.log}
}

func (p *Parser) Normalizer() *Normalizer { return p.norm }

// Parse normalizes every element of tree. Fan-out results are flattened and
// tagged with ParentIndex; single nodes get OriginalIndex. An element that
// fails is replaced by a parse_error node and the rest still get parsed.
// A tree that is not an array gives no nodes and an ErrInputShape error.
func (p *Parser) Parse(tree jsonv.Value) ([]Node, error) {
	items, ok := tree.(jsonv.Array)
	if !ok {
		kind := jsonv.KindOf(tree)
		p.log.Warn("behavior tree is not an array", zap.Stringer("kind", kind))
		return []Node{}, fmt.Errorf("%w: got %s", ErrInputShape, kind)
	}

	out := make([]Node, 0, len(items))
	for i, raw := range items {
		res, err := p.normalizeTop(raw)
		if err != nil {
			p.log.Error("failed to normalize behavior node",
				zap.Int("index", i),
				zap.String("node", rawText(raw)),
				zap.Error(err))
			out = append(out, Node{
				Kind:          KindParseError,
				Method:        MethodParseError,
				Param:         jsonv.String(rawText(raw)),
				OriginalIndex: intPtr(i),
			})
			continue
		}
		if res.IsFanout() {
			for _, n := range res.Nodes() {
				n.ParentIndex = intPtr(i)
				out = append(out, n)
			}
			continue
		}
		for _, n := range res.Nodes() {
			n.OriginalIndex = intPtr(i)
			out = append(out, n)
		}
	}
	return out, nil
}

// ParseStage parses the node sequence stored under behavior/stage.
func (p *Parser) ParseStage(s *Store, behavior, stage string) ([]Node, error) {
	if _, ok := s.ByName(behavior); !ok {
		return nil, fmt.Errorf("%w: %q", ErrBehaviorNotFound, behavior)
	}
	raw, ok := s.Stage(behavior, stage)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrStageNotFound, stage, behavior)
	}
	nodes, err := p.Parse(raw)
	if err != nil {
		return nodes, fmt.Errorf("%s/%s: %w", behavior, stage, err)
	}
	return nodes, nil
}

func (p *Parser) normalizeTop(raw jsonv.Value) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize: %v", r)
		}
	}()
	return p.norm.Normalize(raw, 0), nil
}

// rawText is the JSON text of a node for diagnostics. It never panics.
func rawText(v jsonv.Value) (text string) {
	defer func() {
		if recover() != nil {
			text = fmt.Sprintf("%#v", v)
		}
	}()
	b, err := jsonv.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}
