package behavior

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/The-Foxer/gacha-party/internal/jsonv"
)

// Store holds the behaviour dataset: behaviour name -> stage name -> raw
// stage value. It is read-only after construction.
type Store struct {
	data *jsonv.Object
	// nfc maps the NFC form of each key to the first raw key with that form.
	nfc  map[string]string
	log  *zap.Logger
}

// NewStore accepts either the dataset object itself or an array of object
// fragments merged left to right. Any other shape yields an empty but
// usable Store together with an ErrDatasetShape error.
func NewStore(raw jsonv.Value, opts ...Option) (*Store, error) {
	o := buildOptions(opts)
	s := &Store{data: jsonv.NewObject(), nfc: map[string]string{}, log: o.log}

	switch t := raw.(type) {
	case *jsonv.Object:
		if t != nil {
			s.merge(t)
		}
	case jsonv.Array:
		for i, item := range t {
			frag, ok := item.(*jsonv.Object)
			if !ok || frag == nil {
				s.log.Debug("skipping non-object dataset fragment",
					zap.Int("index", i), zap.Stringer("kind", jsonv.KindOf(item)))
				continue
			}
			s.merge(frag)
		}
	default:
		kind := jsonv.KindOf(raw)
		s.log.Warn("behavior dataset has unexpected shape", zap.Stringer("kind", kind))
		return s, fmt.Errorf("%w: got %s", ErrDatasetShape, kind)
	}

	s.log.Debug("behavior dataset loaded", zap.Int("behaviors", s.data.Len()))
	return s, nil
}

// LoadStore decodes data and builds a Store from it.
func LoadStore(data []byte, opts ...Option) (*Store, error) {
	raw, err := jsonv.ParseBytes(data)
	if err != nil {
		s, _ := NewStore(jsonv.NewObject(), opts...)
		return s, fmt.Errorf("load behavior data: %w", err)
	}
	return NewStore(raw, opts...)
}

func LoadStoreFile(path string, opts ...Option) (*Store, error) {
	raw, err := jsonv.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load behavior data: %w", err)
	}
	return NewStore(raw, opts...)
}

func (s *Store) merge(frag *jsonv.Object) {
	frag.Each(func(key string, v jsonv.Value) bool {
		s.data.Set(key, v)
		k := norm.NFC.String(key)
		if _, seen := s.nfc[k]; !seen {
			s.nfc[k] = key
		}
		return true
	})
}

func (s *Store) Len() int { return s.data.Len() }

// Count is the number of behaviours ByName resolves, skipping falsy
// entries such as null.
func (s *Store) Count() int {
	n := 0
	s.data.Each(func(_ string, v jsonv.Value) bool {
		if jsonv.Truthy(v) {
			n++
		}
		return true
	})
	return n
}

// Names lists behaviour names in the order they were loaded.
func (s *Store) Names() []string { return s.data.Keys() }

func (s *Store) lookup(name string) (jsonv.Value, bool) {
	if name == "" {
		return nil, false
	}
	v, ok := s.data.Get(name)
	if !ok {
		if raw, found := s.nfc[norm.NFC.String(name)]; found {
			v, ok = s.data.Get(raw)
		}
	}
	if !ok || !jsonv.Truthy(v) {
		return nil, false
	}
	return v, true
}

// ByName returns the stage mapping of a behaviour.
func (s *Store) ByName(name string) (*jsonv.Object, bool) {
	v, ok := s.lookup(name)
	if !ok {
		return nil, false
	}
	return stageView(v), true
}

// Stages is ByName with an empty mapping for unknown behaviours. The
// returned object is a fresh container; the stage values inside are shared
// with the dataset and must not be modified.
func (s *Store) Stages(name string) *jsonv.Object {
	if stages, ok := s.ByName(name); ok {
		return stages
	}
	return jsonv.NewObject()
}

func (s *Store) Stage(name, stage string) (jsonv.Value, bool) {
	return s.Stages(name).Get(stage)
}

// stageView lists the members of a behaviour value. Arrays are keyed by
// position; scalars have no stages.
func stageView(v jsonv.Value) *jsonv.Object {
	out := jsonv.NewObject()
	switch t := v.(type) {
	case *jsonv.Object:
		t.Each(func(key string, stage jsonv.Value) bool {
			out.Set(key, stage)
			return true
		})
	case jsonv.Array:
		for i, stage := range t {
			out.Set(strconv.Itoa(i), stage)
		}
	}
	return out
}
