package behavior

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/The-Foxer/gacha-party/internal/jsonv"
)

const sampleDataset = `{
	"boss_dragon": {
		"stage1": [{"method":"useSkill","param":[1001]}],
		"stage2": [{"type":"selector"}]
	},
	"mob_slime": {"idle": [{"method":"wait","param":1}]},
	"disabled": null,
	"listed": [[{"method":"a"}], [{"method":"b"}]],
	"scalar": "oops"
}`

func TestStoreFromObject(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(sampleDataset))
	require.NoError(t, err)
	require.Equal(t, []string{"boss_dragon", "mob_slime", "disabled", "listed", "scalar"}, s.Names())
	require.Equal(t, 5, s.Len())

	stages, ok := s.ByName("boss_dragon")
	require.True(t, ok)
	require.Equal(t, []string{"stage1", "stage2"}, stages.Keys())

	raw, ok := s.Stage("mob_slime", "idle")
	require.True(t, ok)
	require.Equal(t, jsonv.KindArray, jsonv.KindOf(raw))
}

func TestStoreLookupMisses(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(sampleDataset))
	require.NoError(t, err)

	for _, name := range []string{"", "missing", "disabled", "BOSS_DRAGON"} {
		_, ok := s.ByName(name)
		require.Falsef(t, ok, "ByName(%q)", name)
		require.Zerof(t, s.Stages(name).Len(), "Stages(%q)", name)
	}

	_, ok := s.Stage("boss_dragon", "stage3")
	require.False(t, ok)
	_, ok = s.Stage("missing", "stage1")
	require.False(t, ok)
}

func TestStoreOddBehaviorValues(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(sampleDataset))
	require.NoError(t, err)

	listed, ok := s.ByName("listed")
	require.True(t, ok)
	require.Equal(t, []string{"0", "1"}, listed.Keys())

	scalar, ok := s.ByName("scalar")
	require.True(t, ok)
	require.Zero(t, scalar.Len())
}

func TestStoreStagesIsACopy(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(sampleDataset))
	require.NoError(t, err)

	stages := s.Stages("boss_dragon")
	stages.Delete("stage1")
	stages.Set("stage9", jsonv.Array{})

	require.Equal(t, []string{"stage1", "stage2"}, s.Stages("boss_dragon").Keys())
}

func TestStoreMergesFragments(t *testing.T) {
	t.Parallel()

	log, logs := observedLogger(zapcore.DebugLevel)
	s, err := LoadStore([]byte(`[
		{"atk": {"s1": [1]}},
		{"def": {"s1": [2]}, "heal": {"s1": [3]}},
		42,
		{"atk": {"s2": [4]}}
	]`), WithLogger(log))
	require.NoError(t, err)
	require.Equal(t, []string{"atk", "def", "heal"}, s.Names())

	// later fragments win, whole value replaced
	require.Equal(t, []string{"s2"}, s.Stages("atk").Keys())
	require.Equal(t, 1, logs.FilterMessage("skipping non-object dataset fragment").Len())
}

func TestStoreBadShape(t *testing.T) {
	t.Parallel()

	for _, raw := range []jsonv.Value{nil, jsonv.Null{}, jsonv.String("x"), jsonv.Number("1"), jsonv.Bool(true)} {
		log, logs := observedLogger(zapcore.WarnLevel)
		s, err := NewStore(raw, WithLogger(log))
		require.True(t, errors.Is(err, ErrDatasetShape))
		require.NotNil(t, s)
		require.Empty(t, s.Names())
		require.Equal(t, 1, logs.Len())
	}
}

func TestStoreInvalidJSON(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(`{"broken":`))
	require.ErrorIs(t, err, jsonv.ErrInvalidJSON)
	require.NotNil(t, s)
	require.Zero(t, s.Len())
}

func TestStoreMatchesNormalizedNames(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(`{"cafe\u0301": {"s": []}}`))
	require.NoError(t, err)

	require.Equal(t, []string{"cafe\u0301"}, s.Names())
	_, ok := s.ByName("caf\u00e9")
	require.True(t, ok)
	_, ok = s.ByName("cafe\u0301")
	require.True(t, ok)
}

func TestStoreKeepsKeysDifferingInNormalization(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(`{"caf\u00e9": {"a": [1]}, "cafe\u0301": {"b": [2]}}`))
	require.NoError(t, err)

	require.Equal(t, []string{"caf\u00e9", "cafe\u0301"}, s.Names())
	require.Equal(t, 2, s.Len())
	require.Equal(t, []string{"a"}, s.Stages("caf\u00e9").Keys())
	require.Equal(t, []string{"b"}, s.Stages("cafe\u0301").Keys())
}

func TestStoreCountSkipsFalsyBehaviors(t *testing.T) {
	t.Parallel()

	s, err := LoadStore([]byte(`{"boss": {"s": []}, "disabled": null, "off": false}`))
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	require.Equal(t, 1, s.Count())
}

func TestLoadStoreFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ai_behavior_data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o644))

	s, err := LoadStoreFile(path)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())

	_, err = LoadStoreFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
