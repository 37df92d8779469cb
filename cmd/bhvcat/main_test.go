package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testData = `[
	{"boss_dragon": {
		"stage1": [
			{"method":"lock_target","param":{"unitorder":"front"}},
			[{"method":"useSkill","param":[1001]},{"method":"wait","param":1}],
			{"type":"selector"}
		],
		"stage2": [{"area":"north","count":3}, 42],
		"notes": "not a tree"
	}},
	{"mob_slime": {"idle": [{"method":"wait","param":2}]}}
]`

func writeData(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ai_behavior_data.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "fatal")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNames(t *testing.T) {
	out, err := run(t, "--data", writeData(t, testData), "names")
	require.NoError(t, err)
	require.Equal(t, "boss_dragon\nmob_slime\n", out)
}

func TestStages(t *testing.T) {
	data := writeData(t, testData)

	out, err := run(t, "--data", data, "stages", "boss_dragon")
	require.NoError(t, err)
	require.Equal(t, "stage1\nstage2\nnotes\n", out)

	_, err = run(t, "--data", data, "stages", "missing")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	out, err := run(t, "--data", writeData(t, testData), "parse", "boss_dragon", "stage1")
	require.NoError(t, err)
	require.JSONEq(t, `{"stage1":[
		{"method":"lock_target","param":{"unitorder":"front"},"index":0,"originalIndex":0},
		{"method":"useSkill","param":[1001],"index":1,"parentIndex":1},
		{"method":"wait","param":1,"index":1,"parentIndex":1},
		{"method":"selector","children":[],"index":0,"originalIndex":2}
	]}`, out)
}

func TestParseAllStagesResolved(t *testing.T) {
	out, err := run(t, "--data", writeData(t, testData), "parse", "--resolve", "boss_dragon")
	require.NoError(t, err)

	var got map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	require.Empty(t, got["notes"])

	first := got["stage1"][0]
	require.Equal(t, "锁定目标", first["label"])
	require.Equal(t, "front", first["display"])

	obj := got["stage2"][0]
	require.Equal(t, "object_property", obj["method"])
	require.Equal(t, "对象属性", obj["label"])
	require.NotContains(t, obj, "display")
}

func TestParseMaxDepthFlag(t *testing.T) {
	data := writeData(t, `{"deep": {"s": [[[["bottom"]]]]}}`)
	out, err := run(t, "--data", data, "--max-depth", "2", "parse", "deep", "s")
	require.NoError(t, err)
	require.JSONEq(t, `{"s":[{"method":"max_depth_reached","param":"...","type":"depth_limit","parentIndex":0}]}`, out)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "useSkill", "summon_minion")
	require.NoError(t, err)
	require.Equal(t, "useSkill\t使用技能\nsummon_minion\tsummon_minion\n", out)

	cfg := filepath.Join(t.TempDir(), "bhvcat.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("labels:\n  wait: Wait\n"), 0o644))
	out, err = run(t, "--config", cfg, "describe")
	require.NoError(t, err)
	require.Contains(t, out, "wait\tWait\n")
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 25)
}

func TestDump(t *testing.T) {
	out, err := run(t, "--data", writeData(t, testData), "--workers", "2", "dump")
	require.NoError(t, err)

	var got map[string]map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	require.Len(t, got["boss_dragon"]["stage1"], 4)
	require.Len(t, got["boss_dragon"]["stage2"], 2)
	require.Empty(t, got["boss_dragon"]["notes"])
	require.Equal(t, "wait", got["mob_slime"]["idle"][0]["method"])
}

func TestDumpStats(t *testing.T) {
	out, err := run(t, "--data", writeData(t, testData), "dump", "--stats")
	require.NoError(t, err)

	var got struct {
		Behaviors int `json:"behaviors"`
		Stages    int `json:"stages"`
		BadStages int `json:"bad_stages"`
		Nodes     int `json:"nodes"`
		ByMethod  map[string]struct {
			Count int    `json:"count"`
			Label string `json:"label"`
		} `json:"by_method"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 2, got.Behaviors)
	require.Equal(t, 4, got.Stages)
	require.Equal(t, 1, got.BadStages)
	require.Equal(t, 7, got.Nodes)
	require.Equal(t, 2, got.ByMethod["wait"].Count)
	require.Equal(t, "等待", got.ByMethod["wait"].Label)
}

func TestBadInputs(t *testing.T) {
	_, err := run(t, "--data", writeData(t, `{"broken":`), "names")
	require.Error(t, err)

	_, err = run(t, "--data", filepath.Join(t.TempDir(), "missing.json"), "names")
	require.Error(t, err)

	// a dataset of the wrong shape degrades to no behaviours
	out, err := run(t, "--data", writeData(t, `"just a string"`), "names")
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = run(t, "--workers", "0", "describe")
	require.Error(t, err)
}

func TestParseKeepsHTMLCharacters(t *testing.T) {
	data := writeData(t, `{"boss": {"s": [{"method":"check","param":"hp<0.3 && x>1"}]}}`)
	out, err := run(t, "--data", data, "parse", "boss", "s")
	require.NoError(t, err)
	require.Contains(t, out, `"param": "hp<0.3 && x>1"`)
	require.NotContains(t, out, `\u003c`)
}

func TestDumpStatsCountsResolvableBehaviors(t *testing.T) {
	data := writeData(t, `{"boss": {"s": [{"method":"wait"}]}, "disabled": null, "off": 0}`)
	out, err := run(t, "--data", data, "dump", "--stats")
	require.NoError(t, err)

	var got struct {
		Behaviors int `json:"behaviors"`
		Stages    int `json:"stages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 1, got.Behaviors)
	require.Equal(t, 1, got.Stages)

	names, err := run(t, "--data", data, "names")
	require.NoError(t, err)
	require.Equal(t, "boss\ndisabled\noff\n", names)
}
