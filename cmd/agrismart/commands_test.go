package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallEnv(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "models")
	t.Setenv("AGRISMART_MODEL_DIR", dir)
	t.Setenv("AGRISMART_MODEL_SAMPLES", "300")
	t.Setenv("AGRISMART_MODEL_YIELD_TREES", "10")
	t.Setenv("AGRISMART_MODEL_CROP_TREES", "10")
	t.Setenv("AGRISMART_LOG_LEVEL", "ERROR")
	t.Setenv("AGRISMART_CONFIG", "")
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func decode(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &doc), out)
	return doc
}

func TestMissingInput(t *testing.T) {
	dir := smallEnv(t)

	for _, cmd := range []string{"predict_yield", "recommend_crops"} {
		out := run(t, cmd)
		assert.Equal(t, noInputMessage+"\n", out, cmd)
	}
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "nothing should be trained without input")
}

func TestUnknownCommand(t *testing.T) {
	smallEnv(t)
	assert.Equal(t, "Unknown command: harvest\n", run(t, "harvest"))
}

func TestMalformedInputPrintsErrorDocument(t *testing.T) {
	dir := smallEnv(t)

	doc := decode(t, run(t, "predict_yield", "{not json"))
	assert.Contains(t, doc, "error")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPredictTrainsOnFirstUse(t *testing.T) {
	dir := smallEnv(t)

	doc := decode(t, run(t, "predict_yield", `{"crop":"Wheat","temperature":21}`))
	require.NotContains(t, doc, "error")
	assert.Contains(t, doc, "predicted_yield")
	assert.Contains(t, doc, "yield_category")

	_, err := os.Stat(filepath.Join(dir, "training_stats.json"))
	require.NoError(t, err)

	doc = decode(t, run(t, "recommend_crops", `{}`))
	require.NotContains(t, doc, "error")
	assert.Contains(t, doc, "recommendations")

	doc = decode(t, run(t, "predict_yield", `{"state":"Atlantis"}`))
	assert.Contains(t, doc["error"], "Atlantis")
}

func TestTrainAndStatus(t *testing.T) {
	smallEnv(t)

	doc := decode(t, run(t, "status"))
	assert.Equal(t, false, doc["trained"])
	assert.Nil(t, doc["stats"])

	doc = decode(t, run(t, "train"))
	assert.EqualValues(t, 300, doc["training_samples"])
	assert.EqualValues(t, 60, doc["test_samples"])

	doc = decode(t, run(t, "status"))
	assert.Equal(t, true, doc["trained"])
	require.NotNil(t, doc["stats"])
}

func TestExportDataset(t *testing.T) {
	smallEnv(t)
	path := filepath.Join(t.TempDir(), "out", "data.xlsx")

	doc := decode(t, run(t, "export_dataset", "--out", path))
	assert.EqualValues(t, 300, doc["records"])
	assert.EqualValues(t, 42, doc["seed"])

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestHistoryWithoutDatabase(t *testing.T) {
	smallEnv(t)
	t.Setenv("AGRISMART_HISTORY_DSN", "")

	doc := decode(t, run(t, "history"))
	assert.Contains(t, doc["error"], "HISTORY_DSN")
}

func TestTrainFromExportedWorkbook(t *testing.T) {
	dir := smallEnv(t)
	path := filepath.Join(t.TempDir(), "data.xlsx")
	decode(t, run(t, "export_dataset", "--out", path))

	doc := decode(t, run(t, "train", "--from", path))
	require.NotContains(t, doc, "error")
	assert.EqualValues(t, 300, doc["training_samples"])

	_, err := os.Stat(filepath.Join(dir, "yield_model.gob"))
	require.NoError(t, err)

	doc = decode(t, run(t, "train", "--from", filepath.Join(t.TempDir(), "missing.xlsx")))
	assert.Contains(t, doc, "error")
}
