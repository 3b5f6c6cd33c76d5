package oasplit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSON(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestLoadMissingFile(t *testing.T) {
	doc, err := Load("testdata/does_not_exist.yaml")
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestSplitWritesOneFilePerSchema(t *testing.T) {
	doc, err := Load("testdata/petstore.yaml")
	require.NoError(t, err)

	outDir := t.TempDir()
	res, err := Split(doc, outDir, Options{})
	require.NoError(t, err)

	// Sorted name order for consistent output.
	assert.Equal(t, []string{
		filepath.Join(outDir, "Error.json"),
		filepath.Join(outDir, "Pet.json"),
		filepath.Join(outDir, "Pets.json"),
		filepath.Join(outDir, "Widget.json"),
	}, res.Files)

	pet := readJSON(t, filepath.Join(outDir, "Pet.json"))
	assert.Equal(t, SchemaDraft, pet["$schema"])
	assert.Equal(t, "Pet", pet["title"])
	assert.Equal(t, "object", pet["type"])
	assert.ElementsMatch(t, []interface{}{"id", "name"}, pet["required"])
}

func TestSplitSourceTitleWins(t *testing.T) {
	doc, err := Load("testdata/petstore.yaml")
	require.NoError(t, err)

	outDir := t.TempDir()
	_, err = Split(doc, outDir, Options{})
	require.NoError(t, err)

	widget := readJSON(t, filepath.Join(outDir, "Widget.json"))
	assert.Equal(t, "CustomTitle", widget["title"])
	assert.Equal(t, SchemaDraft, widget["$schema"])
}

func TestSplitPreservesRefs(t *testing.T) {
	doc, err := Load("testdata/petstore.yaml")
	require.NoError(t, err)

	outDir := t.TempDir()
	_, err = Split(doc, outDir, Options{})
	require.NoError(t, err)

	pets := readJSON(t, filepath.Join(outDir, "Pets.json"))
	assert.Equal(t, "array", pets["type"])
	items, ok := pets["items"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet", items["$ref"])
}

func TestSplitValidateFlagsDanglingRefs(t *testing.T) {
	doc, err := Load("testdata/petstore.yaml")
	require.NoError(t, err)

	outDir := t.TempDir()
	res, err := Split(doc, outDir, Options{Validate: true})
	require.NoError(t, err)

	// All four files are still written; only the one whose $ref no
	// longer resolves standalone is reported.
	assert.Len(t, res.Files, 4)
	assert.Equal(t, []string{filepath.Join(outDir, "Pets.json")}, res.Invalid)
}

func TestSplitNoComponentSchemas(t *testing.T) {
	doc, err := Load("testdata/nocomponents.yaml")
	require.NoError(t, err)

	outDir := t.TempDir()
	res, err := Split(doc, outDir, Options{Validate: true})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Empty(t, res.Invalid)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSplitDeterministic(t *testing.T) {
	doc, err := Load("testdata/petstore.yaml")
	require.NoError(t, err)

	first := t.TempDir()
	second := t.TempDir()
	_, err = Split(doc, first, Options{})
	require.NoError(t, err)
	_, err = Split(doc, second, Options{})
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first, "Pet.json"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "Pet.json"))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
