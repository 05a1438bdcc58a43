package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contour-labs/recdiff/core/diff"
	"github.com/contour-labs/recdiff/core/record"
)

func TestParse_Mapping(t *testing.T) {
	doc, err := Parse([]byte("name: Jo\nage: 40\n"), "person")
	require.NoError(t, err)

	rec, ok := doc.(record.Record)
	require.True(t, ok, "mapping should load as a record")
	assert.Equal(t, "person", rec.RecordType().Name())

	name, ok := rec.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Jo", name)

	age, ok := rec.Get("age")
	require.True(t, ok)
	assert.Equal(t, 40, age)
}

func TestParse_JSONIsYAML(t *testing.T) {
	doc, err := Parse([]byte(`{"name": "Jo", "tags": ["x", "y"]}`), "person")
	require.NoError(t, err)

	rec, ok := doc.(record.Record)
	require.True(t, ok)

	tags, ok := rec.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []any{"x", "y"}, tags)
}

func TestParse_NestedStructure(t *testing.T) {
	src := []byte(`
name: Jo
address:
  city: Wellington
friends:
  - name: Sam
  - name: Alex
    age: 31
`)
	doc, err := Parse(src, "person")
	require.NoError(t, err)

	rec := doc.(record.Record)

	addr, ok := rec.Get("address")
	require.True(t, ok)
	addrRec, ok := addr.(record.Record)
	require.True(t, ok, "nested mapping should load as a record")
	assert.Equal(t, "person.address", addrRec.RecordType().Name())

	friends, ok := rec.Get("friends")
	require.True(t, ok)
	coll, ok := friends.(record.Collection)
	require.True(t, ok, "array of mappings should load as a keyed collection")

	// Items share one inferred type spanning every key seen.
	itemType := coll.CollType().ItemType()
	require.NotNil(t, itemType)
	names := itemType.FieldNames()
	assert.Equal(t, []string{"age", "name"}, names)
}

func TestParse_ScalarArrayStaysPlain(t *testing.T) {
	doc, err := Parse([]byte("- 1\n- 2\n"), "nums")
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, doc)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("{unclosed: ["), "bad")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DiffTwoDocuments(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.yaml")
	otherPath := filepath.Join(dir, "other.yaml")

	require.NoError(t, os.WriteFile(basePath, []byte("name: Jo\nphone: '555'\n"), 0o644))
	require.NoError(t, os.WriteFile(otherPath, []byte("name: Jo\nphone: '556'\n"), 0o644))

	base, err := Load(basePath)
	require.NoError(t, err)
	other, err := Load(otherPath)
	require.NoError(t, err)

	// Inferred types are per-document, so duck typing is required.
	res, err := diff.Compare(base, other, nil, diff.DuckType(true))
	require.NoError(t, err)

	require.Equal(t, 1, res.Len())
	assert.Equal(t, diff.Modified, res.Entries[0].Kind)
	assert.Equal(t, ".phone", res.Entries[0].Base.Path())
}
