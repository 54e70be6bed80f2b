package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	in := payload{Name: "test", Count: 7}
	require.NoError(t, s.WriteJSON("out.json", in))
	assert.True(t, s.Exists("out.json"))

	var out payload
	require.NoError(t, s.ReadJSON("out.json", &out))
	assert.Equal(t, in, out)
}

func TestWriteCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewStore(dir)

	require.NoError(t, s.WriteJSON("x.json", payload{}))
	assert.FileExists(t, filepath.Join(dir, "x.json"))
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.WriteJSON("x.json", payload{Name: "a"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.WriteJSON("x.json", payload{Count: 1}))
	require.NoError(t, s.WriteJSON("x.json", payload{Count: 2}))

	var out payload
	require.NoError(t, s.ReadJSON("x.json", &out))
	assert.Equal(t, 2, out.Count)
}

func TestReadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	var out payload
	assert.Error(t, s.ReadJSON("missing.json", &out))
	assert.False(t, s.Exists("missing.json"))
}
