package devseed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableSeedYAML(t *testing.T) {
	data := []byte("limelight:\n  tx: -4.5\n  tv: 1\nlimelight-rear:\n  ta: 12\n")

	entries, err := ParseTableSeed(data, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Table: "limelight", Key: "tv", Value: 1},
		{Table: "limelight", Key: "tx", Value: -4.5},
		{Table: "limelight-rear", Key: "ta", Value: 12},
	}, entries)
}

func TestLoadTableSeedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"limelight":{"ta":42.5}}`), 0o644))

	entries, err := LoadTableSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Table: "limelight", Key: "ta", Value: 42.5}}, entries)
}

func TestParseTableSeedErrors(t *testing.T) {
	_, err := ParseTableSeed([]byte(`{"limelight":{"ta":"high"}}`), ".json")
	assert.Error(t, err)

	_, err = ParseTableSeed([]byte(`{"":{"ta":1}}`), ".json")
	assert.Error(t, err)

	_, err = LoadTableSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
