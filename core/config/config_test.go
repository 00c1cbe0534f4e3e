package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
version: v1.2.0
format: json
escapes: skip
digest: true
stats: true
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Version: "v1.2.0",
		Format:  "json",
		Escapes: "skip",
		Digest:  true,
		Stats:   true,
	}, cfg)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("digest: true\n"))
	require.NoError(t, err)

	want := Default()
	want.Digest = true
	assert.Equal(t, want, cfg)
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "\n", "# only a comment\n"} {
		cfg, err := Parse([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, Default(), cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "unknown key", input: "colour: red\n", wantErr: "colour"},
		{name: "bad format", input: "format: xml\n", wantErr: "/format"},
		{name: "bad escapes", input: "escapes: maybe\n", wantErr: "/escapes"},
		{name: "digest not bool", input: "digest: sometimes\n", wantErr: "/digest"},
		{name: "version not semver", input: "version: \"1.0\"\n", wantErr: "/version"},
		{name: "future major", input: "version: v2.0.0\n", wantErr: "unsupported configuration version v2.0.0"},
		{name: "not a mapping", input: "- format\n", wantErr: "does not match schema"},
		{name: "broken yaml", input: "format: [\n", wantErr: "invalid YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "idfilter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: cbor\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cbor", cfg.Format)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsSemver(t *testing.T) {
	assert.True(t, isSemver("v1.0.0"))
	assert.True(t, isSemver("v1.2.3-rc.1"))
	assert.False(t, isSemver("1.0.0"))
	assert.False(t, isSemver("latest"))
	assert.True(t, isSemver(3.0), "non-strings are left to type checks")
}
