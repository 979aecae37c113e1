package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOMLFileKeepsMissingKeys(t *testing.T) {
	path := writeFile(t, "name = \"pave\"\n")

	v := struct {
		Name  string `toml:"name"`
		Limit int    `toml:"limit"`
	}{Limit: 10}
	require.NoError(t, LoadTOMLFile(path, &v))
	assert.Equal(t, "pave", v.Name)
	assert.Equal(t, 10, v.Limit)
}

func TestParseTOMLWithRecoveryExtracts(t *testing.T) {
	path := writeFile(t, `
[server]
default_limit = 7
addr = ""
enabled = true
max_limit = "lots"
`)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)

	server, ok := ExtractSection(raw, "server")
	require.True(t, ok)

	n, ok := ExtractInt(server, "default_limit")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ExtractInt(server, "max_limit")
	assert.False(t, ok)

	_, ok = ExtractString(server, "addr")
	assert.False(t, ok)

	b, ok := ExtractBool(server, "enabled")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = ExtractSection(raw, "lookup")
	assert.False(t, ok)
}

func TestParseTOMLWithRecoveryRejectsGarbage(t *testing.T) {
	_, err := ParseTOMLWithRecovery(writeFile(t, "[server\nlimit = "))
	assert.Error(t, err)
}
