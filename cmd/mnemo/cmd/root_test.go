package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "ipc", "split", "repl", "define", "closest", "version"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootPersistentFlags(t *testing.T) {
	root := NewRootCmd()
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}

func TestVersionFlag(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "mnemo version "+Version+"\n", out.String())
}

func TestSplitRequiresWord(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"split"})

	assert.Error(t, root.Execute())
}
