package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "bi", cmd.Use)
	assert.Contains(t, cmd.Long, "autocomplete")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"seed", "search", "autocomplete", "get"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestAutoCompleteCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	acCmd, _, err := cmd.Find([]string{"autocomplete"})
	require.NoError(t, err)

	typeFlag := acCmd.Flags().Lookup("type")
	require.NotNil(t, typeFlag)
	assert.Equal(t, "t", typeFlag.Shorthand)
	assert.Equal(t, "all", typeFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := runCLI(t, "search", "--format", "xml", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
