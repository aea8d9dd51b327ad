package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "retroshelf", cmd.Use,
		"Command name should be retroshelf")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3")
	assert.Contains(t, output, "abc123")
	assert.NotContains(t, output, "retroshelf version:",
		"Should use custom version template")
}

func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1.2.3")
}

// TestGetRootCmd_Descriptions verifies short and long help.
func TestGetRootCmd_Descriptions(t *testing.T) {
	cmd := getRootCmd()

	assert.Contains(t, cmd.Short, "retro")
	assert.Contains(t, cmd.Long, "SQLite")
	assert.Contains(t, cmd.Long, "retroshelf migrate")
	assert.Contains(t, cmd.Long, "written off")
}

// TestGetRootCmd_Subcommands verifies all commands are attached.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{
		"migrate", "seed", "taxonomy", "item", "image",
		"log", "report", "verify", "optimize",
	} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

// TestGetRootCmd_PersistentFlags verifies storage overrides.
func TestGetRootCmd_PersistentFlags(t *testing.T) {
	cmd := getRootCmd()

	db := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, db)
	assert.Equal(t, "d", db.Shorthand)
	assert.Equal(t, "", db.DefValue)

	images := cmd.PersistentFlags().Lookup("images")
	require.NotNil(t, images)
}

func TestGetRootCmd_Hooks(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.PersistentPostRunE,
		"PersistentPostRunE should close the log file")
	assert.NotNil(t, cmd.RunE,
		"RunE should be set to handle version flag")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	assert.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

func TestStorageFlags(t *testing.T) {
	cmd := getRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--db", "/tmp/shelf.db", "--images", "/tmp/pics",
	}))

	opts := storageFlags(cmd)
	assert.Len(t, opts, 2)

	cmd = getRootCmd()
	assert.Empty(t, storageFlags(cmd))
}
