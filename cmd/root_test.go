package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "remock.dev/pkg/remock/internal/model"
)

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty", []string{}, []m.Path{}},
		{"single", []string{"counter.cls"}, []m.Path{m.Path("counter.cls")}},
		{
			"multiple",
			[]string{"a.cls", "b.cls", "c.cls"},
			[]m.Path{m.Path("a.cls"), m.Path("b.cls"), m.Path("c.cls")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePaths(tt.args))
		})
	}
}

func TestRootCmd_ShowsHelpWithoutArgs(t *testing.T) {
	cmd := newTestRootCmd()

	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["run"], "run command registered")
	assert.True(t, names["slots"], "slots command registered")
	assert.True(t, names["console"], "console command registered")
	assert.True(t, names["init"], "init command registered")
	assert.True(t, names["version"], "version command registered")
}
