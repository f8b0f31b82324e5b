package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"remock.dev/pkg/remock/internal/mock"
	m "remock.dev/pkg/remock/internal/model"
)

// fakeWorkflow records the arguments of the last invocation of each method.
type fakeWorkflow struct {
	runArgs     *mock.RunArgs
	slotsArgs   *mock.SlotsArgs
	consoleArgs *mock.ConsoleArgs
	err         error
}

func (f *fakeWorkflow) Run(_ context.Context, args mock.RunArgs) error {
	f.runArgs = &args
	return f.err
}

func (f *fakeWorkflow) Slots(_ context.Context, args mock.SlotsArgs) error {
	f.slotsArgs = &args
	return f.err
}

func (f *fakeWorkflow) Console(_ context.Context, args mock.ConsoleArgs) error {
	f.consoleArgs = &args
	return f.err
}

func swapWorkflow(t *testing.T) *fakeWorkflow {
	t.Helper()

	fake := &fakeWorkflow{}
	original := workflow
	workflow = fake
	t.Cleanup(func() { workflow = original })

	return fake
}

func newTestRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}

func TestRunCmd_ForwardsScriptsAndCalls(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())

	cmd.SetArgs([]string{"run", "a.cls", "b.cls", "--call", "A.x()", "--call", "B.y(1)"})
	err := cmd.Execute()
	require.NoError(t, err)

	require.NotNil(t, fake.runArgs)
	assert.Equal(t, []m.Path{"a.cls", "b.cls"}, fake.runArgs.Scripts)
	assert.Equal(t, []string{"A.x()", "B.y(1)"}, fake.runArgs.Calls)
}

func TestRunCmd_ForwardsPlanFlag(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())

	cmd.SetArgs([]string{"run", "--plan", "mocks.yaml", "a.cls"})
	err := cmd.Execute()
	require.NoError(t, err)

	require.NotNil(t, fake.runArgs)
	assert.Equal(t, m.Path("mocks.yaml"), fake.runArgs.Plan)
}

func TestRunCmd_RequiresScripts(t *testing.T) {
	swapWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	assert.Error(t, err)
}
