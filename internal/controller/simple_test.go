package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "remock.dev/pkg/remock/internal/model"
)

func newCaptureUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_DisplaySlots(t *testing.T) {
	ui, out := newCaptureUI()

	err := ui.DisplaySlots(context.Background(), []m.SlotInfo{
		{Address: "0:0:0", Module: "counter", Class: "Counter", Method: "bump", Rewritten: true, Overrides: 2},
		{Address: "0:0:1", Module: "counter", Class: "Counter", Method: "get_count", Synthesized: true},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "0:0:0")
	assert.Contains(t, output, "bump")
	assert.Contains(t, output, "rewritten")
	assert.Contains(t, output, "accessor")
	assert.Contains(t, output, "Total Slots")
}

func TestSimpleUI_DisplayCallResults(t *testing.T) {
	ui, out := newCaptureUI()

	err := ui.DisplayCallResults(context.Background(), []m.CallResult{
		{Expr: "Counter.bump()", Value: int64(1)},
		{Expr: "Counter.report()", Value: "counter: 1"},
		{Expr: "Ghost.m()", Err: errors.New("no loaded class named Ghost")},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Counter.bump()")
	assert.Contains(t, output, `"counter: 1"`)
	assert.Contains(t, output, "error: no loaded class named Ghost")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out := newCaptureUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ui.DisplaySlots(ctx, nil)
	assert.Error(t, err)

	err = ui.DisplayCallResults(ctx, nil)
	assert.Error(t, err)

	assert.Empty(t, out.String())
}

func TestRenderSlotTable_KindColumn(t *testing.T) {
	table := RenderSlotTable([]m.SlotInfo{
		{Method: "plain"},
		{Method: "mocked", Rewritten: true},
		{Method: "get_x", Synthesized: true},
	})

	assert.Contains(t, table, "method")
	assert.Contains(t, table, "rewritten")
	assert.Contains(t, table, "accessor")
}
