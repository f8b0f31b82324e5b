package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "remock.dev/pkg/remock/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySlots renders the call-slot table.
func (s *SimpleUI) DisplaySlots(ctx context.Context, slots []m.SlotInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print("\n" + RenderSlotTable(slots))

	return nil
}

// DisplayCallResults renders the outcome of scripted invocations.
func (s *SimpleUI) DisplayCallResults(ctx context.Context, results []m.CallResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Call", "Result"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, r := range results {
		value := m.FormatValue(r.Value)
		if r.Err != nil {
			value = "error: " + r.Err.Error()
		}

		table.Append([]string{r.Expr, value})
	}

	table.Render()
	s.cmd.Print("\n" + buf.String())

	return nil
}

// RenderSlotTable renders slot rows as a table string. Shared with the
// console's `slots` command.
func RenderSlotTable(slots []m.SlotInfo) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Address", "Module", "Class", "Method", "Args", "Kind", "Overrides"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, s := range slots {
		kind := "method"
		if s.Synthesized {
			kind = "accessor"
		} else if s.Rewritten {
			kind = "rewritten"
		}

		table.Append([]string{
			s.Address,
			s.Module,
			s.Class,
			s.Method,
			fmt.Sprintf("%d", s.Arity),
			kind,
			fmt.Sprintf("%d", s.Overrides),
		})
	}

	table.SetFooter([]string{"", "", "", "", "", "Total Slots", fmt.Sprintf("%d", len(slots))})
	table.Render()

	return buf.String()
}
