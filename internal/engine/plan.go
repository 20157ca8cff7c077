package engine

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ivlev/filmstrip/internal/assemble"
	"github.com/ivlev/filmstrip/internal/walker"
)

// renderPlan lists every frame's source origin and its slot in the sheet.
func renderPlan(res *walker.Result, width, height uint32) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Source X", "Source Y", "Ideal X", "Ideal Y", "Sheet Y"})

	for _, f := range res.Frames {
		slot := assemble.Slot(width, height, f.Index)
		tw.AppendRow(table.Row{
			f.Index,
			f.X,
			f.Y,
			strconv.FormatFloat(float64(f.IdealX), 'f', 2, 32),
			strconv.FormatFloat(float64(f.IdealY), 'f', 2, 32),
			slot.Min.Y,
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "stop", res.Stop.String()})

	configs := make([]table.ColumnConfig, 0, 6)
	for i := 1; i <= 6; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
