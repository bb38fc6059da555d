package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Outputs lists the supported output formats.
var Outputs = []string{OutputTable, OutputJSON, OutputYAML}

// Render writes steps to w in the requested format.
func Render(w io.Writer, steps []Step, output string) error {
	switch output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(steps)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(steps); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable:
		renderTable(w, steps)
		return nil
	default:
		return fmt.Errorf("unknown output %q, expected one of %v", output, Outputs)
	}
}

func renderTable(w io.Writer, steps []Step) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"step", "op", "requested", "transferred", "values", "result", "len", "full"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(lo.Map(steps, func(s Step, _ int) []string {
		return []string{
			strconv.Itoa(s.Index),
			s.Op,
			strconv.Itoa(s.Requested),
			strconv.Itoa(s.Transferred),
			joinValues(s.Values),
			s.Result,
			strconv.Itoa(s.Len),
			lo.Ternary(s.Full, "yes", "no"),
		}
	}))
	table.Render()
}

func joinValues(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(lo.Map(values, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), ",")
}
