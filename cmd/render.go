package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	domainreview "recruitflow/internal/domain/review"
)

var statusColors = map[domainreview.Status]*color.Color{
	domainreview.StatusSubmitted: color.New(color.FgCyan),
	domainreview.StatusFirstPass: color.New(color.FgYellow),
	domainreview.StatusFinalPass: color.New(color.FgGreen),
	domainreview.StatusRejected:  color.New(color.FgRed),
}

// statusLabel colors the human label; color is dropped when stdout is not a terminal.
func statusLabel(status string) string {
	s := domainreview.Status(status)
	c, ok := statusColors[s]
	if !ok {
		return status
	}
	return c.Sprint(s.Label())
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func optionalTotal(total *int) string {
	if total == nil {
		return "-"
	}
	return strconv.Itoa(*total)
}

func optionalID(id *uint64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
