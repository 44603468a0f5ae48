package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// Write renders doc to w in the requested format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		_, err := io.WriteString(w, RenderText(doc))
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// RenderText renders one table per evaluated log, an error line per failed
// log, and a closing summary line.
func RenderText(doc Document) string {
	var b strings.Builder
	for i, log := range doc.Logs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(log.Path)
		b.WriteString("\n")
		if log.Failed() {
			b.WriteString("  error: ")
			b.WriteString(log.Error)
			b.WriteString("\n")
			continue
		}
		b.WriteString(renderLogTable(log))
		b.WriteString("\n")
	}
	if len(doc.Logs) > 1 {
		b.WriteString("\n")
		b.WriteString(renderSummaryLine(doc.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

func renderLogTable(log Log) string {
	rows := make([][]string, 0, len(log.Criteria))
	for _, c := range log.Criteria {
		status := "ok"
		points := ""
		if c.Violated {
			status = "violated"
			points = "-" + strconv.Itoa(c.Points)
		}
		rows = append(rows, []string{string(c.ID), c.Description, status, points})
	}
	footer := []string{"", "Score", strconv.Itoa(log.Score), "-" + strconv.Itoa(log.DeductedPoints)}
	return RenderTable(
		[]string{"Criterion", "Description", "Status", "Points"},
		rows,
		footer,
		[]Alignment{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	)
}

func renderSummaryLine(s Summary) string {
	return fmt.Sprintf("%d logs: %d evaluated, %d clean, %d failed", s.Total, s.Evaluated, s.Clean, s.Failed)
}

// Alignment sets a column's horizontal alignment in RenderTable.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable renders a rounded table. Short rows are padded; footer may be
// nil.
func RenderTable(headers []string, rows [][]string, footer []string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
