package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"peakbridge/internal/peak"
)

const sheetName = "PEAK_IMPORT"

// Column width bounds. Auto-width outside these limits hurts more than
// it helps: id columns collapse, note columns swallow the screen.
const (
	minColWidth = 10
	maxColWidth = 60
)

// WriteXLSX renders rows as a styled spreadsheet: bold filled header,
// frozen header row, auto-filter, text format on code columns so
// leading zeros survive, two decimals on money columns.
func WriteXLSX(w io.Writer, rows []peak.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E8F1FF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "D0D7E2", Style: 1},
			{Type: "right", Color: "D0D7E2", Style: 1},
			{Type: "top", Color: "D0D7E2", Style: 1},
			{Type: "bottom", Color: "D0D7E2", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: header style: %w", err)
	}
	// 49 is the built-in "@" text format, 2 the built-in "0.00".
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: text style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: money style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: wrap style: %w", err)
	}

	widths := make([]int, len(peak.Columns))
	for i, c := range peak.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, c.Label); err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		widths[i] = len([]rune(c.Label))
	}

	for rowIdx, row := range rows {
		row.Seq = fmt.Sprintf("%d", rowIdx+1)
		m := row.Map()
		for colIdx, c := range peak.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			val := EscapeCell(m[c.Key])

			switch {
			case peak.NumericColumns[c.Key]:
				if n, err := strconv.ParseFloat(val, 64); err == nil {
					_ = f.SetCellValue(sheetName, cell, n)
				} else {
					_ = f.SetCellValue(sheetName, cell, val)
				}
			default:
				// Codes, dates and free text all stay strings so
				// "00000" and "20251209" survive untouched.
				_ = f.SetCellValue(sheetName, cell, val)
			}
			if n := len([]rune(val)); n > widths[colIdx] {
				widths[colIdx] = n
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(peak.Columns))
	lastRow := len(rows) + 1

	_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)
	if len(rows) > 0 {
		for colIdx, c := range peak.Columns {
			name, _ := excelize.ColumnNumberToName(colIdx + 1)
			first := name + "2"
			last := name + strconv.Itoa(lastRow)
			switch {
			case peak.TextColumns[c.Key], peak.DateColumns[c.Key]:
				_ = f.SetCellStyle(sheetName, first, last, textStyle)
			case peak.NumericColumns[c.Key]:
				_ = f.SetCellStyle(sheetName, first, last, moneyStyle)
			case peak.WrapColumns[c.Key]:
				_ = f.SetCellStyle(sheetName, first, last, wrapStyle)
			}
		}
	}

	for i := range peak.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		w := widths[i] + 2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		_ = f.SetColWidth(sheetName, name, name, float64(w))
	}

	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
	_ = f.AutoFilter(sheetName, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}
