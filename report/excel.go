package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/sizer/risk"
)

// workbookStyles holds the style IDs reused across both sheets.
type workbookStyles struct {
	Header int
	Money  int
	Price  int
}

// WriteWorkbook writes an Orders + Skipped workbook for desk review.
// It carries the same content as the order sheet and checklist, laid out
// for people who review sizing in a spreadsheet.
func WriteWorkbook(path string, res risk.Result) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const ordersSheet = "Orders"
	const skipsSheet = "Skipped"

	fx.SetSheetName(fx.GetSheetName(0), ordersSheet)
	fx.NewSheet(skipsSheet)

	styles, err := newWorkbookStyles(fx)
	if err != nil {
		return err
	}

	if err := writeOrdersSheet(fx, ordersSheet, res.Orders, styles); err != nil {
		return err
	}
	if err := writeSkipsSheet(fx, skipsSheet, res.Skips, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func newWorkbookStyles(fx *excelize.File) (workbookStyles, error) {
	var styles workbookStyles
	var err error

	// Header style: dark fill, white bold text.
	styles.Header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	// Money style (right aligned, $ format).
	styles.Money, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	// Price style (plain two-decimal numbers).
	styles.Price, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	return styles, err
}

func writeOrdersSheet(fx *excelize.File, sheet string, orders []risk.SizedOrder, styles workbookStyles) error {
	headers := []string{"Symbol", "Direction", "Entry", "Stop", "Risk Budget", "Units", "Unit Type", "Max Loss", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.Header)
	}

	fx.SetColWidth(sheet, "A", "A", 10) // Symbol
	fx.SetColWidth(sheet, "B", "B", 10) // Direction
	fx.SetColWidth(sheet, "C", "D", 12) // Entry, Stop
	fx.SetColWidth(sheet, "E", "E", 14) // Risk Budget
	fx.SetColWidth(sheet, "F", "F", 10) // Units
	fx.SetColWidth(sheet, "G", "G", 10) // Unit Type
	fx.SetColWidth(sheet, "H", "H", 14) // Max Loss
	fx.SetColWidth(sheet, "I", "I", 40) // Notes

	for r, o := range orders {
		row := r + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), o.Symbol)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), o.Direction)
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), o.Entry)
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), o.Stop)
		fx.SetCellValue(sheet, fmt.Sprintf("E%d", row), o.RiskPerTradeUSD)
		fx.SetCellValue(sheet, fmt.Sprintf("F%d", row), o.UnitSize)
		fx.SetCellValue(sheet, fmt.Sprintf("G%d", row), o.UnitType)
		fx.SetCellValue(sheet, fmt.Sprintf("H%d", row), o.MaxLossIfStopped)
		fx.SetCellValue(sheet, fmt.Sprintf("I%d", row), o.Notes)

		fx.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("D%d", row), styles.Price)
		fx.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.Money)
		fx.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), styles.Money)
	}

	return nil
}

func writeSkipsSheet(fx *excelize.File, sheet string, skips []risk.Skip, styles workbookStyles) error {
	for i, h := range []string{"Symbol", "Reason"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.Header)
	}

	fx.SetColWidth(sheet, "A", "A", 12)
	fx.SetColWidth(sheet, "B", "B", 60)

	for r, s := range skips {
		row := r + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.Symbol)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.Reason)
	}

	return nil
}
