package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelGenerator renders a Data as a two-sheet workbook (Summary, Routes),
// grounded on the teacher's ExcelGenerator.writeFlowExcel layout.
type ExcelGenerator struct {
	BaseGenerator
}

func NewExcelGenerator() *ExcelGenerator { return &ExcelGenerator{} }

func (g *ExcelGenerator) Format() string { return "excel" }

func (g *ExcelGenerator) Generate(data *Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("report: excel style: %w", err)
	}

	if err := g.writeSummary(f, data, headerStyle); err != nil {
		return nil, err
	}
	if err := g.writeRoutes(f, data, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: excel write: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ExcelGenerator) writeSummary(f *excelize.File, data *Data, headerStyle int) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", g.title(data))
	f.MergeCell(sheet, "A1", "B1")

	rows := [][2]any{
		{"Variant", data.Variant},
		{"Seed", data.Seed},
		{"Iterations", data.Iterations},
		{"Gamma", data.Gamma},
		{"Deterministic cost", data.DeterministicCost},
	}
	if data.HasStochastic {
		rows = append(rows, [2]any{"Stochastic cost", data.StochasticCost})
	}

	row := 3
	for _, r := range rows {
		f.SetCellValue(sheet, cellAddr("A", row), r[0])
		f.SetCellValue(sheet, cellAddr("B", row), r[1])
		row++
	}
	f.SetCellStyle(sheet, "A3", fmt.Sprintf("A%d", row-1), headerStyle)
	return nil
}

func (g *ExcelGenerator) writeRoutes(f *excelize.File, data *Data, headerStyle int) error {
	const sheet = "Routes"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Route", "Nodes", "Travel Time", "Cost", "Stochastic Cost"}
	for i, h := range headers {
		addr := cellAddr(colName(i), 1)
		f.SetCellValue(sheet, addr, h)
	}
	f.SetCellStyle(sheet, "A1", cellAddr(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for _, r := range data.Routes {
		f.SetCellValue(sheet, cellAddr("A", row), r.Index)
		f.SetCellValue(sheet, cellAddr("B", row), formatNodeIDs(r.NodeIDs))
		f.SetCellValue(sheet, cellAddr("C", row), r.TravelTime)
		f.SetCellValue(sheet, cellAddr("D", row), r.Cost)
		if r.HasStochastic {
			f.SetCellValue(sheet, cellAddr("E", row), r.StochasticCost)
		}
		row++
	}
	return nil
}

func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// colName converts a 0-based column index into its spreadsheet letter
// designation (0 -> A, 25 -> Z, 26 -> AA), matching the teacher's ColName.
func colName(index int) string {
	result := ""
	for {
		result = string(rune('A'+index%26)) + result
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return result
}
