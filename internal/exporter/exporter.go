package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/thedomainai/pl-sanky-diagram/internal/model"
	"github.com/thedomainai/pl-sanky-diagram/internal/sankey"
)

const (
	plSheetName   = "損益計算書"
	flowSheetName = "Sankeyフロー"
)

// Exporter P/LレコードとSankey表をExcelブックに書き出す
type Exporter struct{}

// NewExporter 導出器を作成する
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 2枚のシート（損益計算書・Sankeyフロー）を持つブックを生成する
func (e *Exporter) Export(st *model.Statement, rows []sankey.Row) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", plSheetName)
	if err := e.writePlSheet(f, st); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(flowSheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeFlowSheet(f, rows); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// FileName 出力ファイル名（会社名_対象期間_PL.xlsx）
func FileName(st *model.Statement) string {
	return fmt.Sprintf("%s_%s_PL.xlsx", st.CompanyName, st.FiscalPeriod)
}

func (e *Exporter) writePlSheet(f *excelize.File, st *model.Statement) error {
	// タイトルと基本情報
	f.SetCellValue(plSheetName, "A1", fmt.Sprintf("%s %s", st.CompanyName, st.FiscalPeriod))
	if err := f.MergeCell(plSheetName, "A1", "D1"); err != nil {
		return fmt.Errorf("タイトル行の結合に失敗: %w", err)
	}
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	f.SetCellStyle(plSheetName, "A1", "A1", titleStyle)

	scope := "単体"
	if st.Consolidated {
		scope = "連結"
	}
	f.SetCellValue(plSheetName, "A2", scope+"損益計算書")
	f.SetCellValue(plSheetName, "D2", fmt.Sprintf("(単位: %s)", st.CurrencyUnit))
	infoStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 11},
	})
	f.SetCellStyle(plSheetName, "A2", "D2", infoStyle)

	// 表頭
	headers := []string{"科目", "English", "当期", "前期"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(plSheetName, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Style: 1, Color: "#000000"}},
	})
	f.SetRowStyle(plSheetName, 4, 4, headerStyle)

	amountFmt := "#,##0"
	amountStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Border:       []excelize.Border{{Type: "top", Style: 1, Color: "#000000"}},
		CustomNumFmt: &amountFmt,
	})
	totalLabelStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Style: 1, Color: "#000000"}},
	})

	// 13項目。内訳行は字下げ、小計行は太字+上罫線
	for i, ir := range st.ItemRows() {
		row := i + 5
		label := ir.Item.LabelJA
		if ir.Indent {
			label = "  " + label
		}
		f.SetCellValue(plSheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(plSheetName, fmt.Sprintf("B%d", row), ir.Item.LabelEN)
		f.SetCellValue(plSheetName, fmt.Sprintf("C%d", row), ir.Item.AmountThisYear)
		f.SetCellValue(plSheetName, fmt.Sprintf("D%d", row), ir.Item.AmountLastYear)

		if ir.Indent {
			f.SetCellStyle(plSheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("D%d", row), amountStyle)
		} else {
			f.SetCellStyle(plSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalLabelStyle)
			f.SetCellStyle(plSheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("D%d", row), totalStyle)
		}
	}

	f.SetColWidth(plSheetName, "A", "A", 35)
	f.SetColWidth(plSheetName, "B", "B", 25)
	f.SetColWidth(plSheetName, "C", "D", 16)
	return nil
}

func (e *Exporter) writeFlowSheet(f *excelize.File, rows []sankey.Row) error {
	headers := []string{"Source", "Target", "当期 (億円)", "前期 (億円)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(flowSheetName, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(flowSheetName, 1, 1, headerStyle)

	okuFmt := "#,##0.0"
	okuStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &okuFmt})

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(flowSheetName, fmt.Sprintf("A%d", row), r.Source)
		f.SetCellValue(flowSheetName, fmt.Sprintf("B%d", row), r.Target)
		f.SetCellValue(flowSheetName, fmt.Sprintf("C%d", row), r.AmountThisYear)
		f.SetCellValue(flowSheetName, fmt.Sprintf("D%d", row), r.AmountLastYear)
		f.SetCellStyle(flowSheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("D%d", row), okuStyle)
	}

	f.SetColWidth(flowSheetName, "A", "B", 30)
	f.SetColWidth(flowSheetName, "C", "D", 14)
	return nil
}
