package sankey

import (
	"github.com/thedomainai/pl-sanky-diagram/internal/model"
)

// Row Sankey表の1行。金額は億円に正規化済み。
// 行の並び順は後段の節点発見順を決めるため意味を持つ
type Row struct {
	Source         string  `json:"source"`
	Target         string  `json:"target"`
	AmountThisYear float64 `json:"amount_this_year"`
	AmountLastYear float64 `json:"amount_last_year"`
}

// BuildRows StatementからSankey表を固定の順序で構築する。
//
// 本流の行（売上原価・売上総利益など）は金額がゼロでも行として残し、
// 年度ごとの表示可否は後段のAssembleに任せる。営業外・特別の4項目だけは
// 両期ともゼロ以下なら構造的に存在しないものとして行自体を作らない。
//
// 経常利益と税引前利益には脇道からの加算流入があるため、本流からの
// 流入は総額から加算分を差し引いて二重計上を防ぐ（adjustedOku）
func BuildRows(st *model.Statement) []Row {
	unit := st.CurrencyUnit
	rows := make([]Row, 0, len(st.Segments)+12)

	// 1) セグメント → 売上高。セグメントは売上高の別解であり差引調整はしない
	for _, seg := range st.Segments {
		rows = append(rows, Row{
			Source:         seg.Name,
			Target:         st.Revenue.LabelJA,
			AmountThisYear: ToOku(seg.AmountThisYear, unit),
			AmountLastYear: ToOku(seg.AmountLastYear, unit),
		})
	}

	// 2)–5) 本流
	rows = append(rows,
		itemRow(st.Revenue.LabelJA, st.CostOfSales.LabelJA, st.CostOfSales, unit),
		itemRow(st.Revenue.LabelJA, st.GrossProfit.LabelJA, st.GrossProfit, unit),
		itemRow(st.GrossProfit.LabelJA, st.SGAExpenses.LabelJA, st.SGAExpenses, unit),
		itemRow(st.GrossProfit.LabelJA, st.OperatingIncome.LabelJA, st.OperatingIncome, unit),
	)

	// 6) 営業利益 → 営業外費用
	if positiveEither(st.NonOperatingExpenses) {
		rows = append(rows, itemRow(st.OperatingIncome.LabelJA, st.NonOperatingExpenses.LabelJA, st.NonOperatingExpenses, unit))
	}
	// 7) 営業外収益 → 経常利益（営業利益を迂回する加算流入）
	if positiveEither(st.NonOperatingIncome) {
		rows = append(rows, itemRow(st.NonOperatingIncome.LabelJA, st.OrdinaryIncome.LabelJA, st.NonOperatingIncome, unit))
	}
	// 8) 営業利益 → 経常利益（加算流入の分を差し引く）
	ty, ly := adjustedOku(st.OrdinaryIncome, st.NonOperatingIncome, unit)
	rows = append(rows, Row{
		Source:         st.OperatingIncome.LabelJA,
		Target:         st.OrdinaryIncome.LabelJA,
		AmountThisYear: ty,
		AmountLastYear: ly,
	})

	// 9) 経常利益 → 特別損失
	if positiveEither(st.ExtraordinaryLosses) {
		rows = append(rows, itemRow(st.OrdinaryIncome.LabelJA, st.ExtraordinaryLosses.LabelJA, st.ExtraordinaryLosses, unit))
	}
	// 10) 特別利益 → 税引前利益（加算流入）
	if positiveEither(st.ExtraordinaryIncome) {
		rows = append(rows, itemRow(st.ExtraordinaryIncome.LabelJA, st.IncomeBeforeTax.LabelJA, st.ExtraordinaryIncome, unit))
	}
	// 11) 経常利益 → 税引前利益（加算流入の分を差し引く）
	ty, ly = adjustedOku(st.IncomeBeforeTax, st.ExtraordinaryIncome, unit)
	rows = append(rows, Row{
		Source:         st.OrdinaryIncome.LabelJA,
		Target:         st.IncomeBeforeTax.LabelJA,
		AmountThisYear: ty,
		AmountLastYear: ly,
	})

	// 12)–13) 税引前利益の分配
	rows = append(rows,
		itemRow(st.IncomeBeforeTax.LabelJA, st.IncomeTax.LabelJA, st.IncomeTax, unit),
		itemRow(st.IncomeBeforeTax.LabelJA, st.NetIncome.LabelJA, st.NetIncome, unit),
	)

	return rows
}

// itemRow itemの金額をそのまま流すsource→target行
func itemRow(source, target string, item model.LineItem, unit model.CurrencyUnit) Row {
	return Row{
		Source:         source,
		Target:         target,
		AmountThisYear: ToOku(item.AmountThisYear, unit),
		AmountLastYear: ToOku(item.AmountLastYear, unit),
	}
}

// positiveEither どちらかの期で正の金額を持つか（換算前の生の値で判定）
func positiveEither(item model.LineItem) bool {
	return item.AmountThisYear > 0 || item.AmountLastYear > 0
}
