package model

import (
	"fmt"
	"math"
)

// CurrencyUnit 決算短信に記載される通貨単位（表記そのまま）
type CurrencyUnit string

const (
	UnitMillionYen  CurrencyUnit = "百万円"
	UnitThousandYen CurrencyUnit = "千円"
	UnitYen         CurrencyUnit = "円"
)

// Valid 既知の単位かどうか
func (u CurrencyUnit) Valid() bool {
	switch u {
	case UnitMillionYen, UnitThousandYen, UnitYen:
		return true
	}
	return false
}

// LineItem 損益計算書の1項目（当期・前期の両方を保持する）
type LineItem struct {
	LabelJA        string  `json:"label_ja"`
	LabelEN        string  `json:"label_en"`
	AmountThisYear float64 `json:"amount_this_year"`
	AmountLastYear float64 `json:"amount_last_year"`
}

// Segment 売上高を構成する事業セグメント
type Segment struct {
	Name           string  `json:"name"`
	AmountThisYear float64 `json:"amount_this_year"`
	AmountLastYear float64 `json:"amount_last_year"`
}

// Statement 抽出済みの損益計算書（P/L）1期分
//
// 13項目は固定のフィールドとして持つ。開いたmapにすると欠落項目を
// 黙って許してしまうため、閉じた構造体で表現する。
// Validate を通った後は読み取り専用として扱う。
type Statement struct {
	CompanyName  string       `json:"company_name"`
	FiscalPeriod string       `json:"fiscal_period"`
	CurrencyUnit CurrencyUnit `json:"currency_unit"`
	Consolidated bool         `json:"consolidated"`
	Segments     []Segment    `json:"segments"`

	Revenue              LineItem `json:"revenue"`
	CostOfSales          LineItem `json:"cost_of_sales"`
	GrossProfit          LineItem `json:"gross_profit"`
	SGAExpenses          LineItem `json:"sga_expenses"`
	OperatingIncome      LineItem `json:"operating_income"`
	NonOperatingIncome   LineItem `json:"non_operating_income"`
	NonOperatingExpenses LineItem `json:"non_operating_expenses"`
	OrdinaryIncome       LineItem `json:"ordinary_income"`
	ExtraordinaryIncome  LineItem `json:"extraordinary_income"`
	ExtraordinaryLosses  LineItem `json:"extraordinary_losses"`
	IncomeBeforeTax      LineItem `json:"income_before_tax"`
	IncomeTax            LineItem `json:"income_tax"`
	NetIncome            LineItem `json:"net_income"`
}

// ItemRow 表示順に並べた1項目。Indent は小計に対する内訳項目
type ItemRow struct {
	Key    string
	Indent bool
	Item   *LineItem
}

// ItemRows 13項目を損益計算書の表示順で返す
func (s *Statement) ItemRows() []ItemRow {
	return []ItemRow{
		{Key: "revenue", Item: &s.Revenue},
		{Key: "cost_of_sales", Indent: true, Item: &s.CostOfSales},
		{Key: "gross_profit", Item: &s.GrossProfit},
		{Key: "sga_expenses", Indent: true, Item: &s.SGAExpenses},
		{Key: "operating_income", Item: &s.OperatingIncome},
		{Key: "non_operating_income", Indent: true, Item: &s.NonOperatingIncome},
		{Key: "non_operating_expenses", Indent: true, Item: &s.NonOperatingExpenses},
		{Key: "ordinary_income", Item: &s.OrdinaryIncome},
		{Key: "extraordinary_income", Indent: true, Item: &s.ExtraordinaryIncome},
		{Key: "extraordinary_losses", Indent: true, Item: &s.ExtraordinaryLosses},
		{Key: "income_before_tax", Item: &s.IncomeBeforeTax},
		{Key: "income_tax", Indent: true, Item: &s.IncomeTax},
		{Key: "net_income", Item: &s.NetIncome},
	}
}

// SegmentGapWarning セグメント売上の合計と全社売上高の乖離が大きい場合に
// 注意文言を返す。セグメント間消去があるため一致しなくても記録は拒否しない
func (s *Statement) SegmentGapWarning() string {
	rev := s.Revenue.AmountThisYear
	if rev == 0 {
		return ""
	}

	total := 0.0
	for _, seg := range s.Segments {
		total += seg.AmountThisYear
	}

	gap := math.Abs(total-rev) / math.Abs(rev)
	if gap <= 0.05 {
		return ""
	}
	return fmt.Sprintf("セグメント売上の合計が全社売上高と%.1f%%乖離しています（セグメント間消去等の可能性があります）", gap*100)
}
