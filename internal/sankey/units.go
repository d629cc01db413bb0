package sankey

import (
	"github.com/shopspring/decimal"

	"github.com/thedomainai/pl-sanky-diagram/internal/model"
)

// 億円換算の除数
var okuDivisors = map[model.CurrencyUnit]int64{
	model.UnitMillionYen:  100,
	model.UnitThousandYen: 100_000,
	model.UnitYen:         100_000_000,
}

// ToOku 金額を億円に換算し、小数第1位へ四捨五入する。
// 未知の単位はスキーマ検証で弾かれている前提で、そのまま返す
func ToOku(amount float64, unit model.CurrencyUnit) float64 {
	div, ok := okuDivisors[unit]
	if !ok {
		return amount
	}
	f, _ := decimal.NewFromFloat(amount).
		DivRound(decimal.NewFromInt(div), 1).
		Float64()
	return f
}

// adjustedOku 加算流入を持つ節点への直進流入額。節点の総額から加算分を
// 差し引き、負になる場合は0に切り上げる（当期・前期それぞれ）。
// 営業利益→経常利益、経常利益→税引前利益の2箇所で共用する
func adjustedOku(total, additive model.LineItem, unit model.CurrencyUnit) (thisYear, lastYear float64) {
	thisYear = subOku(ToOku(total.AmountThisYear, unit), ToOku(additive.AmountThisYear, unit))
	lastYear = subOku(ToOku(total.AmountLastYear, unit), ToOku(additive.AmountLastYear, unit))
	return
}

func subOku(a, b float64) float64 {
	d := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b))
	if d.IsNegative() {
		return 0
	}
	f, _ := d.Float64()
	return f
}
