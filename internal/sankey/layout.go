package sankey

import "strings"

// 配色。元パレットに無いラベルは語句分類で緑（利得系）・赤（費用系）・
// 灰（中立）に落とす
const (
	colorProfit  = "#16a34a"
	colorCost    = "#dc2626"
	colorNeutral = "#94a3b8"
)

type nodePos struct {
	key  string
	x, y float64
}

// canonicalPositions 定型P/L項目の配置表。左から右へ損益の流れを描く:
// 売上列が最左、純利益・法人税が最右、利益の本流を上段、費用の分岐を
// 下段に置く。完全一致を優先し、次に部分一致を宣言順で評価する。
// 「税金等調整前」は「純利益」を含む表記ゆれがあるため必ず先に並べる
var canonicalPositions = []nodePos{
	{"売上高", 0.13, 0.50},
	{"売上原価", 0.30, 0.72},
	{"売上総利益", 0.30, 0.30},
	{"販売費及び一般管理費", 0.47, 0.62},
	{"販管費", 0.47, 0.62},
	{"営業利益", 0.47, 0.22},
	{"営業外収益", 0.55, 0.04},
	{"営業外費用", 0.64, 0.55},
	{"経常利益", 0.64, 0.18},
	{"特別利益", 0.72, 0.04},
	{"特別損失", 0.81, 0.50},
	{"税金等調整前", 0.81, 0.16},
	{"税引前", 0.81, 0.16},
	{"法人税", 0.97, 0.42},
	{"純利益", 0.97, 0.12},
}

type nodeColor struct {
	key   string
	color string
}

// exactColors 項目別の固定色。完全一致→部分一致→語句分類の順で解決する
var exactColors = []nodeColor{
	{"売上高", "#2563eb"},
	{"売上原価", "#dc2626"},
	{"売上総利益", "#16a34a"},
	{"販売費及び一般管理費", "#ea580c"},
	{"営業利益", "#0d9488"},
	{"営業外収益", "#38bdf8"},
	{"営業外費用", "#f472b6"},
	{"経常利益", "#059669"},
	{"特別利益", "#06b6d4"},
	{"特別損失", "#e11d48"},
	{"税金等調整前四半期純利益", "#4f46e5"},
	{"税金等調整前当期純利益", "#4f46e5"},
	{"法人税等", "#d97706"},
	{"親会社株主に帰属する四半期純利益", "#ca8a04"},
	{"親会社株主に帰属する当期純利益", "#ca8a04"},
}

// 利得系・費用系の分類語。利得系を先に評価する
var (
	profitKeywords = []string{"利益", "収益", "税引前", "税金等調整前"}
	costKeywords   = []string{"原価", "販売費", "販管費", "費用", "損失", "法人税"}
)

// positionFor 定型項目の配置を返す。一致しない場合は既定位置
func positionFor(label string) (x, y float64) {
	for _, p := range canonicalPositions {
		if label == p.key {
			return p.x, p.y
		}
	}
	for _, p := range canonicalPositions {
		if strings.Contains(label, p.key) || strings.Contains(p.key, label) {
			return p.x, p.y
		}
	}
	return defaultX, defaultY
}

// colorFor ラベルの色を決める。完全一致表→部分一致→語句分類→灰
func colorFor(label string) string {
	for _, c := range exactColors {
		if label == c.key {
			return c.color
		}
	}
	for _, c := range exactColors {
		if strings.Contains(label, c.key) || strings.Contains(c.key, label) {
			return c.color
		}
	}
	for _, kw := range profitKeywords {
		if strings.Contains(label, kw) {
			return colorProfit
		}
	}
	for _, kw := range costKeywords {
		if strings.Contains(label, kw) {
			return colorCost
		}
	}
	return colorNeutral
}
