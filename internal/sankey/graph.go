package sankey

import (
	"github.com/thedomainai/pl-sanky-diagram/internal/model"
)

// Node 描画用の節点。IDはラベルと同一で、座標は[0,1]の正規化値
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge 描画用の辺。Source/TargetはNodesへの添字
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
	Color  string  `json:"color"`
}

// Graph 描画側へ渡す完成形。読み取り専用
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// セグメント節点（純粋なsource）の配置
const (
	segmentX    = 0.01
	segmentYMin = 0.05
	segmentYMax = 0.95
	// セグメントが1つだけの場合のy座標
	segmentYSingle = 0.40
)

// ラベルに一致しなかった節点の既定位置
const (
	defaultX = 0.01
	defaultY = 0.5
)

// Assemble Sankey表から指定年度のグラフを組み立てる。
//
// 節点は行を先頭から走査してsource・targetの順に初出で登録する
// （配置の再現性のため発見順を保持する）。どの行のtargetにもならない
// ラベルはセグメント節点とみなして最左列に等間隔で並べ、それ以外は
// 定型P/L項目の配置表に照らして座標を決める。
//
// 辺は選択した年度の金額が正の行だけを残す。表に由来しないラベルを
// 参照する行はFlow Builderの不変条件違反であり、即座にエラーを返す
func Assemble(rows []Row, useThisYear bool) (*Graph, error) {
	index := make(map[string]int)
	var labels []string
	discover := func(label string) {
		if _, ok := index[label]; !ok {
			index[label] = len(labels)
			labels = append(labels, label)
		}
	}

	isTarget := make(map[string]bool)
	for _, r := range rows {
		discover(r.Source)
		discover(r.Target)
		isTarget[r.Target] = true
	}

	nodes := make([]Node, len(labels))
	var segments []int
	for i, label := range labels {
		n := Node{ID: label, Label: label, Color: colorFor(label)}
		if !isTarget[label] {
			n.X = segmentX
			segments = append(segments, i)
		} else {
			n.X, n.Y = positionFor(label)
		}
		nodes[i] = n
	}
	for k, i := range segments {
		nodes[i].Y = segmentY(k, len(segments))
	}

	var edges []Edge
	for _, r := range rows {
		value := r.AmountThisYear
		if !useThisYear {
			value = r.AmountLastYear
		}
		if value <= 0 {
			continue
		}

		si, ok := index[r.Source]
		if !ok {
			return nil, &model.InternalConsistencyError{Detail: "未登録の節点を参照する行: " + r.Source}
		}
		ti, ok := index[r.Target]
		if !ok {
			return nil, &model.InternalConsistencyError{Detail: "未登録の節点を参照する行: " + r.Target}
		}

		edges = append(edges, Edge{
			Source: si,
			Target: ti,
			Value:  value,
			// 辺は流出元の色に透過を乗せる
			Color: nodes[si].Color + "40",
		})
	}

	return &Graph{Nodes: nodes, Edges: edges}, nil
}

// segmentY n個のセグメントのk番目のy座標（[0.05,0.95]に等間隔）
func segmentY(k, n int) float64 {
	if n <= 1 {
		return segmentYSingle
	}
	return segmentYMin + (segmentYMax-segmentYMin)*float64(k)/float64(n-1)
}
