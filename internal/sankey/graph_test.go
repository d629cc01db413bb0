package sankey

import (
	"testing"
)

// TestAssemble_NodeUniqueness 同じラベルは1つの節点に解決される
func TestAssemble_NodeUniqueness(t *testing.T) {
	t.Parallel()

	rows := BuildRows(fullStatement())
	g, err := Assemble(rows, true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	distinct := make(map[string]bool)
	for _, r := range rows {
		distinct[r.Source] = true
		distinct[r.Target] = true
	}
	if len(g.Nodes) != len(distinct) {
		t.Fatalf("node count = %d, want %d", len(g.Nodes), len(distinct))
	}

	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.ID != n.Label {
			t.Fatalf("node id %q != label %q", n.ID, n.Label)
		}
		if seen[n.ID] {
			t.Fatalf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
}

// TestAssemble_DiscoveryOrder 節点は行の走査順（source→target）で初出登録される
func TestAssemble_DiscoveryOrder(t *testing.T) {
	t.Parallel()

	g, err := Assemble(BuildRows(baseStatement()), true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := []string{"事業A", "売上高", "売上原価", "売上総利益"}
	for i, label := range want {
		if g.Nodes[i].Label != label {
			t.Fatalf("node[%d] = %q, want %q", i, g.Nodes[i].Label, label)
		}
	}
}

// TestAssemble_SegmentClassification targetに一度も現れないラベルは
// セグメント節点として最左列に置かれる
func TestAssemble_SegmentClassification(t *testing.T) {
	t.Parallel()

	g, err := Assemble(BuildRows(baseStatement()), true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	var seg *Node
	for i := range g.Nodes {
		if g.Nodes[i].Label == "事業A" {
			seg = &g.Nodes[i]
		}
	}
	if seg == nil {
		t.Fatal("segment node not found")
	}
	if !almostEqual(seg.X, 0.01) {
		t.Fatalf("segment x = %v, want 0.01", seg.X)
	}
	// セグメントが1つだけなら縦位置は中央寄り
	if !almostEqual(seg.Y, 0.40) {
		t.Fatalf("single segment y = %v, want 0.40", seg.Y)
	}
}

// TestAssemble_SegmentSpacing 複数セグメントは[0.05,0.95]に等間隔
func TestAssemble_SegmentSpacing(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Source: "A事業", Target: "売上高", AmountThisYear: 1, AmountLastYear: 1},
		{Source: "B事業", Target: "売上高", AmountThisYear: 2, AmountLastYear: 2},
		{Source: "C事業", Target: "売上高", AmountThisYear: 3, AmountLastYear: 3},
	}
	g, err := Assemble(rows, true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	wantY := []float64{0.05, 0.5, 0.95}
	for i, label := range []string{"A事業", "B事業", "C事業"} {
		n := g.Nodes[i]
		if n.Label != label {
			t.Fatalf("node[%d] = %q, want %q", i, n.Label, label)
		}
		if !almostEqual(n.X, 0.01) || !almostEqual(n.Y, wantY[i]) {
			t.Fatalf("%s at (%v, %v), want (0.01, %v)", label, n.X, n.Y, wantY[i])
		}
	}
}

// TestAssemble_YearFiltering 前期表示では前期の金額が正の行だけが辺になる
func TestAssemble_YearFiltering(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Source: "あ", Target: "い", AmountThisYear: 5, AmountLastYear: 0},
		{Source: "い", Target: "う", AmountThisYear: 0, AmountLastYear: 3},
		{Source: "う", Target: "え", AmountThisYear: 2, AmountLastYear: 2},
	}

	thisYear, err := Assemble(rows, true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(thisYear.Edges) != 2 {
		t.Fatalf("this-year edges = %d, want 2", len(thisYear.Edges))
	}
	if !almostEqual(thisYear.Edges[0].Value, 5) || !almostEqual(thisYear.Edges[1].Value, 2) {
		t.Fatalf("this-year edge values = %+v", thisYear.Edges)
	}

	lastYear, err := Assemble(rows, false)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(lastYear.Edges) != 2 {
		t.Fatalf("last-year edges = %d, want 2", len(lastYear.Edges))
	}
	if !almostEqual(lastYear.Edges[0].Value, 3) || !almostEqual(lastYear.Edges[1].Value, 2) {
		t.Fatalf("last-year edge values = %+v", lastYear.Edges)
	}
}

// TestAssemble_NoZeroEdges ゼロ流量の行は辺として出力されない
func TestAssemble_NoZeroEdges(t *testing.T) {
	t.Parallel()

	g, err := Assemble(BuildRows(baseStatement()), true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for _, e := range g.Edges {
		if e.Value <= 0 {
			t.Fatalf("non-positive edge emitted: %+v", e)
		}
	}
	// 正の流量を持つのはセグメント行と売上系の2行のみ
	if len(g.Edges) != 3 {
		t.Fatalf("edge count = %d, want 3", len(g.Edges))
	}
}

// TestAssemble_EdgeIndices 辺のsource/targetは節点の添字に解決される
func TestAssemble_EdgeIndices(t *testing.T) {
	t.Parallel()

	g, err := Assemble(BuildRows(fullStatement()), true)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for _, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Target < 0 || e.Target >= len(g.Nodes) {
			t.Fatalf("edge index out of range: %+v", e)
		}
		// 辺の色は流出元の色に透過を付けたもの
		if e.Color != g.Nodes[e.Source].Color+"40" {
			t.Fatalf("edge color = %q, node color = %q", e.Color, g.Nodes[e.Source].Color)
		}
	}
}

func TestPositionFor_ExactAndSubstring(t *testing.T) {
	t.Parallel()

	x, y := positionFor("売上高")
	if !almostEqual(x, 0.13) || !almostEqual(y, 0.50) {
		t.Fatalf("売上高 at (%v, %v)", x, y)
	}

	// 表記ゆれは部分一致で拾う
	x, y = positionFor("親会社株主に帰属する四半期純利益")
	if !almostEqual(x, 0.97) || !almostEqual(y, 0.12) {
		t.Fatalf("四半期純利益 at (%v, %v)", x, y)
	}
	x, y = positionFor("税金等調整前四半期純利益")
	if !almostEqual(x, 0.81) || !almostEqual(y, 0.16) {
		t.Fatalf("税金等調整前 at (%v, %v)", x, y)
	}
}

func TestPositionFor_UnmatchedDefault(t *testing.T) {
	t.Parallel()

	x, y := positionFor("その他の収支")
	if !almostEqual(x, 0.01) || !almostEqual(y, 0.5) {
		t.Fatalf("default position = (%v, %v), want (0.01, 0.5)", x, y)
	}
}

func TestColorFor_Precedence(t *testing.T) {
	t.Parallel()

	// 完全一致表が最優先
	if got := colorFor("売上高"); got != "#2563eb" {
		t.Fatalf("売上高 color = %q", got)
	}
	if got := colorFor("経常利益"); got != "#059669" {
		t.Fatalf("経常利益 color = %q", got)
	}
	// 部分一致
	if got := colorFor("税金等調整前四半期純利益"); got != "#4f46e5" {
		t.Fatalf("税金等調整前四半期純利益 color = %q", got)
	}
	// 語句分類: 表に無い利得系は緑、費用系は赤
	if got := colorFor("持分法による投資利益"); got != colorProfit {
		t.Fatalf("投資利益 color = %q, want %q", got, colorProfit)
	}
	if got := colorFor("減損損失等"); got != colorCost {
		t.Fatalf("減損損失等 color = %q, want %q", got, colorCost)
	}
	// どれにも当たらなければ中立色
	if got := colorFor("事業A"); got != colorNeutral {
		t.Fatalf("事業A color = %q, want %q", got, colorNeutral)
	}
}
