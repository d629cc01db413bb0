package model

import "fmt"

// SchemaError 抽出結果がP/Lレコードの形に合致しない。最初に見つかった
// 不一致のみを報告する。部分的なレコードは受け付けない
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("抽出データの形式が不正です: %s (%s)", e.Field, e.Reason)
}

// MissingSegmentDataError 抽出自体は成功したがセグメント情報が0件だった。
// スキーマ違反とは区別し、利用者向けのメッセージとして表示する
type MissingSegmentDataError struct{}

func (e *MissingSegmentDataError) Error() string {
	return "セグメント情報が見つかりませんでした。この決算短信にはセグメント別の売上情報が含まれていない可能性があります。"
}

// InternalConsistencyError フロー行と節点集合の不整合など、正しい実装では
// 発生し得ない状態。回復不能としてそのまま呼び出し側へ伝える
type InternalConsistencyError struct {
	Detail string
}

func (e *InternalConsistencyError) Error() string {
	return "内部整合性エラー: " + e.Detail
}
