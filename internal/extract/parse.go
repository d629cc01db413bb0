package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/thedomainai/pl-sanky-diagram/internal/model"
)

// ParseResponse 抽出応答のテキストを検証済みのStatementへ変換する。
// コードフェンスを除去し、壊れたJSONは修復を試みてから解析する。
// セグメント0件はスキーマ検証より先に MissingSegmentDataError として返す
func ParseResponse(text string) (*model.Statement, error) {
	jsonStr := stripFences(strings.TrimSpace(text))

	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		repaired, rerr := jsonrepair.RepairJSON(jsonStr)
		if rerr != nil {
			return nil, fmt.Errorf("抽出応答のJSON解析に失敗: %w", err)
		}
		if uerr := json.Unmarshal([]byte(repaired), &raw); uerr != nil {
			return nil, fmt.Errorf("抽出応答のJSON解析に失敗: %w", uerr)
		}
	}

	if segs, ok := raw["segments"].([]any); !ok || len(segs) == 0 {
		return nil, &model.MissingSegmentDataError{}
	}

	return model.Validate(raw)
}

// stripFences ```json ... ``` 形式のコードフェンスを剥がす
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// 先頭行の "json" 等の言語タグごと落とす
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimRight(s, "\n "), "```")
	return strings.TrimSpace(s)
}
