package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const validJSON = `{
  "company_name": "テスト株式会社",
  "fiscal_period": "2024年3月期 第3四半期",
  "currency_unit": "百万円",
  "consolidated": true,
  "segments": [
    { "name": "国内事業", "amount_this_year": 700, "amount_last_year": 650 },
    { "name": "海外事業", "amount_this_year": 320, "amount_last_year": 280 }
  ],
  "revenue": { "label_ja": "売上高", "label_en": "Revenue", "amount_this_year": 1000, "amount_last_year": 900 },
  "cost_of_sales": { "label_ja": "売上原価", "label_en": "Cost of Sales", "amount_this_year": 600, "amount_last_year": 550 },
  "gross_profit": { "label_ja": "売上総利益", "label_en": "Gross Profit", "amount_this_year": 400, "amount_last_year": 350 },
  "sga_expenses": { "label_ja": "販売費及び一般管理費", "label_en": "SGA Expenses", "amount_this_year": 280, "amount_last_year": 250 },
  "operating_income": { "label_ja": "営業利益", "label_en": "Operating Income", "amount_this_year": 120, "amount_last_year": 100 },
  "non_operating_income": { "label_ja": "営業外収益", "label_en": "Non-operating Income", "amount_this_year": 20, "amount_last_year": 10 },
  "non_operating_expenses": { "label_ja": "営業外費用", "label_en": "Non-operating Expenses", "amount_this_year": 25, "amount_last_year": 15 },
  "ordinary_income": { "label_ja": "経常利益", "label_en": "Ordinary Income", "amount_this_year": 115, "amount_last_year": 95 },
  "extraordinary_income": { "label_ja": "特別利益", "label_en": "Extraordinary Income", "amount_this_year": 5, "amount_last_year": 0 },
  "extraordinary_losses": { "label_ja": "特別損失", "label_en": "Extraordinary Losses", "amount_this_year": 10, "amount_last_year": 5 },
  "income_before_tax": { "label_ja": "税金等調整前当期純利益", "label_en": "Income Before Tax", "amount_this_year": 110, "amount_last_year": 90 },
  "income_tax": { "label_ja": "法人税等", "label_en": "Income Tax", "amount_this_year": 35, "amount_last_year": 30 },
  "net_income": { "label_ja": "親会社株主に帰属する当期純利益", "label_en": "Net Income", "amount_this_year": 75, "amount_last_year": 60 }
}`

func rawFromJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("test fixture broken: %v", err)
	}
	return raw
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	st, err := Validate(rawFromJSON(t, validJSON))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if st.CompanyName != "テスト株式会社" {
		t.Fatalf("company name = %q", st.CompanyName)
	}
	if st.CurrencyUnit != UnitMillionYen {
		t.Fatalf("currency unit = %q", st.CurrencyUnit)
	}
	if !st.Consolidated {
		t.Fatal("consolidated = false")
	}
	if len(st.Segments) != 2 || st.Segments[1].Name != "海外事業" {
		t.Fatalf("segments = %+v", st.Segments)
	}
	if st.Revenue.AmountThisYear != 1000 || st.NetIncome.AmountLastYear != 60 {
		t.Fatalf("amounts not mapped: %+v", st)
	}
}

func TestValidate_MissingLineItem(t *testing.T) {
	t.Parallel()

	raw := rawFromJSON(t, validJSON)
	delete(raw, "net_income")

	_, err := Validate(raw)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	if se.Field != "net_income" {
		t.Fatalf("field = %q, want net_income", se.Field)
	}
}

func TestValidate_WrongAmountType(t *testing.T) {
	t.Parallel()

	raw := rawFromJSON(t, validJSON)
	raw["revenue"].(map[string]any)["amount_this_year"] = "1,000"

	_, err := Validate(raw)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	if !strings.Contains(se.Field, "revenue") {
		t.Fatalf("field = %q, want revenue.*", se.Field)
	}
}

func TestValidate_UnknownCurrencyUnit(t *testing.T) {
	t.Parallel()

	raw := rawFromJSON(t, validJSON)
	raw["currency_unit"] = "万円"

	_, err := Validate(raw)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	if se.Field != "currency_unit" {
		t.Fatalf("field = %q, want currency_unit", se.Field)
	}
}

func TestValidate_EmptySegments(t *testing.T) {
	t.Parallel()

	raw := rawFromJSON(t, validJSON)
	raw["segments"] = []any{}

	_, err := Validate(raw)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	if se.Field != "segments" {
		t.Fatalf("field = %q, want segments", se.Field)
	}
}

func TestValidate_ConsolidatedNotBool(t *testing.T) {
	t.Parallel()

	raw := rawFromJSON(t, validJSON)
	raw["consolidated"] = "true"

	_, err := Validate(raw)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	if se.Field != "consolidated" {
		t.Fatalf("field = %q, want consolidated", se.Field)
	}
}

func TestSegmentGapWarning(t *testing.T) {
	t.Parallel()

	st, err := Validate(rawFromJSON(t, validJSON))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// 700 + 320 = 1020 で売上高1000との乖離は2%。警告なし
	if w := st.SegmentGapWarning(); w != "" {
		t.Fatalf("unexpected warning: %q", w)
	}

	// 乖離が5%を超えたら警告を出す。記録自体は拒否しない
	st.Segments[1].AmountThisYear = 100
	if w := st.SegmentGapWarning(); w == "" {
		t.Fatal("warning expected for large segment gap")
	}
}
