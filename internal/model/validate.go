package model

import "strconv"

// Validate 未検証のJSON構造（json.Unmarshal が返す map[string]any）を
// 検証してStatementを構築する。構造の不一致は最初の1件をSchemaErrorで返し、
// 部分的なレコードは決して返さない。抽出結果と本体の間の唯一の関門
func Validate(raw map[string]any) (*Statement, error) {
	if raw == nil {
		return nil, &SchemaError{Field: "(root)", Reason: "オブジェクトではありません"}
	}

	st := &Statement{}
	var err error

	if st.CompanyName, err = stringField(raw, "company_name"); err != nil {
		return nil, err
	}
	if st.FiscalPeriod, err = stringField(raw, "fiscal_period"); err != nil {
		return nil, err
	}

	unit, err := stringField(raw, "currency_unit")
	if err != nil {
		return nil, err
	}
	st.CurrencyUnit = CurrencyUnit(unit)
	if !st.CurrencyUnit.Valid() {
		return nil, &SchemaError{Field: "currency_unit", Reason: "未知の単位: " + unit}
	}

	if st.Consolidated, err = boolField(raw, "consolidated"); err != nil {
		return nil, err
	}
	if st.Segments, err = segmentsField(raw); err != nil {
		return nil, err
	}

	items := []struct {
		key  string
		dest *LineItem
	}{
		{"revenue", &st.Revenue},
		{"cost_of_sales", &st.CostOfSales},
		{"gross_profit", &st.GrossProfit},
		{"sga_expenses", &st.SGAExpenses},
		{"operating_income", &st.OperatingIncome},
		{"non_operating_income", &st.NonOperatingIncome},
		{"non_operating_expenses", &st.NonOperatingExpenses},
		{"ordinary_income", &st.OrdinaryIncome},
		{"extraordinary_income", &st.ExtraordinaryIncome},
		{"extraordinary_losses", &st.ExtraordinaryLosses},
		{"income_before_tax", &st.IncomeBeforeTax},
		{"income_tax", &st.IncomeTax},
		{"net_income", &st.NetIncome},
	}
	for _, it := range items {
		if *it.dest, err = lineItemField(raw, it.key); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", &SchemaError{Field: key, Reason: "必須項目がありません"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &SchemaError{Field: key, Reason: "文字列ではありません"}
	}
	return s, nil
}

func boolField(raw map[string]any, key string) (bool, error) {
	v, ok := raw[key]
	if !ok {
		return false, &SchemaError{Field: key, Reason: "必須項目がありません"}
	}
	b, ok := v.(bool)
	if !ok {
		return false, &SchemaError{Field: key, Reason: "真偽値ではありません"}
	}
	return b, nil
}

func numberField(raw map[string]any, key, path string) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, &SchemaError{Field: path, Reason: "必須項目がありません"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &SchemaError{Field: path, Reason: "数値ではありません"}
	}
	return f, nil
}

func objectField(raw map[string]any, key string) (map[string]any, error) {
	v, ok := raw[key]
	if !ok {
		return nil, &SchemaError{Field: key, Reason: "必須項目がありません"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaError{Field: key, Reason: "オブジェクトではありません"}
	}
	return obj, nil
}

func lineItemField(raw map[string]any, key string) (LineItem, error) {
	obj, err := objectField(raw, key)
	if err != nil {
		return LineItem{}, err
	}

	var item LineItem
	if item.LabelJA, err = stringField(obj, "label_ja"); err != nil {
		return LineItem{}, prefixField(err, key)
	}
	if item.LabelEN, err = stringField(obj, "label_en"); err != nil {
		return LineItem{}, prefixField(err, key)
	}
	if item.AmountThisYear, err = numberField(obj, "amount_this_year", key+".amount_this_year"); err != nil {
		return LineItem{}, err
	}
	if item.AmountLastYear, err = numberField(obj, "amount_last_year", key+".amount_last_year"); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func segmentsField(raw map[string]any) ([]Segment, error) {
	v, ok := raw["segments"]
	if !ok {
		return nil, &SchemaError{Field: "segments", Reason: "必須項目がありません"}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &SchemaError{Field: "segments", Reason: "配列ではありません"}
	}
	if len(list) == 0 {
		return nil, &SchemaError{Field: "segments", Reason: "1件以上必要です"}
	}

	segments := make([]Segment, 0, len(list))
	for i, elem := range list {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, &SchemaError{Field: segPath(i, ""), Reason: "オブジェクトではありません"}
		}
		var seg Segment
		var err error
		if seg.Name, err = stringField(obj, "name"); err != nil {
			return nil, prefixField(err, segPath(i, ""))
		}
		if seg.AmountThisYear, err = numberField(obj, "amount_this_year", segPath(i, "amount_this_year")); err != nil {
			return nil, err
		}
		if seg.AmountLastYear, err = numberField(obj, "amount_last_year", segPath(i, "amount_last_year")); err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func segPath(i int, field string) string {
	path := "segments[" + strconv.Itoa(i) + "]"
	if field != "" {
		path += "." + field
	}
	return path
}

func prefixField(err error, prefix string) error {
	if se, ok := err.(*SchemaError); ok {
		return &SchemaError{Field: prefix + "." + se.Field, Reason: se.Reason}
	}
	return err
}
