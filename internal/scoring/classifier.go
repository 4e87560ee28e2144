package scoring

// fallbackThreshold 未登记维度使用的通用规则：>=14 High，>=10 Average，其余 Low
var fallbackThreshold = Threshold{
	AvgMin:    10,
	AvgMax:    13,
	HighMin:   14,
	LowLabel:  "<10",
	AvgLabel:  "10 to 13",
	HighLabel: "≥14",
}

var fallbackResponses = RangeResponse{
	Low:     "This dimension requires attention and development. Consider focusing on building skills in this area to improve overall task maturity.",
	Average: "You show moderate performance in this dimension. There's room for improvement to reach higher levels of effectiveness.",
	High:    "You demonstrate excellent performance in this dimension. Your high scores indicate strong capabilities and effective task management skills.",
}

type Classification struct {
	Range       Range  `json:"range"`
	Label       string `json:"rangeValue"`
	Description string `json:"description"`
	Fallback    bool   `json:"fallback"`
}

// Classify 按维度阈值表给分数分段。维度名未登记时使用通用规则，并标记 Fallback。
func Classify(score int, dimension string) Classification {
	if d, ok := LookupDimension(dimension); ok {
		r, label := d.Threshold.Classify(score)
		return Classification{Range: r, Label: label, Description: d.Responses.For(r)}
	}
	r, label := fallbackThreshold.Classify(score)
	return Classification{Range: r, Label: label, Description: fallbackResponses.For(r), Fallback: true}
}

type DimensionResult struct {
	DimensionName string `json:"dimensionName"`
	Score         int    `json:"score"`
	Column        int    `json:"column"`
	Range         Range  `json:"range"`
	RangeValue    string `json:"rangeValue"`
	Description   string `json:"description"`
	Fallback      bool   `json:"fallback,omitempty"`
}

// ScoreDimensions 把 8 列总分映射为 8 个维度结果，顺序与维度注册顺序一致
func ScoreDimensions(columnTotals [ColumnCount]int) []DimensionResult {
	results := make([]DimensionResult, 0, len(dimensions))
	for _, d := range dimensions {
		score := columnTotals[d.Column-1]
		c := Classify(score, d.Name)
		results = append(results, DimensionResult{
			DimensionName: d.Name,
			Score:         score,
			Column:        d.Column,
			Range:         c.Range,
			RangeValue:    c.Label,
			Description:   c.Description,
			Fallback:      c.Fallback,
		})
	}
	return results
}

// CountRange 统计落在指定分段的维度数
func CountRange(results []DimensionResult, r Range) int {
	n := 0
	for _, res := range results {
		if res.Range == r {
			n++
		}
	}
	return n
}
