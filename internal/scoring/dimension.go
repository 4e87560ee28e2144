package scoring

type Range string

const (
	RangeLow     Range = "Low"
	RangeAverage Range = "Average"
	RangeHigh    Range = "High"
)

// Threshold 单个维度的分段阈值。Low 为 Average 与 High 之外的所有分数。
type Threshold struct {
	AvgMin    int    `json:"avgMin"`
	AvgMax    int    `json:"avgMax"`
	HighMin   int    `json:"highMin"`
	LowLabel  string `json:"lowLabel"`
	AvgLabel  string `json:"avgLabel"`
	HighLabel string `json:"highLabel"`
}

// Classify High 先于 Average 判断；落在 AvgMax 与 HighMin 之间空档的分数归为 Low
func (t Threshold) Classify(score int) (Range, string) {
	switch {
	case score >= t.HighMin:
		return RangeHigh, t.HighLabel
	case score >= t.AvgMin && score <= t.AvgMax:
		return RangeAverage, t.AvgLabel
	default:
		return RangeLow, t.LowLabel
	}
}

// RangeResponse 每个分段对应的解读文字
type RangeResponse struct {
	Low     string `json:"lowDescription"`
	Average string `json:"averageDescription"`
	High    string `json:"highDescription"`
}

func (r RangeResponse) For(rg Range) string {
	switch rg {
	case RangeHigh:
		return r.High
	case RangeAverage:
		return r.Average
	default:
		return r.Low
	}
}

type Dimension struct {
	Name      string        `json:"name"`
	Column    int           `json:"column"` // 1..8
	Threshold Threshold     `json:"threshold"`
	Responses RangeResponse `json:"rangeResponse"`
}

// dimensions 按注册顺序绑定逻辑列 1..8
var dimensions = [ColumnCount]Dimension{
	{
		Name:   "Task receptivity orientation",
		Column: 1,
		Threshold: Threshold{AvgMin: 10, AvgMax: 13, HighMin: 14,
			LowLabel: "≤9", AvgLabel: "10 to 13", HighLabel: "14 to ≥17"},
		Responses: RangeResponse{
			Low:     "You tend to hold back when new tasks arrive. Practise taking up assignments early and asking what they need from you.",
			Average: "You accept most tasks readily, though unplanned work can still meet some resistance.",
			High:    "You take up new tasks willingly and engage with what they ask of you from the start.",
		},
	},
	{
		Name:   "Task ownership orientation",
		Column: 2,
		Threshold: Threshold{AvgMin: 8, AvgMax: 11, HighMin: 12,
			LowLabel: "≤7", AvgLabel: "8 to 11", HighLabel: "12 to ≥15"},
		Responses: RangeResponse{
			Low:     "Accountability for tasks is often left unclear. Make it explicit when a task is yours.",
			Average: "You usually own your tasks, but ownership can slip when work is shared or handed over.",
			High:    "You treat tasks as your own and make your accountability visible to others.",
		},
	},
	{
		Name:   "Values spending time to shape tasks",
		Column: 3,
		Threshold: Threshold{AvgMin: 7, AvgMax: 10, HighMin: 11,
			LowLabel: "≤6", AvgLabel: "7 to 10", HighLabel: "11 to ≥14"},
		Responses: RangeResponse{
			Low:     "You tend to start before the task is well defined. Spend time clarifying scope and purpose first.",
			Average: "You shape tasks when time allows, but often move on before the scope is fully clear.",
			High:    "You invest time up front to clarify scope, purpose and expected outcome.",
		},
	},
	{
		Name:   "Puts task in reality context",
		Column: 4,
		Threshold: Threshold{AvgMin: 6, AvgMax: 8, HighMin: 9,
			LowLabel: "≤5", AvgLabel: "6 to 8", HighLabel: "9 to ≥12"},
		Responses: RangeResponse{
			Low:     "Tasks are often planned without checking constraints. Test plans against what is realistically possible.",
			Average: "You consider practical constraints on the larger tasks, less so on routine ones.",
			High:    "You consistently check how a task fits the real constraints around it.",
		},
	},
	{
		Name:   "Prepares for resources before hand",
		Column: 5,
		Threshold: Threshold{AvgMin: 7, AvgMax: 10, HighMin: 11,
			LowLabel: "≤6", AvgLabel: "7 to 10", HighLabel: "11 to ≥14"},
		Responses: RangeResponse{
			Low:     "Resources are usually gathered as problems appear. Line up what the task needs before starting.",
			Average: "You prepare the main resources, though gaps still surface during execution.",
			High:    "You secure materials, budget and time before committing to a task.",
		},
	},
	{
		Name:   "Sets milestones and measures for critical stages of task",
		Column: 6,
		Threshold: Threshold{AvgMin: 7, AvgMax: 9, HighMin: 11,
			LowLabel: "≤6 or 10", AvgLabel: "7 to 9", HighLabel: "11 to ≥14"},
		Responses: RangeResponse{
			Low:     "Progress is rarely checked until the end. Break tasks into milestones with clear measures.",
			Average: "You set some checkpoints, mostly for larger tasks.",
			High:    "You define milestones and measures for every critical stage and track them.",
		},
	},
	{
		Name:   "Sets teams around tasks",
		Column: 7,
		Threshold: Threshold{AvgMin: 5, AvgMax: 8, HighMin: 9,
			LowLabel: "≤4", AvgLabel: "5 to 8", HighLabel: "9 to ≥12"},
		Responses: RangeResponse{
			Low:     "You tend to work alone even when others are needed. Identify who should be involved early.",
			Average: "You bring people in when the need is obvious, though sometimes later than ideal.",
			High:    "You deliberately build the right team around each task.",
		},
	},
	{
		Name:   "Focus on completion of tasks",
		Column: 8,
		Threshold: Threshold{AvgMin: 9, AvgMax: 12, HighMin: 13,
			LowLabel: "≤8", AvgLabel: "9 to 12", HighLabel: "13 to ≥16"},
		Responses: RangeResponse{
			Low:     "Tasks often stall before they are finished. Keep the finish line in view and close out open items.",
			Average: "You finish most tasks, but attention can drift near the end.",
			High:    "You drive tasks through to completion and close them out fully.",
		},
	},
}

var dimensionsByName = func() map[string]Dimension {
	m := make(map[string]Dimension, len(dimensions))
	for _, d := range dimensions {
		m[d.Name] = d
	}
	return m
}()

// Dimensions 返回维度表的副本，供展示使用
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions[:])
	return out
}

func LookupDimension(name string) (Dimension, bool) {
	d, ok := dimensionsByName[name]
	return d, ok
}
