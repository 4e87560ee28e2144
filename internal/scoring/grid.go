package scoring

import "fmt"

type Response struct {
	QuestionID uint `json:"questionId"`
	OptionID   uint `json:"optionId"`
	Points     int  `json:"points"`
}

type WarningKind string

const (
	WarnUnknownOption    WarningKind = "unknown_option"
	WarnQuestionMismatch WarningKind = "question_mismatch"
	WarnNegativePoints   WarningKind = "negative_points"
	WarnQuestionSubtotal WarningKind = "question_subtotal"
)

// Warning 数据完整性问题，不中断计分
type Warning struct {
	Kind       WarningKind `json:"kind"`
	QuestionID uint        `json:"questionId,omitempty"`
	OptionID   uint        `json:"optionId,omitempty"`
	Detail     string      `json:"detail"`
}

type Cell struct {
	Letter   string `json:"letter"`
	OptionID uint   `json:"optionId"`
	Points   int    `json:"points"`
}

// Grid 题目 × 逻辑列的得分表。管理端表格和维度分析共用同一份结果，保证两边总分一致。
type Grid struct {
	Labels         [QuestionCount]string            `json:"labels"`
	QuestionIDs    [QuestionCount]uint              `json:"questionIds"`
	Cells          [QuestionCount][ColumnCount]Cell `json:"cells"`
	ColumnTotals   [ColumnCount]int                 `json:"columnTotals"`
	QuestionTotals [QuestionCount]int               `json:"questionTotals"`
	Total          int                              `json:"total"`
	Warnings       []Warning                        `json:"warnings"`
}

// QuestionsAnswered 有得分的题目数
func (g *Grid) QuestionsAnswered() int {
	n := 0
	for _, t := range g.QuestionTotals {
		if t > 0 {
			n++
		}
	}
	return n
}

type cellRef struct {
	question int
	column   int
}

// BuildGrid 按选项 ID（而不是数组位置）把作答记录累加到对应的格子里。
// catalog 必须按题目顺序排列，每题的选项按自然顺序排列。
func BuildGrid(catalog []Question, responses []Response) (*Grid, error) {
	if len(catalog) < QuestionCount {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("catalog has %d questions, want %d", len(catalog), QuestionCount),
			Err:    ErrIncompleteCatalog,
		}
	}

	g := &Grid{Warnings: []Warning{}}
	refs := make(map[uint]cellRef, len(catalog)*ColumnCount)

	for qi, q := range catalog {
		positions, err := ResolvePositions(qi, q.Options)
		if err != nil {
			if mal, ok := err.(*MalformedQuestionError); ok {
				mal.QuestionID = q.ID
			}
			return nil, err
		}

		row := permutationTable[qi]
		g.Labels[qi] = QuestionLabel(qi)
		g.QuestionIDs[qi] = q.ID
		for p, opt := range positions {
			if _, dup := refs[opt.ID]; dup {
				return nil, &MalformedQuestionError{
					QuestionIndex: qi,
					QuestionID:    q.ID,
					OptionCount:   len(q.Options),
					Reason:        fmt.Sprintf("option %d is shared with another question", opt.ID),
				}
			}
			refs[opt.ID] = cellRef{question: qi, column: p}
			g.Cells[qi][p] = Cell{Letter: string(row[p]), OptionID: opt.ID}
		}
	}

	for _, r := range responses {
		ref, ok := refs[r.OptionID]
		if !ok {
			g.Warnings = append(g.Warnings, Warning{
				Kind:       WarnUnknownOption,
				QuestionID: r.QuestionID,
				OptionID:   r.OptionID,
				Detail:     fmt.Sprintf("option %d is not part of the catalog", r.OptionID),
			})
			continue
		}
		if owner := g.QuestionIDs[ref.question]; owner != r.QuestionID {
			g.Warnings = append(g.Warnings, Warning{
				Kind:       WarnQuestionMismatch,
				QuestionID: r.QuestionID,
				OptionID:   r.OptionID,
				Detail:     fmt.Sprintf("option %d belongs to question %d", r.OptionID, owner),
			})
			continue
		}
		if r.Points < 0 {
			g.Warnings = append(g.Warnings, Warning{
				Kind:       WarnNegativePoints,
				QuestionID: r.QuestionID,
				OptionID:   r.OptionID,
				Detail:     fmt.Sprintf("negative points %d", r.Points),
			})
			continue
		}

		// 同一 (题目, 选项) 的多条记录视为拆分记录，直接累加
		g.Cells[ref.question][ref.column].Points += r.Points
		g.QuestionTotals[ref.question] += r.Points
		g.ColumnTotals[ref.column] += r.Points
		g.Total += r.Points
	}

	for qi, total := range g.QuestionTotals {
		if total != PointsPerQuestion {
			g.Warnings = append(g.Warnings, Warning{
				Kind:       WarnQuestionSubtotal,
				QuestionID: g.QuestionIDs[qi],
				Detail: fmt.Sprintf("question %s has %d points, want %d",
					g.Labels[qi], total, PointsPerQuestion),
			})
		}
	}

	return g, nil
}
