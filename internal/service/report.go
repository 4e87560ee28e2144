package service

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"task_maturity_backend/internal/scoring"
	"task_maturity_backend/internal/util"
)

// RenderReportCSV 输出得分表与维度分段，列顺序与维度注册顺序一致
func RenderReportCSV(result *AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	dims := scoring.Dimensions()

	var records [][]string
	if result.User != nil {
		records = append(records,
			[]string{"Name", result.User.Name},
			[]string{"Email", result.User.Email},
		)
	}
	if result.Session != nil {
		records = append(records, []string{"Completed At", result.Session.CompletedAt.Format(util.TimeFormat)})
	}
	records = append(records, []string{})

	header := []string{"Question"}
	for _, d := range dims {
		header = append(header, d.Name)
	}
	header = append(header, "Total")
	records = append(records, header)

	g := result.Grid
	for qi := 0; qi < scoring.QuestionCount; qi++ {
		row := []string{g.Labels[qi]}
		for c := 0; c < scoring.ColumnCount; c++ {
			row = append(row, strconv.Itoa(g.Cells[qi][c].Points))
		}
		row = append(row, strconv.Itoa(g.QuestionTotals[qi]))
		records = append(records, row)
	}

	totals := []string{"Total"}
	for _, t := range g.ColumnTotals {
		totals = append(totals, strconv.Itoa(t))
	}
	totals = append(totals, strconv.Itoa(g.Total))
	records = append(records, totals, []string{})

	records = append(records, []string{"Dimension", "Score", "Range", "Band", "Response"})
	for _, d := range result.DimensionResults {
		records = append(records, []string{d.DimensionName, strconv.Itoa(d.Score), string(d.Range), d.RangeValue, d.Description})
	}
	records = append(records,
		[]string{},
		[]string{"Total Score", strconv.Itoa(result.TotalScore), strconv.Itoa(result.MaxPossibleScore)},
		[]string{"High Dimensions", strconv.Itoa(result.HighPerformanceDimensions)},
		[]string{"Warnings", strconv.Itoa(result.WarningCount)},
	)

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
