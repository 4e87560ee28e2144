package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionsTable(t *testing.T) {
	dims := Dimensions()
	require.Len(t, dims, ColumnCount)

	for i, d := range dims {
		assert.Equal(t, i+1, d.Column, d.Name)
		assert.LessOrEqual(t, d.Threshold.AvgMin, d.Threshold.AvgMax, d.Name)
		assert.Greater(t, d.Threshold.HighMin, d.Threshold.AvgMax, d.Name)
		assert.NotEmpty(t, d.Threshold.LowLabel, d.Name)
		assert.NotEmpty(t, d.Threshold.AvgLabel, d.Name)
		assert.NotEmpty(t, d.Threshold.HighLabel, d.Name)
	}

	// 返回副本，修改不影响常量表
	dims[0].Threshold.HighMin = 0
	d, ok := LookupDimension(dims[0].Name)
	require.True(t, ok)
	assert.Equal(t, 14, d.Threshold.HighMin)
}

func TestClassify_Boundaries(t *testing.T) {
	for _, d := range Dimensions() {
		th := d.Threshold
		t.Run(d.Name, func(t *testing.T) {
			assert.Equal(t, RangeLow, Classify(th.AvgMin-1, d.Name).Range)
			assert.Equal(t, RangeAverage, Classify(th.AvgMin, d.Name).Range)
			assert.Equal(t, RangeAverage, Classify(th.AvgMax, d.Name).Range)

			above := Classify(th.AvgMax+1, d.Name)
			if th.AvgMax+1 >= th.HighMin {
				assert.Equal(t, RangeHigh, above.Range)
			} else {
				assert.Equal(t, RangeLow, above.Range)
			}

			high := Classify(th.HighMin, d.Name)
			assert.Equal(t, RangeHigh, high.Range)
			assert.Equal(t, th.HighLabel, high.Label)
			assert.False(t, high.Fallback)
		})
	}
}

func TestClassify_HighCheckedBeforeAverage(t *testing.T) {
	c := Classify(12, "Task ownership orientation")
	assert.Equal(t, RangeHigh, c.Range)
	assert.Equal(t, "12 to ≥15", c.Label)

	c = Classify(11, "Task ownership orientation")
	assert.Equal(t, RangeAverage, c.Range)
}

func TestClassify_GapFallsToLow(t *testing.T) {
	name := "Sets milestones and measures for critical stages of task"
	c := Classify(10, name)
	assert.Equal(t, RangeLow, c.Range)
	assert.Equal(t, "≤6 or 10", c.Label)
	assert.False(t, c.Fallback)
}

func TestClassify_RealityContextHigh(t *testing.T) {
	c := Classify(14, "Puts task in reality context")
	assert.Equal(t, RangeHigh, c.Range)
	assert.Equal(t, "9 to ≥12", c.Label)
	assert.False(t, c.Fallback)
}

func TestClassify_UnknownDimensionFallback(t *testing.T) {
	c := Classify(12, "Foo")
	assert.Equal(t, RangeAverage, c.Range)
	assert.True(t, c.Fallback)

	assert.Equal(t, RangeHigh, Classify(14, "Foo").Range)
	assert.Equal(t, RangeLow, Classify(9, "Foo").Range)
	assert.Equal(t, RangeLow, Classify(0, "Foo").Range)
}

func TestClassify_Idempotent(t *testing.T) {
	for score := 0; score <= MaxTotalScore; score++ {
		for _, d := range Dimensions() {
			assert.Equal(t, Classify(score, d.Name), Classify(score, d.Name))
		}
	}
}

func TestScoreDimensions(t *testing.T) {
	totals := [ColumnCount]int{14, 12, 5, 9, 10, 10, 4, 6}
	results := ScoreDimensions(totals)
	require.Len(t, results, ColumnCount)

	want := []Range{RangeHigh, RangeHigh, RangeLow, RangeHigh, RangeAverage, RangeLow, RangeLow, RangeLow}
	for i, r := range results {
		assert.Equal(t, i+1, r.Column)
		assert.Equal(t, totals[i], r.Score)
		assert.Equal(t, want[i], r.Range, r.DimensionName)
		assert.False(t, r.Fallback)
	}
	assert.Equal(t, 3, CountRange(results, RangeHigh))
}

func TestClassify_RangeResponses(t *testing.T) {
	for _, d := range Dimensions() {
		assert.NotEmpty(t, d.Responses.Low, d.Name)
		assert.NotEmpty(t, d.Responses.Average, d.Name)
		assert.NotEmpty(t, d.Responses.High, d.Name)

		th := d.Threshold
		assert.Equal(t, d.Responses.High, Classify(th.HighMin, d.Name).Description, d.Name)
		assert.Equal(t, d.Responses.Average, Classify(th.AvgMin, d.Name).Description, d.Name)
		assert.Equal(t, d.Responses.Low, Classify(0, d.Name).Description, d.Name)
	}

	gap := "Sets milestones and measures for critical stages of task"
	d, ok := LookupDimension(gap)
	require.True(t, ok)
	assert.Equal(t, d.Responses.Low, Classify(10, gap).Description)
}

func TestClassify_FallbackResponse(t *testing.T) {
	assert.Equal(t, fallbackResponses.Average, Classify(12, "Foo").Description)
	assert.Equal(t, fallbackResponses.High, Classify(20, "Foo").Description)
	assert.Equal(t, fallbackResponses.Low, Classify(3, "Foo").Description)
}

func TestScoreDimensions_CarriesDescription(t *testing.T) {
	totals := [ColumnCount]int{14, 12, 5, 9, 10, 10, 4, 6}
	for _, r := range ScoreDimensions(totals) {
		d, ok := LookupDimension(r.DimensionName)
		require.True(t, ok)
		assert.Equal(t, d.Responses.For(r.Range), r.Description, r.DimensionName)
	}
}
