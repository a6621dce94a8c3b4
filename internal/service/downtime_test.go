package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

func TestShapeParetoEmpty(t *testing.T) {
	pareto := shapePareto(nil)

	assert.Zero(t, pareto.TotalDuration)
	assert.Empty(t, pareto.Categories)
	assert.Equal(t, -1, pareto.Pareto80Index)
}

func TestShapeParetoCumulative(t *testing.T) {
	// Already in descending duration order, as the aggregation returns it.
	reasons := []model.DowntimeReason{
		{Code: "MECH-01", CodeReason: "Filler jam", TotalDuration: 60},
		{Code: "OPER-02", CodeReason: "Label roll change", TotalDuration: 25},
		{Code: "CIP-01", CodeReason: "CIP overrun", TotalDuration: 10},
		{Code: "UTIL-03", CodeReason: "Power dip", TotalDuration: 5},
	}

	pareto := shapePareto(reasons)

	assert.Equal(t, 100, pareto.TotalDuration)
	assert.Equal(t, []int{60, 25, 10, 5}, pareto.Values)
	assert.Equal(t, []float64{60, 85, 95, 100}, pareto.CumulativePercentages)
	assert.Equal(t, 1, pareto.Pareto80Index, "the second category crosses 80%")
	assert.Equal(t, "MECH-01 - Filler jam", pareto.Categories[0])
}

func TestShapeParetoCategoryComposition(t *testing.T) {
	reasons := []model.DowntimeReason{
		{Code: "MECH-01", CodeReason: "Mechanical failure", TotalDuration: 30},
		{Code: "MISC-99", CodeReason: "", TotalDuration: 20},
	}

	pareto := shapePareto(reasons)

	require.Len(t, pareto.Categories, 2)
	assert.Equal(t, "MECH-01 - Mechanical failure", pareto.Categories[0])
	assert.Equal(t, "MISC-99 - Unknown", pareto.Categories[1], "a code without a reason reads Unknown")
}

func TestShapeParetoTruncatesLongReasons(t *testing.T) {
	long := strings.Repeat("x", 40)
	pareto := shapePareto([]model.DowntimeReason{{Code: "MECH-01", CodeReason: long, TotalDuration: 10}})

	require.Len(t, pareto.Categories, 1)
	assert.Equal(t, "MECH-01 - "+strings.Repeat("x", 22)+"...", pareto.Categories[0])
}

func TestTruncateLabelRuneSafe(t *testing.T) {
	// 40 two-byte runes: a byte slice at 22 would split a rune in half.
	long := strings.Repeat("ö", 40)
	got := truncateLabel(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ö", 22)+"...", got)
	assert.Equal(t, paretoLabelMaxLen, utf8.RuneCountInString(got))

	short := strings.Repeat("ö", paretoLabelMaxLen)
	assert.Equal(t, short, truncateLabel(short))
}
