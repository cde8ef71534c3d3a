package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestSumsAreAdditive(t *testing.T) {
	sums := Sums([]Assignment{
		{MetricID: 1, Value: f64(3)},
		{MetricID: 1, Value: f64(4.5)},
		{MetricID: 2, Value: nil},
		{MetricID: 3, Value: nil},
		{MetricID: 3, Value: f64(1)},
	})
	require.NotNil(t, sums[1])
	assert.Equal(t, 7.5, *sums[1])
	assert.Nil(t, sums[2])
	assert.Equal(t, 1.0, *sums[3])
}

func TestBoard(t *testing.T) {
	metrics := map[int64]Metric{
		1: {ID: 1, Name: "Goals"},
		2: {ID: 2, Name: "Games"},
		3: {ID: 3, Name: "Goals per game", Aggregated: true, FormulaID: ptr(1), Components: []int64{1, 2}},
		4: {ID: 4, Name: "Goals plus assists", Aggregated: true, FormulaID: ptr(2), Components: []int64{1, 5}},
	}
	formulas := map[int64]Formula{1: division, 2: sum}

	board := Board([]Assignment{
		{MetricID: 1, Value: f64(6)},
		{MetricID: 1, Value: f64(4)},
		{MetricID: 2, Value: f64(3)},
		{MetricID: 3},
		{MetricID: 4},
		{MetricID: 99, Value: f64(1)},
	}, metrics, formulas)

	require.Len(t, board, 4)
	assert.Equal(t, Entry{MetricID: 1, Value: f64(10)}, board[0])
	assert.Equal(t, Entry{MetricID: 2, Value: f64(3)}, board[1])
	assert.True(t, board[2].Aggregated)
	require.NotNil(t, board[2].Value)
	assert.Equal(t, 3.33, *board[2].Value)
	assert.True(t, board[3].Aggregated)
	assert.Nil(t, board[3].Value, "component 5 is not on the board")
}

func TestBoardDivisionByZeroComponent(t *testing.T) {
	metrics := map[int64]Metric{
		1: {ID: 1},
		2: {ID: 2},
		3: {ID: 3, Aggregated: true, FormulaID: ptr(1), Components: []int64{1, 2}},
	}
	board := Board([]Assignment{
		{MetricID: 1, Value: f64(5)},
		{MetricID: 2, Value: f64(0)},
		{MetricID: 3},
	}, metrics, map[int64]Formula{1: division})

	require.Len(t, board, 3)
	assert.Nil(t, board[2].Value)
}

func TestFormatValue(t *testing.T) {
	assert.Nil(t, FormatValue(nil))
	assert.Equal(t, "3.30", *FormatValue(f64(3.3)))
	assert.Equal(t, "0.00", *FormatValue(f64(0)))
}
