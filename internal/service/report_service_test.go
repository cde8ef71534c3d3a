package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/internal/dto"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
	"github.com/noah-isme/teamfit-api/pkg/export"
)

func TestBoardDataset(t *testing.T) {
	display := "3.75"
	board := &dto.AthleteBoard{Entries: []dto.BoardEntry{
		{Name: "Goals", Kind: dto.MetricKindBase, Value: float64Ptr(15)},
		{Name: "Ratio", Kind: dto.MetricKindAggregated, FormulaName: "Division", Value: float64Ptr(3.75), DisplayValue: &display},
		{Name: "Saves", Kind: dto.MetricKindBase},
	}}

	data := BoardDataset(board)
	assert.Equal(t, []string{"Metric", "Kind", "Formula", "Value"}, data.Headers)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "15", data.Rows[0]["Value"])
	assert.Equal(t, "3.75", data.Rows[1]["Value"])
	assert.Equal(t, "Division", data.Rows[1]["Formula"])
	assert.Equal(t, "", data.Rows[2]["Value"])
}

func TestReportServiceAthleteBoardCSV(t *testing.T) {
	boards, _, _, _ := newBoardFixture(t)
	svc := NewReportService(boards, newFakeAthletes(7), export.NewRenderer(), zap.NewNop())

	report, err := svc.AthleteBoard(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Equal(t, "athlete-7-metrics.csv", report.Filename)
	assert.Equal(t, "text/csv", report.ContentType)
	lines := strings.Split(strings.TrimSpace(string(report.Body)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Metric,Kind,Formula,Value", lines[0])
	assert.Equal(t, "Contributions,aggregated,Sum,19.00", lines[3])

	_, err = svc.AthleteBoard(context.Background(), 7, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.AthleteBoard(context.Background(), 8, "pdf")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
