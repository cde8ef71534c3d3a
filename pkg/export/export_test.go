package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Metric", "Kind", "Value"},
		Rows: []map[string]string{
			{"Metric": "Goals", "Kind": "base", "Value": "10"},
			{"Metric": "Goals per game", "Kind": "aggregated", "Value": "3.33"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestRendererCSV(t *testing.T) {
	report, err := NewRenderer().Render(FormatCSV, sampleDataset(), "Athlete metrics", "athlete-7-metrics")
	require.NoError(t, err)
	assert.Equal(t, "athlete-7-metrics.csv", report.Filename)
	assert.Equal(t, "text/csv", report.ContentType)
	assert.Equal(t, "Metric,Kind,Value\nGoals,base,10\nGoals per game,aggregated,3.33\n", string(report.Body))
}

func TestRendererPDF(t *testing.T) {
	report, err := NewRenderer().Render(FormatPDF, Dataset{Headers: []string{"Metric"}}, "Empty board", "empty")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, bytes.HasPrefix(report.Body, []byte("%PDF")))
}

func TestRendererRequiresHeaders(t *testing.T) {
	_, err := NewRenderer().Render(FormatCSV, Dataset{}, "", "x")
	assert.Error(t, err)
	_, err = NewRenderer().Render(FormatPDF, Dataset{}, "", "x")
	assert.Error(t, err)
}

func TestColumnWidthsFollowContent(t *testing.T) {
	widths := columnWidths(Dataset{
		Headers: []string{"Metric", "Value"},
		Rows:    []map[string]string{{"Metric": "Vertical jump height (cm)", "Value": "51.25"}},
	})
	assert.Greater(t, widths[0], widths[1])
	assert.InDelta(t, pageWidth, widths[0]+widths[1], 0.01)
	assert.True(t, isNumeric("51.25"))
	assert.False(t, isNumeric("n/a"))
}
