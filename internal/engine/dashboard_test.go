package engine

import (
	"foodindex/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	ds := loadDataset(t)

	data := ds.Dashboard(models.Selection{Subindex: "Milk", Competing: "CompA"}, false)

	assert.Equal(t, []string{"Bread", "Milk"}, data.SubindexOptions)
	assert.Equal(t, []string{"CompA", "CompB"}, data.CompetingOptions)
	assert.Equal(t, "MainIdx", data.MainIndex)
	assert.Nil(t, data.Raw)

	require.NotNil(t, data.Upper.Chart)
	assert.Equal(t, "Daily Time Series of Milk", data.Upper.Heading)
	assert.Equal(t, "Index Value, 2020M01=100", data.Upper.Chart.YAxisTitle)
	assert.Equal(t, "Date", data.Upper.Chart.XAxisTitle)
	assert.True(t, data.Upper.Chart.RangeSlider)

	require.NotNil(t, data.Lower.Chart)
	assert.Equal(t, "Daily Time Series of MainIdx and CompA", data.Lower.Heading)
	require.Len(t, data.Lower.Chart.Series, 2)
	assert.Equal(t, "MainIdx", data.Lower.Chart.Series[0].Name)
	assert.Equal(t, "CompA", data.Lower.Chart.Series[1].Name)
	assert.Equal(t, "Index Value, 2020M01=100", data.Lower.Chart.AxisLabels["value"])
}

func TestDashboardCompetingStyleFollowsSelection(t *testing.T) {
	ds := loadDataset(t)

	for _, competing := range []string{"CompB", "CompA"} {
		data := ds.Dashboard(models.Selection{Subindex: "Bread", Competing: competing}, false)
		require.NotNil(t, data.Lower.Chart, competing)

		series := data.Lower.Chart.Series
		require.Len(t, series, 2)
		assert.Nil(t, series[0].Style, competing)
		require.NotNil(t, series[1].Style, competing)
		assert.Equal(t, competing, series[1].Label)
		assert.Equal(t, "red", series[1].Style.Color)
		assert.Equal(t, map[string]models.SeriesStyle{competing: {Color: "red"}}, data.Lower.Chart.Styles)

		col, err := ds.MainIndex.Column(competing)
		require.NoError(t, err)
		for i, p := range series[1].Points {
			assert.Equal(t, col[i], p.Y)
		}
	}
}

func TestDashboardRawToggleLeavesChartsAlone(t *testing.T) {
	ds := loadDataset(t)
	sel := models.Selection{Subindex: "Bread", Competing: "CompB"}

	hidden := ds.Dashboard(sel, false)
	shown := ds.Dashboard(sel, true)

	assert.Equal(t, hidden.Upper, shown.Upper)
	assert.Equal(t, hidden.Lower, shown.Lower)
	require.NotNil(t, shown.Raw)
	require.NotNil(t, shown.Raw.Table)
	assert.Len(t, shown.Raw.Table.Rows, ds.Subindices.Len())
}

func TestDashboardReportsPanelErrors(t *testing.T) {
	ds := loadDataset(t)

	data := ds.Dashboard(models.Selection{Subindex: "Cheese", Competing: "CompA"}, true)

	assert.Nil(t, data.Upper.Chart)
	assert.Contains(t, data.Upper.Error, "field not found")
	assert.NotNil(t, data.Lower.Chart)
	require.NotNil(t, data.Raw)
	assert.NotEmpty(t, data.Raw.Error)
}
