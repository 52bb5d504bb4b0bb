package engine

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLineChartSingleSeries(t *testing.T) {
	ds := loadDataset(t)

	spec, err := BuildLineChart(ds.Subindices, "date", []string{"Bread"}, ChartOptions{RangeSlider: true})
	require.NoError(t, err)
	require.Len(t, spec.Series, 1)

	series := spec.Series[0]
	assert.Equal(t, "Bread", series.Name)
	require.Len(t, series.Points, 3)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), series.Points[0].X)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), series.Points[1].X)
	assert.Equal(t, 100.0, series.Points[0].Y.Float64)
	assert.Equal(t, 101.0, series.Points[1].Y.Float64)

	assert.Equal(t, "Date", spec.XAxisTitle)
	assert.Equal(t, "Bread", spec.YAxisTitle)
	assert.Equal(t, "Bread", spec.AxisLabels["Bread"])
	assert.False(t, spec.ShowLegend)
	assert.True(t, spec.RangeSlider)
	assert.Empty(t, spec.Styles)
}

func TestBuildLineChartFollowsColumns(t *testing.T) {
	ds := loadDataset(t)

	for _, field := range ds.SubindexFields() {
		spec, err := BuildLineChart(ds.Subindices, "date", []string{field}, ChartOptions{})
		require.NoError(t, err)

		col, err := ds.Subindices.Column(field)
		require.NoError(t, err)
		require.Len(t, spec.Series[0].Points, len(col))
		for i, p := range spec.Series[0].Points {
			assert.Equal(t, col[i], p.Y, "%s row %d", field, i)
			assert.Equal(t, ds.Subindices.Dates[i], p.X, "%s row %d", field, i)
		}
	}
}

func TestBuildLineChartSeveralSeries(t *testing.T) {
	ds := loadDataset(t)

	spec, err := BuildLineChart(ds.MainIndex, "date", []string{"MainIdx", "CompB"}, ChartOptions{
		SeriesColors: map[string]string{"CompB": "red"},
		Legend:       &competingLegend,
	})
	require.NoError(t, err)
	require.Len(t, spec.Series, 2)

	assert.Equal(t, "value", spec.YAxisTitle)
	assert.True(t, spec.ShowLegend)
	assert.Equal(t, &competingLegend, spec.Legend)

	assert.Nil(t, spec.Series[0].Style)
	require.NotNil(t, spec.Series[1].Style)
	assert.Equal(t, "red", spec.Series[1].Style.Color)
	assert.Equal(t, "red", spec.Styles["CompB"].Color)
}

func TestBuildLineChartStyleKeyedByName(t *testing.T) {
	ds := loadDataset(t)

	// The colored field comes first here; position must not matter.
	spec, err := BuildLineChart(ds.MainIndex, "date", []string{"CompA", "MainIdx"}, ChartOptions{
		SeriesColors: map[string]string{"CompA": "red"},
	})
	require.NoError(t, err)
	require.NotNil(t, spec.Series[0].Style)
	assert.Nil(t, spec.Series[1].Style)
}

func TestBuildLineChartFieldNotFound(t *testing.T) {
	ds := loadDataset(t)

	_, err := BuildLineChart(ds.Subindices, "date", []string{"Cheese"}, ChartOptions{})
	assert.True(t, errors.Is(err, FieldNotFoundError), "got %v", err)

	_, err = BuildLineChart(ds.Subindices, "day", []string{"Bread"}, ChartOptions{})
	assert.True(t, errors.Is(err, FieldNotFoundError), "got %v", err)

	_, err = BuildLineChart(ds.Subindices, "date", nil, ChartOptions{})
	assert.True(t, errors.Is(err, FieldNotFoundError), "got %v", err)
}

func TestBuildLineChartValueColumnAsX(t *testing.T) {
	ds := loadDataset(t)

	_, err := BuildLineChart(ds.Subindices, "Milk", []string{"Bread"}, ChartOptions{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, FieldNotFoundError), "got %v", err)
	assert.Contains(t, err.Error(), "not its date column")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Date", displayName("date"))
	assert.Equal(t, "Food Index", displayName("food_index"))
	assert.Equal(t, "CPI", displayName("CPI"))
}
