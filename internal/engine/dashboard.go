package engine

import (
	"fmt"
	"foodindex/internal/models"
)

const (
	indexValueLabel = "Index Value, 2020M01=100"
	dateLabel       = "Date"

	// competingColor sets the competing index apart from the main index,
	// whichever competing index is selected.
	competingColor = "red"
)

var competingLegend = models.Legend{XAnchor: "left", YAnchor: "top", X: 0.01, Y: 0.99}

func (ds *Dataset) Options() models.Options {
	return models.Options{
		Subindices: ds.SubindexFields(),
		MainIndex:  ds.MainIndexField(),
		Competing:  ds.CompetingFields(),
	}
}

// Dashboard recomputes the whole view from the selection. It never fails:
// a panel that cannot be built carries an error message instead of a chart.
func (ds *Dataset) Dashboard(sel models.Selection, showRaw bool) *models.DashboardData {
	mainField := ds.MainIndexField()

	data := &models.DashboardData{
		Selection:        sel,
		ShowRaw:          showRaw,
		SubindexOptions:  ds.SubindexFields(),
		CompetingOptions: ds.CompetingFields(),
		MainIndex:        mainField,
	}

	// Upper: the chosen subindex
	data.Upper.Heading = fmt.Sprintf("Daily Time Series of %s", sel.Subindex)
	upper, err := BuildLineChart(ds.Subindices, ds.Subindices.DateField, []string{sel.Subindex}, ChartOptions{
		XLabel:      dateLabel,
		YLabel:      indexValueLabel,
		RangeSlider: true,
	})
	if err != nil {
		data.Upper.Error = err.Error()
	} else {
		data.Upper.Chart = upper
	}

	// Lower: main index against the chosen competing index
	data.Lower.Heading = fmt.Sprintf("Daily Time Series of %s and %s", mainField, sel.Competing)
	legend := competingLegend
	lower, err := BuildLineChart(ds.MainIndex, ds.MainIndex.DateField, []string{mainField, sel.Competing}, ChartOptions{
		XLabel:       dateLabel,
		YLabel:       indexValueLabel,
		SeriesColors: map[string]string{sel.Competing: competingColor},
		Legend:       &legend,
		RangeSlider:  true,
	})
	if err != nil {
		data.Lower.Error = err.Error()
	} else {
		data.Lower.Chart = lower
	}

	if !showRaw {
		return data
	}
	raw, err := Project(ds.Subindices, sel.Subindex, ds.MainIndex, mainField, sel.Competing)
	if err != nil {
		data.Raw = &models.RawPanel{Error: err.Error()}
	} else {
		data.Raw = &models.RawPanel{Table: raw}
	}
	return data
}
