package engine

import (
	"foodindex/internal/models"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	chartTemplate = "seaborn"

	// valueAxis labels the shared y axis of a multi-series chart.
	valueAxis = "value"
)

type ChartOptions struct {
	Title  string
	XLabel string
	YLabel string

	// SeriesColors is keyed by field name, not by series position.
	SeriesColors map[string]string
	Legend       *models.Legend
	RangeSlider  bool
}

// BuildLineChart plots every y field against the date column, one series
// per field, in row order.
func BuildLineChart(t *Table, xField string, yFields []string, opts ChartOptions) (*models.ChartSpec, error) {
	if !t.HasField(xField) {
		return nil, errors.Wrapf(FieldNotFoundError, "x field %q in %s", xField, t.Name)
	}
	if xField != t.DateField {
		return nil, errors.Newf("x field %q of %s is not its date column", xField, t.Name)
	}
	if len(yFields) == 0 {
		return nil, errors.Wrapf(FieldNotFoundError, "no y field requested from %s", t.Name)
	}

	spec := &models.ChartSpec{
		Title:       opts.Title,
		Template:    chartTemplate,
		XField:      xField,
		YFields:     slices.Clone(yFields),
		AxisLabels:  make(map[string]string, len(yFields)+1),
		Styles:      make(map[string]models.SeriesStyle),
		RangeSlider: opts.RangeSlider,
		Series:      make([]models.Series, 0, len(yFields)),
	}

	spec.XAxisTitle = labelOr(opts.XLabel, displayName(xField))
	spec.AxisLabels[xField] = spec.XAxisTitle

	for _, field := range yFields {
		col, err := t.Column(field)
		if err != nil {
			return nil, err
		}

		series := models.Series{
			Name:   field,
			Label:  field,
			Points: make([]models.Point, len(col)),
		}
		for i, v := range col {
			series.Points[i] = models.Point{X: t.Dates[i], Y: v}
		}
		if color, ok := opts.SeriesColors[field]; ok {
			style := models.SeriesStyle{Color: color}
			series.Style = &style
			spec.Styles[field] = style
		}
		spec.Series = append(spec.Series, series)
	}

	if len(yFields) == 1 {
		spec.YAxisTitle = labelOr(opts.YLabel, displayName(yFields[0]))
		spec.AxisLabels[yFields[0]] = spec.YAxisTitle
		return spec, nil
	}

	spec.YAxisTitle = labelOr(opts.YLabel, valueAxis)
	spec.AxisLabels[valueAxis] = spec.YAxisTitle
	spec.ShowLegend = true
	spec.Legend = opts.Legend
	return spec, nil
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

// displayName turns a column name into an axis label: "date" -> "Date",
// "food_index" -> "Food Index". Existing capitals are kept.
func displayName(field string) string {
	caser := cases.Title(language.English, cases.NoLower)
	return caser.String(strings.ReplaceAll(field, "_", " "))
}
