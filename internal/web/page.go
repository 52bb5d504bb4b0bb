package web

import (
	"foodindex/internal/models"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/guregu/null/v5"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f page.templ

// chartData is the payload of the #chart-data island read by the page script.
func chartData(view *models.DashboardData) map[string]*models.ChartSpec {
	return map[string]*models.ChartSpec{
		"upper": view.Upper.Chart,
		"lower": view.Lower.Chart,
	}
}

func formatDate(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatValue(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}
