package engine

import (
	"foodindex/internal/models"

	"cloud.google.com/go/civil"
	"github.com/guregu/null/v5"
)

// Project lines up the selected columns of both tables by row position.
// The tables are expected to be row-aligned already; when one is shorter its
// cells come out null, and the date is null past the end of sub.
func Project(sub *Table, subField string, main *Table, mainIndexField, competingField string) (*models.RawTable, error) {
	subCol, err := sub.Column(subField)
	if err != nil {
		return nil, err
	}
	mainCol, err := main.Column(mainIndexField)
	if err != nil {
		return nil, err
	}
	compCol, err := main.Column(competingField)
	if err != nil {
		return nil, err
	}

	raw := &models.RawTable{
		Columns: []string{sub.DateField, subField, mainIndexField, competingField},
		Rows:    make([]models.RawRow, max(sub.Len(), main.Len())),
	}
	for i := range raw.Rows {
		row := models.RawRow{
			Values: []null.Float{valueAt(subCol, i), valueAt(mainCol, i), valueAt(compCol, i)},
		}
		if i < sub.Len() {
			d := civil.DateOf(sub.Dates[i])
			row.Date = &d
		}
		raw.Rows[i] = row
	}
	return raw, nil
}

func valueAt(col []null.Float, i int) null.Float {
	if i < len(col) {
		return col[i]
	}
	return null.Float{}
}
