package engine

import "github.com/cockroachdb/errors"

var (
	// LoadError marks a missing, unreadable or malformed input file.
	LoadError = errors.New("load error")

	// ParseError marks a date cell that cannot be read as a calendar date.
	ParseError = errors.New("parse error")

	// FieldNotFoundError marks a reference to a column absent from a table.
	FieldNotFoundError = errors.New("field not found")
)
