package table

import "errors"

var (
	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrNoPageInFlight is returned when a page result arrives while no
	// fetch is outstanding.
	ErrNoPageInFlight = errors.New("no page fetch in flight")

	// ErrStalePage is returned when a page result belongs to data that has
	// since been reset.
	ErrStalePage = errors.New("stale page result")
)
