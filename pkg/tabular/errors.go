package tabular

import "errors"

// Sentinel errors returned by Source and Row. Callers match them with errors.Is;
// the returned error usually wraps one of these with the line or column involved.
var (
	// ErrMalformedInput is returned when the header is missing, a line cannot be
	// parsed, or a row's cell count differs from the header's.
	ErrMalformedInput = errors.New("tabular: malformed input")

	// ErrUnknownColumn is returned when a column name is not in the header or an
	// ordinal/index falls outside the row.
	ErrUnknownColumn = errors.New("tabular: unknown column")

	// ErrNumericParse is returned when a cell requested as a number is not one.
	ErrNumericParse = errors.New("tabular: cell is not numeric")

	// ErrNoMoreRows is returned by Next once every data row has been read.
	ErrNoMoreRows = errors.New("tabular: no more rows")
)
