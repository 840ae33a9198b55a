package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Year sentinels written by the ingestion scripts when no year was found.
const (
	NoYear       = "No year"
	NotAvailable = "N/A"
)

// Year is the canonical string form of a publication year. Numeric and
// textual inputs normalize to the same value, so 2024 and "2024" compare
// equal.
type Year string

// NewYear normalizes a raw year value. nil becomes the empty Year.
func NewYear(v any) Year {
	switch y := v.(type) {
	case nil:
		return ""
	case Year:
		return y
	case string:
		return Year(y)
	case *string:
		if y == nil {
			return ""
		}
		return Year(*y)
	case int:
		return Year(strconv.Itoa(y))
	case int32:
		return Year(strconv.FormatInt(int64(y), 10))
	case int64:
		return Year(strconv.FormatInt(y, 10))
	case uint64:
		return Year(strconv.FormatUint(y, 10))
	case float32:
		return Year(strconv.FormatFloat(float64(y), 'f', -1, 32))
	case float64:
		return Year(strconv.FormatFloat(y, 'f', -1, 64))
	case json.Number:
		return Year(y.String())
	case fmt.Stringer:
		return Year(y.String())
	default:
		return Year(fmt.Sprint(y))
	}
}

// YearOf returns the Year for a calendar year.
func YearOf(year int) Year { return Year(strconv.Itoa(year)) }

// Valid reports whether the year counts as an active year. Absent values and
// the ingestion sentinels do not.
func (y Year) Valid() bool {
	switch string(y) {
	case "", NoYear, NotAvailable:
		return false
	}
	return true
}

// Int parses the year as an integer.
func (y Year) Int() (int, bool) {
	n, err := strconv.Atoi(string(y))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (y Year) String() string { return string(y) }

// Publication is one research article row. Rows are linked to a professor by
// ProfessorID and may repeat titles.
type Publication struct {
	ID          string
	ProfessorID string
	Title       string
	Year        Year
	URL         string
}
