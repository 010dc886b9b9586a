// Package derive computes the read-only transaction fields: the calendar
// breakdown of the entry date, the amount, and the external transaction ID.
// All date math is done in UTC.
package derive

import (
	"fmt"
	"math/rand"
	"time"
)

// Fields holds everything derived from a transaction date.
type Fields struct {
	Week          int
	Year          int
	FinancialYear string
	Month         string
	MonthNumber   int
	WeekdayNumber int // 0=Sunday .. 6=Saturday
	IsWeekend     bool
}

// CalendarFields derives all date-dependent fields from the given date.
func CalendarFields(date time.Time) Fields {
	d := date.UTC()
	weekday := int(d.Weekday())
	_, week := d.ISOWeek()

	return Fields{
		Week:          week,
		Year:          d.Year(),
		FinancialYear: FinancialYear(d),
		Month:         d.Month().String(),
		MonthNumber:   int(d.Month()),
		WeekdayNumber: weekday,
		IsWeekend:     weekday == 0 || weekday == 6,
	}
}

// FinancialYear returns the April-to-March accounting year the date falls
// in, e.g. "FY2025-26" for any date from 2025-04-01 through 2026-03-31.
func FinancialYear(date time.Time) string {
	d := date.UTC()
	start := d.Year()
	if d.Month() < time.April {
		start--
	}
	return fmt.Sprintf("FY%d-%02d", start, (start+1)%100)
}

// ComputeAmount resolves the effective amount from the raw inputs.
// Quantity times unit price wins whenever both are present, even when a
// manual amount was also supplied.
func ComputeAmount(quantity, unitPrice, manualAmount *float64) float64 {
	if quantity != nil && unitPrice != nil {
		return *quantity * *unitPrice
	}
	if manualAmount != nil {
		return *manualAmount
	}
	return 0
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTransactionID builds an external transaction identifier of the form
// TXN-YYYYMMDD-XXXXXX. The suffix is random; uniqueness is enforced by the
// store, not here.
func NewTransactionID(date time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return "TXN-" + date.UTC().Format("20060102") + "-" + string(suffix)
}
