package derive

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFinancialYearBoundary(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{date(2025, time.March, 31), "FY2024-25"},
		{date(2025, time.April, 1), "FY2025-26"},
		{date(2025, time.December, 31), "FY2025-26"},
		{date(2026, time.January, 1), "FY2025-26"},
		{date(1999, time.June, 15), "FY1999-00"},
	}

	for _, tt := range tests {
		if got := FinancialYear(tt.date); got != tt.want {
			t.Errorf("FinancialYear(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestCalendarFields(t *testing.T) {
	// 2025-06-14 is a Saturday in week 24.
	f := CalendarFields(date(2025, time.June, 14))

	if f.Week != 24 {
		t.Errorf("expected week 24, got %d", f.Week)
	}
	if f.Year != 2025 {
		t.Errorf("expected year 2025, got %d", f.Year)
	}
	if f.FinancialYear != "FY2025-26" {
		t.Errorf("expected FY2025-26, got %s", f.FinancialYear)
	}
	if f.Month != "June" || f.MonthNumber != 6 {
		t.Errorf("expected June/6, got %s/%d", f.Month, f.MonthNumber)
	}
	if f.WeekdayNumber != 6 {
		t.Errorf("expected weekday 6, got %d", f.WeekdayNumber)
	}
	if !f.IsWeekend {
		t.Error("expected Saturday to be a weekend")
	}
}

func TestCalendarFieldsWeekend(t *testing.T) {
	tests := []struct {
		date    time.Time
		weekday int
		weekend bool
	}{
		{date(2025, time.June, 14), 6, true},  // Saturday
		{date(2025, time.June, 15), 0, true},  // Sunday
		{date(2025, time.June, 16), 1, false}, // Monday
		{date(2025, time.June, 18), 3, false}, // Wednesday
		{date(2025, time.June, 20), 5, false}, // Friday
	}

	for _, tt := range tests {
		f := CalendarFields(tt.date)
		if f.WeekdayNumber != tt.weekday {
			t.Errorf("%s: expected weekday %d, got %d", tt.date.Format("2006-01-02"), tt.weekday, f.WeekdayNumber)
		}
		if f.IsWeekend != tt.weekend {
			t.Errorf("%s: expected weekend=%v, got %v", tt.date.Format("2006-01-02"), tt.weekend, f.IsWeekend)
		}
	}
}

func TestCalendarFieldsISOWeekEdges(t *testing.T) {
	tests := []struct {
		date time.Time
		week int
	}{
		{date(2025, time.January, 1), 1},    // Wednesday, week 1 of 2025
		{date(2024, time.December, 30), 1},  // Monday, belongs to week 1 of 2025
		{date(2023, time.January, 1), 52},   // Sunday, still week 52 of 2022
		{date(2020, time.December, 31), 53}, // 2020 has 53 ISO weeks
	}

	for _, tt := range tests {
		if f := CalendarFields(tt.date); f.Week != tt.week {
			t.Errorf("%s: expected week %d, got %d", tt.date.Format("2006-01-02"), tt.week, f.Week)
		}
	}
}

func TestCalendarFieldsDeterministic(t *testing.T) {
	d := date(2025, time.February, 28)
	if CalendarFields(d) != CalendarFields(d) {
		t.Error("expected identical fields for the same date")
	}
}

func ptr(f float64) *float64 { return &f }

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name                            string
		quantity, unitPrice, manual     *float64
		want                            float64
	}{
		{"quantity and price", ptr(3), ptr(25.5), nil, 76.5},
		{"quantity and price beat manual", ptr(2), ptr(10), ptr(999), 20},
		{"manual only", nil, nil, ptr(42.75), 42.75},
		{"quantity without price falls back", ptr(5), nil, ptr(12), 12},
		{"price without quantity falls back", nil, ptr(8), ptr(12), 12},
		{"nothing supplied", nil, nil, nil, 0},
		{"negative manual passes through", nil, nil, ptr(-30), -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeAmount(tt.quantity, tt.unitPrice, tt.manual); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTransactionID(t *testing.T) {
	d := date(2025, time.July, 4)
	id := NewTransactionID(d)

	if !strings.HasPrefix(id, "TXN-20250704-") {
		t.Errorf("unexpected prefix in %s", id)
	}

	pattern := regexp.MustCompile(`^TXN-\d{8}-[A-Z0-9]{6}$`)
	if !pattern.MatchString(id) {
		t.Errorf("id %s does not match expected format", id)
	}
}
