package report

import (
	"fmt"
	"time"

	"github.com/money/backend/internal/domain/shared"
)

// Month is a calendar month used to window read-model queries
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewMonth validates and creates a month
func NewMonth(year, month int) (Month, error) {
	if year < 1 || year > 9999 {
		return Month{}, shared.NewValidationError(fmt.Sprintf("invalid year %d", year))
	}
	if month < 1 || month > 12 {
		return Month{}, shared.NewValidationError(fmt.Sprintf("invalid month %d", month))
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// MonthOf returns the UTC month containing t
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns the first instant of the month (inclusive)
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the next month (exclusive)
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the month
func (m Month) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(m.Start()) && t.Before(m.End())
}

// Before orders months chronologically
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// String returns "YYYY-MM"
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
