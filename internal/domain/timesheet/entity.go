package timesheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Clock is a same-day time of day at minute resolution, stored as minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock(hour*60 + minute), nil
}

// ParseClock parses a 24h "HH:MM" value.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(hour, minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return int(c)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Valid reports whether c falls within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

// Category enum
type Category string

const (
	CategoryRegular      Category = "regular"
	CategoryOvertime     Category = "overtime"
	CategoryConsultation Category = "consultation"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryRegular, CategoryOvertime, CategoryConsultation:
		return c, nil
	case "":
		return CategoryRegular, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// WorkShift - one logged shift. Shifts are immutable once created; a
// correction is a new shift whose SupersedesID points at the one it replaces.
type WorkShift struct {
	ID           string
	StaffID      string
	Date         time.Time
	Start        Clock
	End          Clock
	BreakMinutes int
	Category     Category
	Note         *string
	SupersedesID *string
	CreatedAt    time.Time
}

// Span is the raw minutes between start and end, before the break.
func (s WorkShift) Span() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// MonthlySummary - worked minutes of effective (non-superseded) shifts in a month.
type MonthlySummary struct {
	StaffID             string
	Year                int
	Month               int
	ShiftCount          int
	RegularMinutes      int
	OvertimeMinutes     int
	ConsultationMinutes int
	SuggestedExtraPay   *int64
}

func (s MonthlySummary) TotalMinutes() int {
	return s.RegularMinutes + s.OvertimeMinutes + s.ConsultationMinutes
}

// TotalHours is TotalMinutes expressed in hours, suitable as a per-hour allowance quantity.
func (s MonthlySummary) TotalHours() decimal.Decimal {
	return MinutesToHours(s.TotalMinutes())
}

func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}
