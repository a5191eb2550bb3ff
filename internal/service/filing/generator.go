package filing

import (
	"fmt"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/teambition/rrule-go"
)

// ScheduleSize is the number of obligations generated for one year.
const ScheduleSize = 17

// Withholding is reported monthly, due the 10th of the following month.
const withholdingRule = "FREQ=MONTHLY;BYMONTHDAY=10;COUNT=12"

type annualDeadline struct {
	category filing.Category
	term     int
	month    time.Month
	day      int
}

var annualDeadlines = []annualDeadline{
	{filing.CategoryValueAddedTax, 1, time.January, 25},
	{filing.CategoryValueAddedTax, 2, time.July, 25},
	{filing.CategoryIncomeTax, 1, time.May, 31},
	{filing.CategoryLocalIncomeTax, 1, time.May, 31},
	{filing.CategoryBusinessStatusReport, 1, time.February, 10},
}

// GenerateSchedule returns the year's filing obligations, all pending and
// without IDs, ordered by due date, then category and term.
func GenerateSchedule(year int) ([]filing.Obligation, error) {
	if err := filing.ValidateYear(year); err != nil {
		return nil, err
	}

	due, err := withholdingDueDates(year)
	if err != nil {
		return nil, err
	}

	obligations := make([]filing.Obligation, 0, ScheduleSize)
	for i, d := range due {
		month := i + 1
		obligations = append(obligations, filing.Obligation{
			Year:     year,
			Month:    &month,
			Term:     month,
			Category: filing.CategoryWithholding,
			DueDate:  d,
			Status:   filing.StatusPending,
		})
	}
	for _, a := range annualDeadlines {
		obligations = append(obligations, filing.Obligation{
			Year:     year,
			Term:     a.term,
			Category: a.category,
			DueDate:  time.Date(year, a.month, a.day, 0, 0, 0, 0, time.UTC),
			Status:   filing.StatusPending,
		})
	}

	filing.SortObligations(obligations)
	return obligations, nil
}

func withholdingDueDates(year int) ([]time.Time, error) {
	opt, err := rrule.StrToROption(withholdingRule)
	if err != nil {
		return nil, fmt.Errorf("withholding rule: %w", err)
	}
	// First report covers January and is due in February.
	opt.Dtstart = time.Date(year, time.February, 10, 0, 0, 0, 0, time.UTC)

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("withholding rule: %w", err)
	}
	return rule.All(), nil
}
