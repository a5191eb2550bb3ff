package filing

import (
	"fmt"
	"sort"
	"time"
)

// Category enum
type Category string

const (
	CategoryWithholding          Category = "withholding"
	CategoryValueAddedTax        Category = "value_added_tax"
	CategoryIncomeTax            Category = "income_tax"
	CategoryLocalIncomeTax       Category = "local_income_tax"
	CategoryBusinessStatusReport Category = "business_status_report"
)

// Monthly reports whether the category recurs every month.
func (c Category) Monthly() bool {
	return c == CategoryWithholding
}

// Status enum. Obligations only move forward: pending, filed, paid.
type Status string

const (
	StatusPending Status = "pending"
	StatusFiled   Status = "filed"
	StatusPaid    Status = "paid"
)

var statusRank = map[Status]int{
	StatusPending: 0,
	StatusFiled:   1,
	StatusPaid:    2,
}

func ParseStatus(s string) (Status, error) {
	if _, ok := statusRank[Status(s)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return Status(s), nil
}

// CanTransitionTo reports whether next is strictly later than s.
// Skipping a step (pending to paid) is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	return ok && to > from
}

// Key identifies an obligation within a year. Term is the month for monthly
// categories, the period (1 or 2) for value added tax, and 1 otherwise.
type Key struct {
	Year     int
	Category Category
	Term     int
}

// Obligation - one statutory filing deadline.
type Obligation struct {
	ID         string
	Year       int
	Month      *int // monthly categories only
	Term       int
	Category   Category
	DueDate    time.Time
	Status     Status
	PaidAmount *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (o Obligation) Key() Key {
	return Key{Year: o.Year, Category: o.Category, Term: o.Term}
}

// Transition moves o to next, optionally recording the amount paid.
func (o Obligation) Transition(next Status, paidAmount *int64) (Obligation, error) {
	if !o.Status.CanTransitionTo(next) {
		return Obligation{}, &TransitionError{From: o.Status, To: next}
	}
	if paidAmount != nil {
		if next != StatusPaid {
			return Obligation{}, ErrPaidAmountNotAllowed
		}
		if *paidAmount < 0 {
			return Obligation{}, ErrNegativePaidAmount
		}
		amount := *paidAmount
		o.PaidAmount = &amount
	}
	o.Status = next
	return o, nil
}

// SortObligations orders by due date, then category, then term.
func SortObligations(obligations []Obligation) {
	sort.SliceStable(obligations, func(i, j int) bool {
		a, b := obligations[i], obligations[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Term < b.Term
	})
}
