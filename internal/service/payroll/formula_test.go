package payroll

import (
	"testing"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelector(t *testing.T) *FormulaSelector {
	t.Helper()
	f, err := NewFormulaSelector(payroll.StandardPolicy())
	require.NoError(t, err)
	return f
}

func TestStandardPolicy_InsuranceRate(t *testing.T) {
	rate := payroll.StandardPolicy().InsuranceRate()
	assert.True(t, decimal.RequireFromString("0.094040775").Equal(rate), "got %s", rate)
}

func TestNewFormulaSelector_RejectsInvalidPolicy(t *testing.T) {
	p := payroll.StandardPolicy()
	p.Version = ""
	_, err := NewFormulaSelector(p)
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicyTable)

	p = payroll.StandardPolicy()
	p.FlatRate = decimal.NewFromInt(-1)
	_, err = NewFormulaSelector(p)
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicyTable)
}

func TestFormulaSelector_Deductions(t *testing.T) {
	f := newSelector(t)

	tests := []struct {
		name           string
		classification staff.Classification
		base, extra    int64
		gross          int64
		want           payroll.Deductions
	}{
		{
			name:           "freelance flat rate",
			classification: staff.Freelance,
			base:           2500000,
			gross:          2500000,
			want:           payroll.Deductions{Taxable: 2500000, Withholding: 82500, LocalTax: 8250, Bracket: payroll.BracketFlat},
		},
		{
			name:           "salaried fixed high bracket",
			classification: staff.SalariedFixed,
			base:           3000000,
			gross:          3000000,
			want:           payroll.Deductions{Insurance: 282122, Taxable: 2567878, Withholding: 259181, LocalTax: 25918, Bracket: payroll.BracketHigh},
		},
		{
			name:           "salaried fixed taxable exactly at edge is high bracket",
			classification: staff.SalariedFixed,
			base:           1710893,
			gross:          1710893,
			want:           payroll.Deductions{Insurance: 160893, Taxable: 1400000, Withholding: 84000, LocalTax: 8400, Bracket: payroll.BracketHigh},
		},
		{
			name:           "salaried fixed one below edge is low bracket",
			classification: staff.SalariedFixed,
			base:           1710892,
			gross:          1710892,
			want:           payroll.Deductions{Insurance: 160893, Taxable: 1399999, Withholding: 83999, LocalTax: 8399, Bracket: payroll.BracketLow},
		},
		{
			name:           "salaried fixed low bracket",
			classification: staff.SalariedFixed,
			base:           1200000,
			gross:          1200000,
			want:           payroll.Deductions{Insurance: 112848, Taxable: 937152, Withholding: 56229, LocalTax: 5622, Bracket: payroll.BracketLow},
		},
		{
			name:           "salaried fixed taxable clamps at zero",
			classification: staff.SalariedFixed,
			base:           100000,
			gross:          100000,
			want:           payroll.Deductions{Insurance: 9404, Taxable: 0, Withholding: 0, LocalTax: 0, Bracket: payroll.BracketLow},
		},
		{
			name:           "salaried with overtime splits base and extra",
			classification: staff.SalariedWithOvertime,
			base:           2500000,
			extra:          300000,
			gross:          2800000,
			want:           payroll.Deductions{
				Insurance: 235101, Taxable: 2114899, Withholding: 201134, OvertimeWithholding: 9900,
				LocalTax: 20113, Bracket: payroll.BracketHigh,
			},
		},
		{
			name:           "hourly part-time above exemption",
			classification: staff.HourlyPartTime,
			base:           1800000,
			gross:          1800000,
			want:           payroll.Deductions{Taxable: 110000, Withholding: 3630, LocalTax: 363, Bracket: payroll.BracketFlat},
		},
		{
			name:           "hourly part-time at exemption",
			classification: staff.HourlyPartTime,
			base:           1690000,
			gross:          1690000,
			want:           payroll.Deductions{Bracket: payroll.BracketExempt},
		},
		{
			name:           "hourly part-time below exemption",
			classification: staff.HourlyPartTime,
			base:           900000,
			gross:          900000,
			want:           payroll.Deductions{Bracket: payroll.BracketExempt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Deductions(tt.classification, tt.base, tt.extra, tt.gross)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormulaSelector_Unclassified(t *testing.T) {
	f := newSelector(t)
	for _, c := range []staff.Classification{staff.ClassificationUnknown, staff.Classification(42)} {
		_, err := f.Deductions(c, 1000000, 0, 1000000)
		assert.ErrorIs(t, err, payroll.ErrUnclassifiedEmployment)
	}
}

func TestFormulaSelector_UsesBoundPolicy(t *testing.T) {
	p := payroll.StandardPolicy()
	p.Version = "2025.1"
	p.FlatRate = decimal.RequireFromString("0.05")
	f, err := NewFormulaSelector(p)
	require.NoError(t, err)

	got, err := f.Deductions(staff.Freelance, 1000000, 0, 1000000)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), got.Withholding)
	assert.Equal(t, "2025.1", f.Policy().Version)
}

func TestPolicyForVersion(t *testing.T) {
	policy, err := payroll.PolicyForVersion(payroll.StandardPolicyVersion)
	require.NoError(t, err)
	assert.Equal(t, payroll.StandardPolicyVersion, policy.Version)

	_, err = payroll.PolicyForVersion("1999.1")
	assert.ErrorIs(t, err, payroll.ErrInvalidPolicyTable)
}
