package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/export"
)

const exportPageSize = 100

var paySlipHeaders = []string{
	"Slip ID", "Staff ID", "Staff Name", "Classification", "Period",
	"Base Pay", "Extra Pay", "Allowance", "Allowance Detail", "Gross Pay",
	"Insurance", "Withholding", "Local Tax", "Net Pay", "Bracket", "Policy Version", "Issued At",
}

func (s *PayrollServiceImpl) ExportXLSX(ctx context.Context, filter payroll.PaySlipFilter, w io.Writer) error {
	filter.Page = 1
	filter.Limit = exportPageSize

	var rows [][]any
	for {
		slips, total, err := s.slipRepo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list pay slips for export: %w", err)
		}
		for _, slip := range slips {
			rows = append(rows, paySlipRow(slip))
		}
		if len(slips) == 0 || int64(len(rows)) >= total {
			break
		}
		filter.Page++
	}

	return export.WriteXLSX(w, export.Table{
		Sheet:   "Pay Slips",
		Headers: paySlipHeaders,
		Rows:    rows,
	})
}

func paySlipRow(s payroll.PaySlip) []any {
	name := ""
	if s.StaffName != nil {
		name = *s.StaffName
	}
	return []any{
		s.ID, s.StaffID, name, s.Classification.String(), fmt.Sprintf("%04d-%02d", s.Year, s.Month),
		s.BasePay, s.ExtraPay, s.AllowanceAmount, s.AllowanceDetail, s.GrossPay,
		s.Insurance, s.Withholding, s.LocalTax, s.NetPay, string(s.Bracket), s.PolicyVersion,
		s.IssuedAt.Format("2006-01-02 15:04:05"),
	}
}
