package workflow

import (
	"fmt"

	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

// DetectDeductionDiscrepancies recomputes the three statutory contributions
// from basic pay and the configured rates, and compares each against the
// stored deduction independently. An entry can produce zero to three
// records. Output follows input row order; per entry the order is SSS,
// PhilHealth, Pag-IBIG.
func DetectDeductionDiscrepancies(entries []models.PayrollEntry, rates models.RateSettings, employees map[int]models.Employee) []*models.DiscrepancyRecord {
	var found []*models.DiscrepancyRecord

	for _, entry := range entries {
		name := employeeName(employees, entry.EmployeeId)

		checks := []struct {
			kind   models.DiscrepancyKind
			label  string
			rate   decimal.Decimal
			stored decimal.Decimal
		}{
			{models.DiscrepancyKindSSSDeductionMismatch, "SSS", rates.SSSRate, entry.SSSDeduction},
			{models.DiscrepancyKindPhilHealthDeductionMismatch, "PhilHealth", rates.PhilHealthRate, entry.PhilHealthDeduction},
			{models.DiscrepancyKindPagIBIGDeductionMismatch, "Pag-IBIG", rates.PagIBIGRate, entry.PagIBIGDeduction},
		}

		for _, check := range checks {
			expected := entry.BasicPay.Mul(check.rate)
			if !utils.ExceedsTolerance(expected, check.stored, currencyTolerance) {
				continue
			}
			found = append(found, models.NewDiscrepancy(
				entry.EmployeeId,
				check.kind,
				expected,
				check.stored,
				fmt.Sprintf("%s: recorded %s deduction %s, expected %s (basic pay %s x rate %s)",
					name, check.label, check.stored.StringFixed(2), expected.StringFixed(2),
					entry.BasicPay.StringFixed(2), check.rate.String()),
			))
		}
	}
	return found
}
