package workflow

import (
	"fmt"

	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

// Absolute currency tolerance for recomputed pay and deduction amounts.
// Differences up to one centavo are rounding, not discrepancies.
var currencyTolerance = decimal.RequireFromString("0.01")

// Bi-weekly payroll: a salaried employee's per-period gross is the annual
// salary over 26 pay periods.
var salaryPeriodsPerYear = decimal.NewFromInt(26)

var overtimeMultiplier = decimal.RequireFromString("1.5")

// ExpectedGrossPay recomputes gross pay from the entry's own rate fields.
func ExpectedGrossPay(entry models.PayrollEntry) decimal.Decimal {
	if entry.PayType == models.PayTypeSalary {
		return entry.SalaryAmount.Div(salaryPeriodsPerYear)
	}
	regular := entry.HoursWorked.Mul(entry.HourlyRate)
	overtime := entry.OvertimeHours.Mul(entry.HourlyRate).Mul(overtimeMultiplier)
	return regular.Add(overtime)
}

// DetectPayDiscrepancies checks every entry's recorded gross and net pay
// against recomputed expectations. The two checks are orthogonal: the net
// check uses the entry's own recorded gross, so both may fire on one entry.
// Output follows input row order.
func DetectPayDiscrepancies(entries []models.PayrollEntry, employees map[int]models.Employee) []*models.DiscrepancyRecord {
	var found []*models.DiscrepancyRecord

	for _, entry := range entries {
		name := employeeName(employees, entry.EmployeeId)

		expectedGross := ExpectedGrossPay(entry)
		if utils.ExceedsTolerance(expectedGross, entry.GrossPay, currencyTolerance) {
			found = append(found, models.NewDiscrepancy(
				entry.EmployeeId,
				models.DiscrepancyKindGrossPayMismatch,
				expectedGross,
				entry.GrossPay,
				fmt.Sprintf("%s: recorded gross pay %s, expected %s",
					name, entry.GrossPay.StringFixed(2), expectedGross.StringFixed(2)),
			))
		}

		expectedNet := entry.GrossPay.Sub(entry.TotalDeductions)
		if utils.ExceedsTolerance(expectedNet, entry.NetPay, currencyTolerance) {
			found = append(found, models.NewDiscrepancy(
				entry.EmployeeId,
				models.DiscrepancyKindNetPayMismatch,
				expectedNet,
				entry.NetPay,
				fmt.Sprintf("%s: recorded net pay %s, expected %s (gross %s - deductions %s)",
					name, entry.NetPay.StringFixed(2), expectedNet.StringFixed(2),
					entry.GrossPay.StringFixed(2), entry.TotalDeductions.StringFixed(2)),
			))
		}
	}
	return found
}

func employeeName(employees map[int]models.Employee, employeeId int) string {
	if e, ok := employees[employeeId]; ok {
		return e.FullName()
	}
	return fmt.Sprintf("employee #%d", employeeId)
}
