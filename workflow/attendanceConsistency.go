package workflow

import (
	"fmt"

	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

// Quarter-hour tolerance between summed attendance and payroll-recorded hours.
var hoursTolerance = decimal.RequireFromString("0.25")

type hoursTotal struct {
	regular  decimal.Decimal
	overtime decimal.Decimal
}

// DetectAttendanceDiscrepancies compares per-employee attendance totals
// against the hours recorded on the employee's payroll entry. Inactive
// employees are skipped. A missing payroll entry counts as zero hours, so
// completed attendance with no entry still surfaces. Output follows the
// employees slice order.
func DetectAttendanceDiscrepancies(employees []models.Employee, attendance []models.AttendanceRecord, entries []models.PayrollEntry) []*models.DiscrepancyRecord {
	totals := make(map[int]hoursTotal, len(employees))
	for _, rec := range attendance {
		t := totals[rec.EmployeeId]
		t.regular = t.regular.Add(rec.RegularHours)
		t.overtime = t.overtime.Add(rec.OvertimeHours)
		totals[rec.EmployeeId] = t
	}
	entryByEmployee := models.PayrollEntryMapByEmployee(entries)

	var found []*models.DiscrepancyRecord
	for _, employee := range employees {
		if !employee.Active() {
			continue
		}

		total := totals[employee.ID]
		payrollHours := decimal.Zero
		payrollOvertime := decimal.Zero
		if entry, ok := entryByEmployee[employee.ID]; ok {
			payrollHours = entry.HoursWorked
			payrollOvertime = entry.OvertimeHours
		}

		if utils.ExceedsTolerance(total.regular, payrollHours, hoursTolerance) {
			found = append(found, models.NewDiscrepancy(
				employee.ID,
				models.DiscrepancyKindRegularHoursMismatch,
				total.regular,
				payrollHours,
				fmt.Sprintf("%s: payroll records %s regular hours, attendance totals %s",
					employee.FullName(), payrollHours.StringFixed(2), total.regular.StringFixed(2)),
			))
		}
		if utils.ExceedsTolerance(total.overtime, payrollOvertime, hoursTolerance) {
			found = append(found, models.NewDiscrepancy(
				employee.ID,
				models.DiscrepancyKindOvertimeHoursMismatch,
				total.overtime,
				payrollOvertime,
				fmt.Sprintf("%s: payroll records %s overtime hours, attendance totals %s",
					employee.FullName(), payrollOvertime.StringFixed(2), total.overtime.StringFixed(2)),
			))
		}
	}
	return found
}
