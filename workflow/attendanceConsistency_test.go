package workflow

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/models"
)

func activeEmployee(id int, name string) models.Employee {
	active := true
	return models.Employee{ID: id, FirstName: name, LastName: "Test", IsActive: &active}
}

func attendanceDay(employeeId int, day int, regular string, overtime string) models.AttendanceRecord {
	return models.AttendanceRecord{
		EmployeeId:    employeeId,
		WorkDate:      time.Date(2026, time.August, day, 0, 0, 0, 0, time.UTC),
		RegularHours:  dec(regular),
		OvertimeHours: dec(overtime),
		Status:        models.AttendanceStatusCompleted,
	}
}

func TestAttendanceSumsRegularAndOvertimeSeparately(t *testing.T) {
	employees := []models.Employee{activeEmployee(1, "Maria")}
	attendance := []models.AttendanceRecord{
		attendanceDay(1, 3, "8", "0"),
		attendanceDay(1, 4, "8", "2"),
		attendanceDay(1, 5, "8", "1.5"),
	}
	entries := []models.PayrollEntry{{
		EmployeeId:    1,
		HoursWorked:   dec("24"),
		OvertimeHours: dec("2"),
	}}

	found := DetectAttendanceDiscrepancies(employees, attendance, entries)
	if len(found) != 1 {
		t.Fatalf("regular hours match, overtime off by 1.5; expected 1 discrepancy, got %d", len(found))
	}
	d := found[0]
	if d.Kind != models.DiscrepancyKindOvertimeHoursMismatch {
		t.Fatalf("expected OvertimeHoursMismatch, got %s", d.Kind)
	}
	if !d.ExpectedValue.Equal(dec("3.5")) || !d.ActualValue.Equal(dec("2")) {
		t.Fatalf("expected 3.5 vs actual 2, got %s vs %s", d.ExpectedValue, d.ActualValue)
	}
	if !d.Variance.Equal(dec("-1.5")) {
		t.Fatalf("variance -1.5, got %s", d.Variance)
	}
}

func TestMissingPayrollEntryCountsAsZeroHours(t *testing.T) {
	employees := []models.Employee{activeEmployee(1, "Maria")}
	attendance := []models.AttendanceRecord{
		attendanceDay(1, 3, "8", "0"),
		attendanceDay(1, 4, "8", "0"),
	}

	found := DetectAttendanceDiscrepancies(employees, attendance, nil)
	if len(found) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(found))
	}
	if !found[0].Variance.Equal(dec("-16")) {
		t.Fatalf("16 worked hours against an absent entry: variance -16, got %s", found[0].Variance)
	}
}

func TestInactiveEmployeesSilentlyExcluded(t *testing.T) {
	inactive := false
	employees := []models.Employee{
		{ID: 1, FirstName: "Former", LastName: "Staff", IsActive: &inactive},
	}
	attendance := []models.AttendanceRecord{attendanceDay(1, 3, "40", "0")}

	if found := DetectAttendanceDiscrepancies(employees, attendance, nil); len(found) != 0 {
		t.Fatalf("inactive employee must not be checked, got %d discrepancies", len(found))
	}
}

func TestQuarterHourToleranceBoundary(t *testing.T) {
	employees := []models.Employee{activeEmployee(1, "Maria")}
	entries := []models.PayrollEntry{{EmployeeId: 1, HoursWorked: dec("40")}}

	onBoundary := []models.AttendanceRecord{attendanceDay(1, 3, "40.25", "0")}
	if found := DetectAttendanceDiscrepancies(employees, onBoundary, entries); len(found) != 0 {
		t.Fatalf("0.25h difference must not fire, got %d", len(found))
	}

	overBoundary := []models.AttendanceRecord{attendanceDay(1, 3, "40.26", "0")}
	if found := DetectAttendanceDiscrepancies(employees, overBoundary, entries); len(found) != 1 {
		t.Fatalf("0.26h difference must fire once, got %d", len(found))
	}
}

func TestEmployeeWithNoAttendanceAndNoEntryIsClean(t *testing.T) {
	employees := []models.Employee{activeEmployee(1, "Maria"), activeEmployee(2, "Jose")}
	attendance := []models.AttendanceRecord{attendanceDay(2, 3, "8", "0")}
	entries := []models.PayrollEntry{{EmployeeId: 2, HoursWorked: dec("8")}}

	if found := DetectAttendanceDiscrepancies(employees, attendance, entries); len(found) != 0 {
		t.Fatalf("zero attendance against zero payroll hours is consistent, got %d", len(found))
	}
}

func TestAttendanceDetectorIsIdempotentOnUnchangedData(t *testing.T) {
	employees := []models.Employee{activeEmployee(1, "Maria"), activeEmployee(2, "Jose")}
	attendance := []models.AttendanceRecord{
		attendanceDay(1, 3, "8", "1"),
		attendanceDay(2, 3, "8", "0"),
		attendanceDay(1, 4, "8", "0"),
	}
	entries := []models.PayrollEntry{
		{EmployeeId: 1, HoursWorked: dec("8")},
		{EmployeeId: 2, HoursWorked: dec("16")},
	}

	first := DetectAttendanceDiscrepancies(employees, attendance, entries)
	second := DetectAttendanceDiscrepancies(employees, attendance, entries)

	if len(first) != len(second) {
		t.Fatalf("two runs differ in count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.EmployeeId != b.EmployeeId || a.Kind != b.Kind ||
			!a.ExpectedValue.Equal(b.ExpectedValue) || !a.ActualValue.Equal(b.ActualValue) ||
			!a.Variance.Equal(b.Variance) || a.Description != b.Description {
			t.Fatalf("record %d differs between identical runs:\n%+v\n%+v", i, a, b)
		}
	}
}
