package workflow

import (
	"testing"

	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testEmployees() map[int]models.Employee {
	return map[int]models.Employee{
		1: {ID: 1, FirstName: "Maria", LastName: "Santos"},
		2: {ID: 2, FirstName: "Jose", LastName: "Reyes"},
	}
}

func TestHourlyUnderpaymentProducesNegativeVariance(t *testing.T) {
	// 80h * 100 + 4h * 100 * 1.5 = 8600 expected; 8300 recorded.
	entry := models.PayrollEntry{
		EmployeeId:    1,
		PayType:       models.PayTypeHourly,
		HourlyRate:    dec("100"),
		HoursWorked:   dec("80"),
		OvertimeHours: dec("4"),
		GrossPay:      dec("8300"),
		NetPay:        dec("8300"),
	}

	found := DetectPayDiscrepancies([]models.PayrollEntry{entry}, testEmployees())
	if len(found) != 1 {
		t.Fatalf("expected exactly 1 discrepancy, got %d", len(found))
	}
	d := found[0]
	if d.Kind != models.DiscrepancyKindGrossPayMismatch {
		t.Fatalf("expected GrossPayMismatch, got %s", d.Kind)
	}
	if d.Category != models.ReconciliationCategoryPayroll {
		t.Fatalf("expected Payroll category, got %s", d.Category)
	}
	if !d.ExpectedValue.Equal(dec("8600")) {
		t.Fatalf("expected value 8600, got %s", d.ExpectedValue)
	}
	if !d.ActualValue.Equal(dec("8300")) {
		t.Fatalf("actual value 8300, got %s", d.ActualValue)
	}
	if !d.Variance.Equal(dec("-300")) {
		t.Fatalf("variance -300, got %s", d.Variance)
	}
}

func TestSalaryGrossUsesBiweeklyDivisor(t *testing.T) {
	entry := models.PayrollEntry{
		EmployeeId:   2,
		PayType:      models.PayTypeSalary,
		SalaryAmount: dec("520000"),
		GrossPay:     dec("20000"),
		NetPay:       dec("20000"),
	}

	if found := DetectPayDiscrepancies([]models.PayrollEntry{entry}, testEmployees()); len(found) != 0 {
		t.Fatalf("520000/26 = 20000 exactly; expected no discrepancy, got %d", len(found))
	}

	entry.GrossPay = dec("20025")
	entry.NetPay = dec("20025")
	found := DetectPayDiscrepancies([]models.PayrollEntry{entry}, testEmployees())
	if len(found) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(found))
	}
	if !found[0].Variance.Equal(dec("25")) {
		t.Fatalf("overpayment variance should be +25, got %s", found[0].Variance)
	}
}

func TestCurrencyToleranceBoundary(t *testing.T) {
	base := models.PayrollEntry{
		EmployeeId:  1,
		PayType:     models.PayTypeHourly,
		HourlyRate:  dec("100"),
		HoursWorked: dec("86"),
	}

	// Difference of exactly 0.01 is rounding, not a discrepancy.
	onBoundary := base
	onBoundary.GrossPay = dec("8600.01")
	onBoundary.NetPay = dec("8600.01")
	if found := DetectPayDiscrepancies([]models.PayrollEntry{onBoundary}, testEmployees()); len(found) != 0 {
		t.Fatalf("0.01 difference must not fire, got %d discrepancies", len(found))
	}

	overBoundary := base
	overBoundary.GrossPay = dec("8600.011")
	overBoundary.NetPay = dec("8600.011")
	found := DetectPayDiscrepancies([]models.PayrollEntry{overBoundary}, testEmployees())
	if len(found) != 1 {
		t.Fatalf("difference above tolerance must fire once, got %d", len(found))
	}
}

func TestGrossAndNetChecksAreOrthogonal(t *testing.T) {
	// Gross is wrong against recomputation, and net is wrong against the
	// entry's own recorded gross. Both fire on the same entry.
	entry := models.PayrollEntry{
		EmployeeId:      1,
		PayType:         models.PayTypeHourly,
		HourlyRate:      dec("100"),
		HoursWorked:     dec("80"),
		GrossPay:        dec("7900"),
		TotalDeductions: dec("500"),
		NetPay:          dec("7500"),
	}

	found := DetectPayDiscrepancies([]models.PayrollEntry{entry}, testEmployees())
	if len(found) != 2 {
		t.Fatalf("expected 2 discrepancies, got %d", len(found))
	}
	if found[0].Kind != models.DiscrepancyKindGrossPayMismatch {
		t.Fatalf("first record should be the gross check, got %s", found[0].Kind)
	}
	if found[1].Kind != models.DiscrepancyKindNetPayMismatch {
		t.Fatalf("second record should be the net check, got %s", found[1].Kind)
	}
	// Net expectation comes from recorded gross (7900 - 500), not 8000.
	if !found[1].ExpectedValue.Equal(dec("7400")) {
		t.Fatalf("net expected 7400, got %s", found[1].ExpectedValue)
	}
	if !found[1].Variance.Equal(dec("100")) {
		t.Fatalf("net variance +100, got %s", found[1].Variance)
	}
}

func TestOutputFollowsInputRowOrder(t *testing.T) {
	wrong := func(employeeId int) models.PayrollEntry {
		return models.PayrollEntry{
			EmployeeId:  employeeId,
			PayType:     models.PayTypeHourly,
			HourlyRate:  dec("100"),
			HoursWorked: dec("80"),
			GrossPay:    dec("7000"),
			NetPay:      dec("7000"),
		}
	}
	found := DetectPayDiscrepancies([]models.PayrollEntry{wrong(2), wrong(1)}, testEmployees())
	if len(found) != 2 {
		t.Fatalf("expected 2 discrepancies, got %d", len(found))
	}
	if found[0].EmployeeId != 2 || found[1].EmployeeId != 1 {
		t.Fatalf("output must follow input row order, got employees %d, %d", found[0].EmployeeId, found[1].EmployeeId)
	}
}
