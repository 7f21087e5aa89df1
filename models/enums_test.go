package models

import "testing"

func TestEveryDiscrepancyKindHasACategory(t *testing.T) {
	kinds := []DiscrepancyKind{
		DiscrepancyKindGrossPayMismatch,
		DiscrepancyKindNetPayMismatch,
		DiscrepancyKindRegularHoursMismatch,
		DiscrepancyKindOvertimeHoursMismatch,
		DiscrepancyKindSSSDeductionMismatch,
		DiscrepancyKindPhilHealthDeductionMismatch,
		DiscrepancyKindPagIBIGDeductionMismatch,
	}
	for _, kind := range kinds {
		if !kind.IsValid() {
			t.Fatalf("kind %s has no category", kind)
		}
	}
	if DiscrepancyKind("BogusMismatch").IsValid() {
		t.Fatal("unknown kind must not be valid")
	}
}

func TestScopeIncludes(t *testing.T) {
	for _, category := range ReconciliationCategories {
		if !ReconciliationScopeAll.Includes(category) {
			t.Fatalf("All must include %s", category)
		}
	}
	if !ReconciliationScopePayroll.Includes(ReconciliationCategoryPayroll) {
		t.Fatal("Payroll scope must include the payroll category")
	}
	if ReconciliationScopePayroll.Includes(ReconciliationCategoryDeductions) {
		t.Fatal("Payroll scope must not include deductions")
	}
}

func TestParseReconciliationScope(t *testing.T) {
	cases := map[string]ReconciliationScope{
		"All":        ReconciliationScopeAll,
		"all":        ReconciliationScopeAll,
		"payroll":    ReconciliationScopePayroll,
		"Attendance": ReconciliationScopeAttendance,
		"deductions": ReconciliationScopeDeductions,
	}
	for raw, want := range cases {
		got, err := ParseReconciliationScope(raw)
		if err != nil || got != want {
			t.Fatalf("ParseReconciliationScope(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := ParseReconciliationScope("everything"); err == nil {
		t.Fatal("unknown scope must not parse")
	}
}

func TestResolutionStatusTerminality(t *testing.T) {
	if ResolutionStatusPending.IsTerminal() {
		t.Fatal("Pending is not terminal")
	}
	if !ResolutionStatusResolved.IsTerminal() || !ResolutionStatusIgnored.IsTerminal() {
		t.Fatal("Resolved and Ignored are terminal")
	}
}
