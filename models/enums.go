package models

import "errors"

type PayType string

const (
	PayTypeHourly PayType = "Hourly"
	PayTypeSalary PayType = "Salary"
)

func (t PayType) IsValid() bool {
	return t == PayTypeHourly || t == PayTypeSalary
}

type PeriodStatus string

const (
	PeriodStatusOpen       PeriodStatus = "Open"
	PeriodStatusProcessing PeriodStatus = "Processing"
	PeriodStatusClosed     PeriodStatus = "Closed"
	PeriodStatusPaid       PeriodStatus = "Paid"
)

type AttendanceStatus string

const (
	AttendanceStatusCompleted  AttendanceStatus = "Completed"
	AttendanceStatusIncomplete AttendanceStatus = "Incomplete"
	AttendanceStatusMissed     AttendanceStatus = "Missed"
)

type ReconciliationCategory string

const (
	ReconciliationCategoryPayroll    ReconciliationCategory = "Payroll"
	ReconciliationCategoryAttendance ReconciliationCategory = "Attendance"
	ReconciliationCategoryDeductions ReconciliationCategory = "Deductions"
)

func (c ReconciliationCategory) IsValid() bool {
	switch c {
	case ReconciliationCategoryPayroll, ReconciliationCategoryAttendance, ReconciliationCategoryDeductions:
		return true
	}
	return false
}

// ReconciliationCategories lists the categories in detector-declaration
// order. Run output and grouped results follow this order.
var ReconciliationCategories = []ReconciliationCategory{
	ReconciliationCategoryPayroll,
	ReconciliationCategoryAttendance,
	ReconciliationCategoryDeductions,
}

type DiscrepancyKind string

const (
	DiscrepancyKindGrossPayMismatch            DiscrepancyKind = "GrossPayMismatch"
	DiscrepancyKindNetPayMismatch              DiscrepancyKind = "NetPayMismatch"
	DiscrepancyKindRegularHoursMismatch        DiscrepancyKind = "RegularHoursMismatch"
	DiscrepancyKindOvertimeHoursMismatch       DiscrepancyKind = "OvertimeHoursMismatch"
	DiscrepancyKindSSSDeductionMismatch        DiscrepancyKind = "SSSDeductionMismatch"
	DiscrepancyKindPhilHealthDeductionMismatch DiscrepancyKind = "PhilHealthDeductionMismatch"
	DiscrepancyKindPagIBIGDeductionMismatch    DiscrepancyKind = "PagIBIGDeductionMismatch"
)

// Category returns the reconciliation category a kind belongs to. The kind
// set is closed; aggregation code switches on it exhaustively.
func (k DiscrepancyKind) Category() ReconciliationCategory {
	switch k {
	case DiscrepancyKindGrossPayMismatch, DiscrepancyKindNetPayMismatch:
		return ReconciliationCategoryPayroll
	case DiscrepancyKindRegularHoursMismatch, DiscrepancyKindOvertimeHoursMismatch:
		return ReconciliationCategoryAttendance
	case DiscrepancyKindSSSDeductionMismatch, DiscrepancyKindPhilHealthDeductionMismatch, DiscrepancyKindPagIBIGDeductionMismatch:
		return ReconciliationCategoryDeductions
	}
	return ""
}

func (k DiscrepancyKind) IsValid() bool {
	return k.Category() != ""
}

type ResolutionStatus string

const (
	ResolutionStatusPending  ResolutionStatus = "Pending"
	ResolutionStatusResolved ResolutionStatus = "Resolved"
	ResolutionStatusIgnored  ResolutionStatus = "Ignored"
)

func (s ResolutionStatus) IsValid() bool {
	switch s {
	case ResolutionStatusPending, ResolutionStatusResolved, ResolutionStatusIgnored:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s ResolutionStatus) IsTerminal() bool {
	return s == ResolutionStatusResolved || s == ResolutionStatusIgnored
}

type ReconciliationScope string

const (
	ReconciliationScopeAll        ReconciliationScope = "All"
	ReconciliationScopePayroll    ReconciliationScope = "Payroll"
	ReconciliationScopeAttendance ReconciliationScope = "Attendance"
	ReconciliationScopeDeductions ReconciliationScope = "Deductions"
)

func (s ReconciliationScope) IsValid() bool {
	switch s {
	case ReconciliationScopeAll, ReconciliationScopePayroll, ReconciliationScopeAttendance, ReconciliationScopeDeductions:
		return true
	}
	return false
}

// Includes reports whether the scope covers the given detector category.
func (s ReconciliationScope) Includes(c ReconciliationCategory) bool {
	if s == ReconciliationScopeAll {
		return true
	}
	return string(s) == string(c)
}

func ParseReconciliationScope(raw string) (ReconciliationScope, error) {
	switch raw {
	case "All", "all":
		return ReconciliationScopeAll, nil
	case "Payroll", "payroll":
		return ReconciliationScopePayroll, nil
	case "Attendance", "attendance":
		return ReconciliationScopeAttendance, nil
	case "Deductions", "deductions":
		return ReconciliationScopeDeductions, nil
	}
	return "", errors.New("invalid reconciliation scope")
}
