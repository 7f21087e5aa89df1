package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"github.com/shopspring/decimal"
)

// PayrollEntry is one employee's recorded pay for one period. It is an
// immutable input to the engine; detectors recompute against it but never
// mutate it.
type PayrollEntry struct {
	ID           int     `gorm:"primary_key" json:"id"`
	EmployeeId   int     `gorm:"index;not null" json:"employee_id"`
	PeriodId     int     `gorm:"index;not null" json:"period_id"`
	PayType      PayType `gorm:"type:enum('Hourly','Salary');not null" json:"pay_type"`

	HourlyRate   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"hourly_rate"`
	SalaryAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"salary_amount"`

	HoursWorked   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"hours_worked"`
	OvertimeHours decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"overtime_hours"`

	BasicPay decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"basic_pay"`
	GrossPay decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gross_pay"`

	SSSDeduction        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sss_deduction"`
	PhilHealthDeduction decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"philhealth_deduction"`
	PagIBIGDeduction    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"pagibig_deduction"`
	WithholdingTax      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"withholding_tax"`
	OtherDeductions     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"other_deductions"`
	TotalDeductions     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_deductions"`

	NetPay decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"net_pay"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetPayrollEntriesForPeriod returns the period's entries in stable row
// order, so repeated runs over unchanged data emit identically ordered
// discrepancy batches.
func GetPayrollEntriesForPeriod(ctx context.Context, periodId int) ([]PayrollEntry, error) {
	db := config.GetDB()
	var entries []PayrollEntry
	if err := db.WithContext(ctx).Where("period_id = ?", periodId).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func PayrollEntryMapByEmployee(entries []PayrollEntry) map[int]PayrollEntry {
	m := make(map[int]PayrollEntry, len(entries))
	for _, e := range entries {
		m[e.EmployeeId] = e
	}
	return m
}
