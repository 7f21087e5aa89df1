package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"github.com/shopspring/decimal"
)

// Employee is owned by the HR subsystem; the engine only reads it.
type Employee struct {
	ID             int             `gorm:"primary_key" json:"id"`
	EmployeeNumber string          `gorm:"size:50;uniqueIndex;not null" json:"employee_number"`
	FirstName      string          `gorm:"size:100;not null" json:"first_name"`
	LastName       string          `gorm:"size:100;not null" json:"last_name"`
	Department     string          `gorm:"size:100;index" json:"department"`
	PayType        PayType         `gorm:"type:enum('Hourly','Salary');not null" json:"pay_type"`
	HourlyRate     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"hourly_rate"`
	SalaryAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"salary_amount"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) Active() bool {
	return e.IsActive != nil && *e.IsActive
}

// GetAllEmployees returns every employee ordered by id; callers filter on
// the active flag where the check requires it.
func GetAllEmployees(ctx context.Context) ([]Employee, error) {
	db := config.GetDB()
	var employees []Employee
	if err := db.WithContext(ctx).Order("id").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func EmployeeMap(employees []Employee) map[int]Employee {
	m := make(map[int]Employee, len(employees))
	for _, e := range employees {
		m[e.ID] = e
	}
	return m
}
