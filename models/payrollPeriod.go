package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"gorm.io/gorm"
)

// PayrollPeriod identifies one pay cycle. Owned by the payroll subsystem;
// the engine only reads it.
type PayrollPeriod struct {
	ID        int          `gorm:"primary_key" json:"id"`
	Label     string       `gorm:"size:100;not null" json:"label"`
	StartDate time.Time    `gorm:"index;not null" json:"start_date"`
	EndDate   time.Time    `gorm:"not null" json:"end_date"`
	PayDate   time.Time    `gorm:"not null" json:"pay_date"`
	Status    PeriodStatus `gorm:"type:enum('Open','Processing','Closed','Paid');not null;default:'Open'" json:"status"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetPayrollPeriodById(ctx context.Context, periodId int) (*PayrollPeriod, error) {
	db := config.GetDB()
	var period PayrollPeriod
	if err := db.WithContext(ctx).Where("id = ?", periodId).First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorPeriodNotFound
		}
		return nil, err
	}
	return &period, nil
}
