package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

// AttendanceRecord is one clocked session. Only Completed sessions are
// eligible for aggregation.
type AttendanceRecord struct {
	ID            int              `gorm:"primary_key" json:"id"`
	EmployeeId    int              `gorm:"index;not null" json:"employee_id"`
	WorkDate      time.Time        `gorm:"index;not null" json:"work_date"`
	RegularHours  decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"regular_hours"`
	OvertimeHours decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"overtime_hours"`
	Status        AttendanceStatus `gorm:"type:enum('Completed','Incomplete','Missed');not null;default:'Incomplete'" json:"status"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetCompletedAttendanceInRange returns Completed sessions whose work date
// falls inside [start, end], inclusive of both period boundary days.
func GetCompletedAttendanceInRange(ctx context.Context, start time.Time, end time.Time) ([]AttendanceRecord, error) {
	db := config.GetDB()
	var records []AttendanceRecord
	err := db.WithContext(ctx).
		Where("status = ? AND work_date >= ? AND work_date <= ?",
			AttendanceStatusCompleted, utils.StartOfDayUTC(start), utils.EndOfDayUTC(end)).
		Order("employee_id, work_date, id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
