package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscrepancyRecord is the engine's primary output: one detected mismatch
// between a recorded value and its recomputed expectation. Records are
// append-only. A detector run creates them; resolution transitions are the
// only mutation; nothing deletes them.
type DiscrepancyRecord struct {
	ID         int                    `gorm:"primary_key" json:"id"`
	PeriodId   int                    `gorm:"index;not null" json:"period_id"`
	Category   ReconciliationCategory `gorm:"size:20;index;not null" json:"category"`
	EmployeeId int                    `gorm:"index;not null" json:"employee_id"`
	Kind       DiscrepancyKind        `gorm:"size:50;index;not null" json:"kind"`

	ExpectedValue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"expected_value"`
	ActualValue   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"actual_value"`
	// Variance = actual - expected. Positive means the recorded value
	// overstates the expectation.
	Variance    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"variance"`
	Description string          `gorm:"type:text" json:"description"`

	Status         ResolutionStatus `gorm:"size:20;index;not null;default:'Pending'" json:"status"`
	ResolvedBy     int              `gorm:"default:0" json:"resolved_by"`
	ResolvedAt     *time.Time       `json:"resolved_at"`
	ResolutionNote string           `gorm:"type:text" json:"resolution_note"`

	CorrelationId string    `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NewDiscrepancy builds a pending record; variance is always derived, never
// passed in.
func NewDiscrepancy(employeeId int, kind DiscrepancyKind, expected decimal.Decimal, actual decimal.Decimal, description string) *DiscrepancyRecord {
	return &DiscrepancyRecord{
		Category:      kind.Category(),
		EmployeeId:    employeeId,
		Kind:          kind,
		ExpectedValue: expected,
		ActualValue:   actual,
		Variance:      actual.Sub(expected),
		Description:   description,
		Status:        ResolutionStatusPending,
	}
}

// CreateDiscrepancyBatch inserts all records within the given transaction.
// Callers wrap it in db.Transaction so a failed run leaves no partial batch.
func CreateDiscrepancyBatch(tx *gorm.DB, records []*DiscrepancyRecord) error {
	if len(records) == 0 {
		return nil
	}
	return tx.Create(&records).Error
}

// CanTransition validates a requested resolution transition against the
// record's current status. Target validity is checked before state.
func (r *DiscrepancyRecord) CanTransition(target ResolutionStatus) error {
	if !target.IsTerminal() {
		return fmt.Errorf("%w: target status must be Resolved or Ignored, got %q", utils.ErrorValidation, target)
	}
	if r.Status != ResolutionStatusPending {
		return utils.ErrorInvalidTransition
	}
	return nil
}

// ApplyResolutionTransition performs the guarded status update. The WHERE
// clause re-checks Pending so two concurrent resolvers cannot both win; the
// loser sees zero rows affected and gets ErrorInvalidTransition. Records are
// never deleted, so zero rows on an existing id always means "not pending".
func ApplyResolutionTransition(ctx context.Context, recordId int, target ResolutionStatus, resolverId int, note string) (*DiscrepancyRecord, error) {
	if !target.IsTerminal() {
		return nil, fmt.Errorf("%w: target status must be Resolved or Ignored, got %q", utils.ErrorValidation, target)
	}

	db := config.GetDB()
	var record DiscrepancyRecord
	if err := db.WithContext(ctx).Where("id = ?", recordId).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	res := db.WithContext(ctx).Model(&DiscrepancyRecord{}).
		Where("id = ? AND status = ?", recordId, ResolutionStatusPending).
		Updates(map[string]interface{}{
			"status":          target,
			"resolved_by":     resolverId,
			"resolved_at":     now,
			"resolution_note": note,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrorInvalidTransition
	}

	record.Status = target
	record.ResolvedBy = resolverId
	record.ResolvedAt = &now
	record.ResolutionNote = note
	return &record, nil
}

// GetDiscrepanciesForPeriod lists a period's records, optionally filtered by
// status and/or category, in insertion order.
func GetDiscrepanciesForPeriod(ctx context.Context, periodId int, status *ResolutionStatus, category *ReconciliationCategory) ([]*DiscrepancyRecord, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("period_id = ?", periodId)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if category != nil {
		dbCtx = dbCtx.Where("category = ?", *category)
	}
	var records []*DiscrepancyRecord
	if err := dbCtx.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetDiscrepanciesByCorrelation returns one run's batch.
func GetDiscrepanciesByCorrelation(ctx context.Context, correlationId string) ([]*DiscrepancyRecord, error) {
	if correlationId == "" {
		return nil, fmt.Errorf("%w: correlation id is required", utils.ErrorValidation)
	}
	db := config.GetDB()
	var records []*DiscrepancyRecord
	if err := db.WithContext(ctx).Where("correlation_id = ?", correlationId).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
