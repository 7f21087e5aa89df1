package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type RunResult struct {
	Count         int                         `json:"count"`
	CorrelationId string                      `json:"correlation_id"`
	Records       []*models.DiscrepancyRecord `json:"records"`
}

// RunReconciliation executes the selected detectors for one period and
// persists every candidate in a single transaction: either the full batch is
// durably recorded or nothing is, so a failed run can be retried safely.
//
// Detectors run in declared order (payroll, attendance, deductions) and each
// preserves its input row order, so a run over unchanged data produces an
// identically ordered batch.
func RunReconciliation(ctx context.Context, logger *logrus.Logger, periodId int, scope models.ReconciliationScope) (*RunResult, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: invalid reconciliation scope %q", utils.ErrorValidation, scope)
	}

	ctx, span := otel.Tracer("payroll/reconciliation").Start(ctx, "RunReconciliation")
	span.SetAttributes(attribute.Int("period.id", periodId), attribute.String("scope", string(scope)))
	defer span.End()

	// Serialize runs for the same period across instances. Without Redis this
	// is a no-op; the transaction below still guarantees no partial batch.
	release, err := utils.ObtainPeriodLock(ctx, periodId, "reconciliationWorkflow.go", "RunReconciliation")
	if err != nil {
		return nil, err
	}
	defer release()

	period, err := models.GetPayrollPeriodById(ctx, periodId)
	if err != nil {
		return nil, err
	}

	correlationId, ok := utils.GetCorrelationIdFromContext(ctx)
	if !ok || correlationId == "" {
		correlationId = uuid.NewString()
		ctx = utils.SetCorrelationIdInContext(ctx, correlationId)
	}

	employees, err := models.GetAllEmployees(ctx)
	if err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "RunReconciliation", "Querying employees", periodId, err)
		return nil, err
	}
	employeeMap := models.EmployeeMap(employees)

	entries, err := models.GetPayrollEntriesForPeriod(ctx, periodId)
	if err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "RunReconciliation", "Querying payroll entries", periodId, err)
		return nil, err
	}

	var candidates []*models.DiscrepancyRecord

	if scope.Includes(models.ReconciliationCategoryPayroll) {
		candidates = append(candidates, DetectPayDiscrepancies(entries, employeeMap)...)
	}

	if scope.Includes(models.ReconciliationCategoryAttendance) {
		attendance, err := models.GetCompletedAttendanceInRange(ctx, period.StartDate, period.EndDate)
		if err != nil {
			config.LogError(logger, "reconciliationWorkflow.go", "RunReconciliation", "Querying attendance records", periodId, err)
			return nil, err
		}
		candidates = append(candidates, DetectAttendanceDiscrepancies(employees, attendance, entries)...)
	}

	if scope.Includes(models.ReconciliationCategoryDeductions) {
		rates, err := models.GetRateSettings(ctx)
		if err != nil {
			config.LogError(logger, "reconciliationWorkflow.go", "RunReconciliation", "Loading rate settings", periodId, err)
			return nil, err
		}
		candidates = append(candidates, DetectDeductionDiscrepancies(entries, rates, employeeMap)...)
	}

	for _, candidate := range candidates {
		candidate.PeriodId = periodId
		candidate.CorrelationId = correlationId
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return models.CreateDiscrepancyBatch(tx, candidates)
	})
	if err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "RunReconciliation", "Persisting discrepancy batch", periodId, err)
		return nil, err
	}

	if logger != nil {
		userId, _ := utils.GetUserIdFromContext(ctx)
		userName, _ := utils.GetUserNameFromContext(ctx)
		logger.WithFields(logrus.Fields{
			"module":         "ReconciliationRunner",
			"period_id":      periodId,
			"scope":          scope,
			"correlation_id": correlationId,
			"user_id":        userId,
			"user_name":      userName,
			"entries":        len(entries),
			"discrepancies":  len(candidates),
		}).Info("reconciliation run completed")
	}

	return &RunResult{
		Count:         len(candidates),
		CorrelationId: correlationId,
		Records:       candidates,
	}, nil
}

type ResultsSummary struct {
	Total      int                                   `json:"total"`
	Pending    int                                   `json:"pending"`
	Resolved   int                                   `json:"resolved"`
	Ignored    int                                   `json:"ignored"`
	ByCategory map[models.ReconciliationCategory]int `json:"by_category"`
}

type GroupedDiscrepancies struct {
	Category models.ReconciliationCategory `json:"category"`
	Records  []*models.DiscrepancyRecord   `json:"records"`
}

type ReconciliationResults struct {
	Period  *models.PayrollPeriod  `json:"period"`
	Summary ResultsSummary         `json:"summary"`
	Groups  []GroupedDiscrepancies `json:"groups"`
}

// GetReconciliationResults returns a period's discrepancies, optionally
// filtered, with counts and records grouped by category in detector order.
// An empty result set is not an error: the period exists, nothing matched.
func GetReconciliationResults(ctx context.Context, periodId int, status *models.ResolutionStatus, category *models.ReconciliationCategory) (*ReconciliationResults, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid resolution status %q", utils.ErrorValidation, *status)
	}
	if category != nil && !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid reconciliation category %q", utils.ErrorValidation, *category)
	}

	period, err := models.GetPayrollPeriodById(ctx, periodId)
	if err != nil {
		return nil, err
	}

	records, err := models.GetDiscrepanciesForPeriod(ctx, periodId, status, category)
	if err != nil {
		return nil, err
	}

	summary := ResultsSummary{
		Total:      len(records),
		ByCategory: make(map[models.ReconciliationCategory]int),
	}
	byCategory := make(map[models.ReconciliationCategory][]*models.DiscrepancyRecord)
	for _, record := range records {
		summary.ByCategory[record.Category]++
		byCategory[record.Category] = append(byCategory[record.Category], record)
		switch record.Status {
		case models.ResolutionStatusPending:
			summary.Pending++
		case models.ResolutionStatusResolved:
			summary.Resolved++
		case models.ResolutionStatusIgnored:
			summary.Ignored++
		}
	}

	groups := make([]GroupedDiscrepancies, 0, len(models.ReconciliationCategories))
	for _, c := range models.ReconciliationCategories {
		if categoryRecords, ok := byCategory[c]; ok {
			groups = append(groups, GroupedDiscrepancies{Category: c, Records: categoryRecords})
		}
	}

	return &ReconciliationResults{
		Period:  period,
		Summary: summary,
		Groups:  groups,
	}, nil
}
