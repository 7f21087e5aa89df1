package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

const topOffendersLimit = 10

type PeriodSummaryRow struct {
	PeriodId         int             `json:"period_id"`
	Label            string          `json:"label"`
	StartDate        time.Time       `json:"start_date"`
	Total            int             `json:"total"`
	Pending          int             `json:"pending"`
	Resolved         int             `json:"resolved"`
	TotalAbsVariance decimal.Decimal `json:"total_abs_variance"`
}

type TypeBreakdownRow struct {
	Category        models.ReconciliationCategory `json:"category"`
	Kind            models.DiscrepancyKind        `json:"kind"`
	Count           int                           `json:"count"`
	MeanAbsVariance decimal.Decimal               `json:"mean_abs_variance"`
}

type TopOffenderRow struct {
	EmployeeId       int             `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	Department       string          `json:"department"`
	PendingCount     int             `json:"pending_count"`
	TotalAbsVariance decimal.Decimal `json:"total_abs_variance"`
}

type Dashboard struct {
	PeriodSummary []*PeriodSummaryRow `json:"period_summary"`
	TypeBreakdown []*TypeBreakdownRow `json:"type_breakdown"`
	TopOffenders  []*TopOffenderRow   `json:"top_offenders"`
}

// DashboardSourceRow is one discrepancy joined with its employee, the shared
// input all three dashboard views are built from.
type DashboardSourceRow struct {
	PeriodId   int                           `gorm:"column:period_id"`
	EmployeeId int                           `gorm:"column:employee_id"`
	Category   models.ReconciliationCategory `gorm:"column:category"`
	Kind       models.DiscrepancyKind        `gorm:"column:kind"`
	Status     models.ResolutionStatus       `gorm:"column:status"`
	Variance   decimal.Decimal               `gorm:"column:variance"`
	FirstName  string                        `gorm:"column:first_name"`
	LastName   string                        `gorm:"column:last_name"`
	Department string                        `gorm:"column:department"`
}

// GetReconciliationDashboard summarizes discrepancy records for periods
// whose start date falls inside the lookback window, optionally restricted
// to one department. One joined query fetches the source rows; the three
// views are built in memory. Read-only.
func GetReconciliationDashboard(ctx context.Context, windowDays int, department *string) (*Dashboard, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: windowDays must be positive, got %d", utils.ErrorValidation, windowDays)
	}
	since := utils.StartOfDayUTC(time.Now().UTC().AddDate(0, 0, -windowDays))

	periods, err := queryWindowPeriods(ctx, since)
	if err != nil {
		return nil, err
	}
	rows, err := queryDashboardRows(ctx, since)
	if err != nil {
		return nil, err
	}
	if department != nil {
		rows = filterRowsByDepartment(rows, *department)
	}

	return &Dashboard{
		PeriodSummary: BuildPeriodSummary(periods, rows),
		TypeBreakdown: BuildTypeBreakdown(rows),
		TopOffenders:  RankTopOffenders(rows, topOffendersLimit),
	}, nil
}

func queryWindowPeriods(ctx context.Context, since time.Time) ([]models.PayrollPeriod, error) {
	db := config.GetDB()
	var periods []models.PayrollPeriod
	err := db.WithContext(ctx).
		Where("start_date >= ?", since).
		Order("start_date DESC, id DESC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func queryDashboardRows(ctx context.Context, since time.Time) ([]DashboardSourceRow, error) {
	db := config.GetDB()
	var rows []DashboardSourceRow
	err := db.WithContext(ctx).Table("discrepancy_records AS d").
		Select("d.period_id, d.employee_id, d.category, d.kind, d.status, d.variance, e.first_name, e.last_name, e.department").
		Joins("JOIN payroll_periods AS p ON p.id = d.period_id").
		Joins("JOIN employees AS e ON e.id = d.employee_id").
		Where("p.start_date >= ?", since).
		Order("d.employee_id, d.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func filterRowsByDepartment(rows []DashboardSourceRow, department string) []DashboardSourceRow {
	filtered := make([]DashboardSourceRow, 0, len(rows))
	for _, row := range rows {
		if row.Department == department {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// BuildPeriodSummary produces one row per period, in the given period order.
// Periods with no matching discrepancies keep zeroed counts, so a clean
// period still shows up on the dashboard.
func BuildPeriodSummary(periods []models.PayrollPeriod, rows []DashboardSourceRow) []*PeriodSummaryRow {
	summary := make([]*PeriodSummaryRow, 0, len(periods))
	byPeriod := make(map[int]*PeriodSummaryRow, len(periods))
	for _, period := range periods {
		row := &PeriodSummaryRow{
			PeriodId:  period.ID,
			Label:     period.Label,
			StartDate: period.StartDate,
		}
		summary = append(summary, row)
		byPeriod[period.ID] = row
	}

	for _, r := range rows {
		row, ok := byPeriod[r.PeriodId]
		if !ok {
			continue
		}
		row.Total++
		switch r.Status {
		case models.ResolutionStatusPending:
			row.Pending++
		case models.ResolutionStatusResolved:
			row.Resolved++
		}
		row.TotalAbsVariance = row.TotalAbsVariance.Add(r.Variance.Abs())
	}
	return summary
}

// BuildTypeBreakdown aggregates count and mean absolute variance per
// discrepancy kind, ordered by count descending with ties in detector
// category order, then kind.
func BuildTypeBreakdown(rows []DashboardSourceRow) []*TypeBreakdownRow {
	type kindAgg struct {
		row *TypeBreakdownRow
		sum decimal.Decimal
	}
	byKind := make(map[models.DiscrepancyKind]*kindAgg)
	var order []models.DiscrepancyKind
	for _, r := range rows {
		agg, ok := byKind[r.Kind]
		if !ok {
			agg = &kindAgg{row: &TypeBreakdownRow{Category: r.Category, Kind: r.Kind}}
			byKind[r.Kind] = agg
			order = append(order, r.Kind)
		}
		agg.row.Count++
		agg.sum = agg.sum.Add(r.Variance.Abs())
	}

	breakdown := make([]*TypeBreakdownRow, 0, len(order))
	for _, kind := range order {
		agg := byKind[kind]
		agg.row.MeanAbsVariance = agg.sum.Div(decimal.NewFromInt(int64(agg.row.Count)))
		breakdown = append(breakdown, agg.row)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		if breakdown[i].Category != breakdown[j].Category {
			return categoryRank(breakdown[i].Category) < categoryRank(breakdown[j].Category)
		}
		return breakdown[i].Kind < breakdown[j].Kind
	})
	return breakdown
}

func categoryRank(category models.ReconciliationCategory) int {
	for i, c := range models.ReconciliationCategories {
		if c == category {
			return i
		}
	}
	return len(models.ReconciliationCategories)
}

// RankTopOffenders ranks employees by pending discrepancy count descending,
// ties broken by summed absolute variance descending, then employee id for a
// stable result. Rows already resolved or ignored do not count.
func RankTopOffenders(rows []DashboardSourceRow, limit int) []*TopOffenderRow {
	byEmployee := make(map[int]*TopOffenderRow)
	var order []int
	for _, row := range rows {
		if row.Status != models.ResolutionStatusPending {
			continue
		}
		offender, ok := byEmployee[row.EmployeeId]
		if !ok {
			offender = &TopOffenderRow{
				EmployeeId:   row.EmployeeId,
				EmployeeName: row.FirstName + " " + row.LastName,
				Department:   row.Department,
			}
			byEmployee[row.EmployeeId] = offender
			order = append(order, row.EmployeeId)
		}
		offender.PendingCount++
		offender.TotalAbsVariance = offender.TotalAbsVariance.Add(row.Variance.Abs())
	}

	ranked := make([]*TopOffenderRow, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, byEmployee[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PendingCount != ranked[j].PendingCount {
			return ranked[i].PendingCount > ranked[j].PendingCount
		}
		if !ranked[i].TotalAbsVariance.Equal(ranked[j].TotalAbsVariance) {
			return ranked[i].TotalAbsVariance.GreaterThan(ranked[j].TotalAbsVariance)
		}
		return ranked[i].EmployeeId < ranked[j].EmployeeId
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
