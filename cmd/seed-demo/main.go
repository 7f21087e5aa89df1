package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

// Seeds a small period with deliberately inconsistent data so a follow-up
// reconcile-run produces discrepancies in all three categories.
func main() {
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := context.Background()
	seeded, err := utils.ResourceCountWhere[models.Employee](ctx, "employee_number IN ?", []string{"EMP-0001", "EMP-0002"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "checking for existing demo data: %v\n", err)
		os.Exit(1)
	}
	if seeded > 0 {
		fmt.Println("demo employees already present, nothing to seed")
		return
	}

	active := true
	employees := []models.Employee{
		{
			EmployeeNumber: "EMP-0001",
			FirstName:      "Maria",
			LastName:       "Santos",
			Department:     "Operations",
			PayType:        models.PayTypeHourly,
			HourlyRate:     decimal.NewFromInt(100),
			IsActive:       &active,
		},
		{
			EmployeeNumber: "EMP-0002",
			FirstName:      "Jose",
			LastName:       "Reyes",
			Department:     "Finance",
			PayType:        models.PayTypeSalary,
			SalaryAmount:   decimal.NewFromInt(520000),
			IsActive:       &active,
		},
	}
	if err := db.Create(&employees).Error; err != nil {
		fmt.Fprintf(os.Stderr, "seeding employees: %v\n", err)
		os.Exit(1)
	}

	start := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	period := models.PayrollPeriod{
		Label:     "2026-08 first half",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 13),
		PayDate:   start.AddDate(0, 0, 15),
		Status:    models.PeriodStatusOpen,
	}
	if err := db.Create(&period).Error; err != nil {
		fmt.Fprintf(os.Stderr, "seeding period: %v\n", err)
		os.Exit(1)
	}

	entries := []models.PayrollEntry{
		{
			// Hourly entry underpaid by 300: expected 80*100 + 4*100*1.5 = 8600.
			EmployeeId:          employees[0].ID,
			PeriodId:            period.ID,
			PayType:             models.PayTypeHourly,
			HourlyRate:          decimal.NewFromInt(100),
			HoursWorked:         decimal.NewFromInt(80),
			OvertimeHours:       decimal.NewFromInt(4),
			BasicPay:            decimal.NewFromInt(8000),
			GrossPay:            decimal.NewFromInt(8300),
			SSSDeduction:        decimal.RequireFromString("360"),
			PhilHealthDeduction: decimal.RequireFromString("220"),
			PagIBIGDeduction:    decimal.RequireFromString("160"),
			TotalDeductions:     decimal.RequireFromString("740"),
			NetPay:              decimal.RequireFromString("7560"),
		},
		{
			// Salary entry: consistent gross (520000/26 = 20000) but SSS off.
			EmployeeId:          employees[1].ID,
			PeriodId:            period.ID,
			PayType:             models.PayTypeSalary,
			SalaryAmount:        decimal.NewFromInt(520000),
			BasicPay:            decimal.NewFromInt(20000),
			GrossPay:            decimal.NewFromInt(20000),
			SSSDeduction:        decimal.RequireFromString("850"),
			PhilHealthDeduction: decimal.RequireFromString("550"),
			PagIBIGDeduction:    decimal.RequireFromString("400"),
			TotalDeductions:     decimal.RequireFromString("1800"),
			NetPay:              decimal.RequireFromString("18200"),
		},
	}
	if err := db.Create(&entries).Error; err != nil {
		fmt.Fprintf(os.Stderr, "seeding payroll entries: %v\n", err)
		os.Exit(1)
	}

	// Ten 8h days plus one 4h overtime day; totals disagree with the first
	// entry's recorded hours by a full day.
	var attendance []models.AttendanceRecord
	for day := 0; day < 11; day++ {
		rec := models.AttendanceRecord{
			EmployeeId:   employees[0].ID,
			WorkDate:     start.AddDate(0, 0, day),
			RegularHours: decimal.NewFromInt(8),
			Status:       models.AttendanceStatusCompleted,
		}
		if day == 10 {
			rec.RegularHours = decimal.Zero
			rec.OvertimeHours = decimal.NewFromInt(4)
			rec.Status = models.AttendanceStatusIncomplete
		}
		attendance = append(attendance, rec)
	}
	if err := db.Create(&attendance).Error; err != nil {
		fmt.Fprintf(os.Stderr, "seeding attendance: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded period id=%d with %d employees, %d entries, %d attendance records\n",
		period.ID, len(employees), len(entries), len(attendance))
	fmt.Printf("next: go run ./cmd/reconcile-run -period-id %d -scope All -skip-redis\n", period.ID)
}
