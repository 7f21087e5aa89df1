package models

import (
	"log"

	"bitbucket.org/mmdatafocus/payroll_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Employee{},
		&PayrollPeriod{}, &PayrollEntry{},
		&AttendanceRecord{},
		&RateSetting{},
		&DiscrepancyRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
