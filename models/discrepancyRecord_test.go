package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/shopspring/decimal"
)

func TestNewDiscrepancyDerivesVarianceAndCategory(t *testing.T) {
	record := NewDiscrepancy(7, DiscrepancyKindSSSDeductionMismatch,
		decimal.RequireFromString("900"), decimal.RequireFromString("850"), "off by 50")

	if !record.Variance.Equal(decimal.RequireFromString("-50")) {
		t.Fatalf("variance must be actual minus expected, got %s", record.Variance)
	}
	if record.Category != ReconciliationCategoryDeductions {
		t.Fatalf("category must follow the kind, got %s", record.Category)
	}
	if record.Status != ResolutionStatusPending {
		t.Fatalf("new records start pending, got %s", record.Status)
	}
}

func TestCorrelationLookupRequiresId(t *testing.T) {
	_, err := GetDiscrepanciesByCorrelation(context.Background(), "")
	if !errors.Is(err, utils.ErrorValidation) {
		t.Fatalf("empty correlation id must fail validation, got %v", err)
	}
}
