package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/payroll_backend/models"
	"bitbucket.org/mmdatafocus/payroll_backend/utils"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ResolutionInput struct {
	RecordId   int    `validate:"required,gt=0"`
	ResolverId int    `validate:"required,gt=0"`
	Note       string `validate:"max=2000"`
}

// ResolveDiscrepancy marks a pending record resolved, recording who, when
// and why. Fails with ErrorRecordNotFound for an unknown id and with
// ErrorInvalidTransition when the record already reached a terminal state,
// including a concurrent resolver winning the race first.
func ResolveDiscrepancy(ctx context.Context, input ResolutionInput) (*models.DiscrepancyRecord, error) {
	return applyResolution(ctx, input, models.ResolutionStatusResolved)
}

// IgnoreDiscrepancy marks a pending record ignored with the same metadata
// and the same guarantees as ResolveDiscrepancy.
func IgnoreDiscrepancy(ctx context.Context, input ResolutionInput) (*models.DiscrepancyRecord, error) {
	return applyResolution(ctx, input, models.ResolutionStatusIgnored)
}

func applyResolution(ctx context.Context, input ResolutionInput, target models.ResolutionStatus) (*models.DiscrepancyRecord, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrorValidation, err.Error())
	}
	return models.ApplyResolutionTransition(ctx, input.RecordId, target, input.ResolverId, input.Note)
}
