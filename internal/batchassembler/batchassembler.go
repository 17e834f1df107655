// Package batchassembler implements C6: turning a fully contextually
// validated batch into either a persistable BatchChange, or, if any
// position failed anywhere upstream, an InvalidBatchChangeResponses that
// interleaves the original inputs with their accumulated errors.
package batchassembler

import (
	"time"

	"github.com/google/uuid"

	"github.com/hydrabatch/hydrabatch/internal/model"
)

// Assemble builds the persistable entity from a validated batch, or
// reports every position's accumulated errors if any position failed.
// Nothing is persisted here — Assemble is pure, matching §4.6's "nothing
// is persisted in the failure path" by construction rather than by
// caller discipline.
func Assemble(
	validated model.ValidatedBatch[model.ChangeForValidation],
	originalInputs []model.ChangeInput,
	userID, userName, comments string,
) (model.BatchChange, *model.InvalidBatchChangeResponses) {
	if !validated.IsValid() {
		return model.BatchChange{}, buildInvalidResponse(validated, originalInputs, comments)
	}

	changes := make([]model.SingleChange, len(validated.Results))
	for i, r := range validated.Results {
		cfv, _ := r.Value()
		changes[i] = model.SingleChange{
			Input:        cfv.Input,
			ZoneID:       cfv.Zone.ID,
			ZoneName:     cfv.Zone.Name,
			RelativeName: cfv.RelativeName,
			Status:       model.SingleChangeStatusPending,
		}
	}

	return model.BatchChange{
		ID:               uuid.New().String(),
		UserID:           userID,
		UserName:         userName,
		Comments:         comments,
		CreatedTimestamp: time.Now().UTC(),
		Changes:          changes,
		Status:           model.BatchChangeStatusPending,
	}, nil
}

func buildInvalidResponse(
	validated model.ValidatedBatch[model.ChangeForValidation],
	originalInputs []model.ChangeInput,
	comments string,
) *model.InvalidBatchChangeResponses {
	changes := make([]model.InvalidChangeResponse, len(validated.Results))
	for i, r := range validated.Results {
		var errs []string
		for _, e := range r.Errors() {
			errs = append(errs, e.Error())
		}
		changes[i] = model.InvalidChangeResponse{Input: originalInputs[i], Errors: errs}
	}
	return &model.InvalidBatchChangeResponses{Comments: comments, Changes: changes}
}
