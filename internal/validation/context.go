package validation

import (
	"github.com/hydrabatch/hydrabatch/internal/authz"
	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/repo"
)

// ValidateContext runs C5 over every successfully zone-discovered change,
// checking it against the current record-set inventory, the principal's
// zone permissions, and the DNS-specific rules (approved nameservers,
// high-value domains). Positions that failed zone discovery (and so
// never reached ChangeForValidation) are passed through untouched.
//
// ValidateContext is deliberately a pure function of its arguments (law
// L3's sibling for this stage): existing is a point-in-time snapshot
// taken once per request, never mutated or re-fetched mid-validation.
func ValidateContext(
	cfg *config.Config,
	principal authz.Principal,
	discovered model.ValidatedBatch[model.ChangeForValidation],
	existing repo.ExistingRecordSets,
) model.ValidatedBatch[model.ChangeForValidation] {
	return model.MapValidatedBatch(discovered, func(_ int, c model.ChangeForValidation) model.ValidationResult[model.ChangeForValidation] {
		var errs []model.SingleChangeError

		if !authz.CanModifyZone(principal, c.Zone, c.RelativeName, c.Input.Type) {
			errs = append(errs, model.NewUserIsNotAuthorized(c.Zone.Name))
		}

		if cfg.IsHighValueDomain(c.Input.InputName) {
			errs = append(errs, model.NewHighValueDomainError(c.Input.InputName))
		}

		if c.Input.Type == model.RecordTypeNS && c.Input.ChangeType == model.ChangeTypeAdd {
			if !cfg.IsApprovedNameServer(c.Input.Record.NSDName) {
				errs = append(errs, model.NewNotApprovedNameServer(c.Input.Record.NSDName))
			}
		}

		errs = append(errs, checkRecordSetState(c, existing)...)

		if len(errs) > 0 {
			return model.Invalid[model.ChangeForValidation](errs...)
		}
		return model.Valid(c)
	})
}

func checkRecordSetState(c model.ChangeForValidation, existing repo.ExistingRecordSets) []model.SingleChangeError {
	var errs []model.SingleChangeError

	displayName := recordDisplayName(c)

	switch c.Input.ChangeType {
	case model.ChangeTypeAdd:
		if _, exists := existing.GetRecordSet(c.Zone.ID, c.RelativeName, c.Input.Type); exists {
			errs = append(errs, model.NewRecordAlreadyExists(displayName))
		}

		anyAtName := existing.GetRecordSetsByName(c.Zone.ID, c.RelativeName)
		if c.Input.Type == model.RecordTypeCNAME {
			if len(anyAtName) > 0 {
				errs = append(errs, model.NewCnameIsNotUnique(displayName))
			}
		} else {
			for _, rs := range anyAtName {
				if rs.Type == model.RecordTypeCNAME {
					errs = append(errs, model.NewCnameIsNotUnique(displayName))
					break
				}
			}
		}

	case model.ChangeTypeDeleteRecordSet:
		if _, exists := existing.GetRecordSet(c.Zone.ID, c.RelativeName, c.Input.Type); !exists {
			errs = append(errs, model.NewRecordDoesNotExist(displayName))
		}
	}

	return errs
}

func recordDisplayName(c model.ChangeForValidation) string {
	if c.RelativeName == "" {
		return c.Zone.Name
	}
	return c.RelativeName + "." + c.Zone.Name
}
