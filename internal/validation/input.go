// Package validation implements C3 (per-change input validation) and C5
// (contextual validation against discovered zones and existing record
// sets). Both stages accumulate errors rather than short-circuit: every
// rule that fails on a change is appended to that position's error list,
// and sibling positions are evaluated independently in full.
package validation

import (
	"fmt"
	"strings"

	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/dnsname"
	"github.com/hydrabatch/hydrabatch/internal/model"
)

// ValidateInput runs C3 over every change in input, independent of
// external state, and returns a position-aligned ValidatedBatch.
//
// ValidateInput is idempotent (law L2): running it twice over the same
// input, or over the ChangeInput recovered from a prior Valid result,
// produces the same verdict.
func ValidateInput(cfg *config.Config, changes []model.ChangeInput) model.ValidatedBatch[model.ChangeInput] {
	results := make([]model.ValidationResult[model.ChangeInput], len(changes))
	for i, c := range changes {
		results[i] = validateOne(cfg, c)
	}
	return model.NewValidatedBatch(results)
}

func validateOne(cfg *config.Config, c model.ChangeInput) model.ValidationResult[model.ChangeInput] {
	var errs []model.SingleChangeError

	switch c.ChangeType {
	case model.ChangeTypeAdd, model.ChangeTypeDeleteRecordSet:
	default:
		errs = append(errs, model.NewInvalidInputField("changeType", fmt.Sprintf("unknown change type %q", c.ChangeType)))
	}

	if c.Type.IsPTR() {
		if !dnsname.ValidateIPv4Address(c.InputName) && !dnsname.ValidateIPv6Address(c.InputName) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidIPAddress, Subject: c.InputName})
		}
	} else {
		if !dnsname.IsValidFQDN(c.InputName) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidDomainName, Subject: c.InputName})
		}
	}

	if c.ChangeType == model.ChangeTypeAdd {
		if c.TTL == nil {
			errs = append(errs, model.NewInvalidInputField("ttl", "ttl is required for Add changes"))
		} else if *c.TTL < cfg.Batch.MinTTL || *c.TTL > cfg.Batch.MaxTTL {
			errs = append(errs, model.SingleChangeError{
				Type:    model.ErrInvalidTTL,
				Subject: "ttl",
				Reason:  fmt.Sprintf("ttl %d must be between %d and %d", *c.TTL, cfg.Batch.MinTTL, cfg.Batch.MaxTTL),
			})
		}
		errs = append(errs, validateRecordPayload(c)...)
	}

	if len(errs) > 0 {
		return model.Invalid[model.ChangeInput](errs...)
	}
	return model.Valid(c)
}

func validateRecordPayload(c model.ChangeInput) []model.SingleChangeError {
	var errs []model.SingleChangeError

	switch c.Type {
	case model.RecordTypeA:
		if !dnsname.ValidateIPv4Address(c.Record.Address) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidIPAddress, Subject: c.Record.Address})
		}
	case model.RecordTypeAAAA:
		if !dnsname.ValidateIPv6Address(c.Record.Address) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidIPAddress, Subject: c.Record.Address})
		}
	case model.RecordTypeCNAME:
		if !dnsname.IsValidFQDN(c.Record.CName) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidDomainName, Subject: c.Record.CName})
		}
	case model.RecordTypePTR:
		if !dnsname.IsValidFQDN(c.Record.PTRDName) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidDomainName, Subject: c.Record.PTRDName})
		}
	case model.RecordTypeTXT:
		if len(c.Record.Text) > 64000 {
			errs = append(errs, model.NewInvalidInputField("record.text", "text exceeds maximum length of 64000 characters"))
		}
	case model.RecordTypeMX:
		if c.Record.MXPref == nil || *c.Record.MXPref < 0 || *c.Record.MXPref > 65535 {
			errs = append(errs, model.NewInvalidInputField("record.preference", "preference must be between 0 and 65535"))
		}
		if !dnsname.IsValidFQDN(c.Record.MXExch) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidDomainName, Subject: c.Record.MXExch})
		}
	case model.RecordTypeNS:
		if !dnsname.IsValidFQDN(c.Record.NSDName) {
			errs = append(errs, model.SingleChangeError{Type: model.ErrInvalidDomainName, Subject: c.Record.NSDName})
		}
	default:
		errs = append(errs, model.NewInvalidInputField("type", fmt.Sprintf("unsupported record type %q", c.Type)))
	}

	return errs
}

// CheckRecordNameNotUniqueInBatch scans already-input-validated changes for
// duplicate (name, type) Add pairs and attaches RecordNameNotUniqueInBatch
// to every position sharing a duplicate — not just the second occurrence —
// matching scenario 5 of §8 ("batch rejected... on both positions").
//
// This runs after ValidateInput but needs no zone or record-set state, so
// it is exposed separately for the orchestrator to compose as it sees fit.
func CheckRecordNameNotUniqueInBatch(batch model.ValidatedBatch[model.ChangeInput]) model.ValidatedBatch[model.ChangeInput] {
	type key struct {
		name string
		typ  model.RecordType
	}
	positions := make(map[key][]int)
	for i, r := range batch.Results {
		c, ok := r.Value()
		if !ok || c.ChangeType != model.ChangeTypeAdd {
			continue
		}
		k := key{name: strings.ToLower(dnsname.Fqdn(c.InputName)), typ: c.Type}
		positions[k] = append(positions[k], i)
	}

	results := append([]model.ValidationResult[model.ChangeInput]{}, batch.Results...)
	for k, idxs := range positions {
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs {
			results[i] = results[i].WithErrors(model.NewRecordNameNotUniqueInBatch(k.name))
		}
	}
	return model.ValidatedBatch[model.ChangeInput]{Results: results}
}
