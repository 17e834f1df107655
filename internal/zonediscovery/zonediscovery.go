// Package zonediscovery implements C4: mapping each validated change to
// its authoritative zone using the candidate-name computation and
// reverse-zone rules from §4.4 of the specification.
package zonediscovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hydrabatch/hydrabatch/internal/dnsname"
	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/repo"
)

// Discover builds an ExistingZones snapshot from one batched fetch and
// then resolves a zone for every Valid position in input, in order.
// Positions that were already Invalid pass through untouched; a failed
// per-change discovery becomes Invalid at that position without aborting
// the batch — only a repository/transport error aborts the whole call.
//
// Discover's per-change resolution (resolveOne) is a pure function of
// (ChangeInput, ExistingZones) per law L3; only the batched fetch itself
// performs I/O.
func Discover(
	ctx context.Context,
	zones repo.ZoneRepository,
	input model.ValidatedBatch[model.ChangeInput],
) (model.ValidatedBatch[model.ChangeForValidation], repo.ExistingZones, error) {
	names, filters := candidateNames(input)

	exactZones, filterZones, err := fetchConcurrently(ctx, zones, names, filters)
	if err != nil {
		return model.ValidatedBatch[model.ChangeForValidation]{}, repo.ExistingZones{}, fmt.Errorf("zonediscovery: %w", err)
	}

	existing := repo.NewExistingZones(exactZones, filterZones)

	result := model.MapValidatedBatch(input, func(_ int, c model.ChangeInput) model.ValidationResult[model.ChangeForValidation] {
		return resolveOne(c, existing)
	})

	return result, existing, nil
}

// candidateNames partitions input per §4.4 step 1-3 and computes the
// exact-name candidates (non-PTR, IPv6 PTR) and filter candidates (IPv4
// PTR), deduplicated.
func candidateNames(input model.ValidatedBatch[model.ChangeInput]) (names []string, filters []string) {
	nameSet := make(map[string]bool)
	filterSet := make(map[string]bool)

	for _, r := range input.Results {
		c, ok := r.Value()
		if !ok {
			continue
		}

		switch {
		case c.Type.IsPTR() && dnsname.ValidateIPv4Address(c.InputName):
			if classful, err := dnsname.GetIPv4NonDelegatedZoneName(c.InputName); err == nil {
				filterSet[classful] = true
			}

		case c.Type.IsPTR() && dnsname.ValidateIPv6Address(c.InputName):
			if suffixes, err := dnsname.IPv6ReverseCandidateSuffixes(c.InputName); err == nil {
				for _, s := range suffixes {
					nameSet[s] = true
				}
			}

		default:
			fqdn := dnsname.Fqdn(c.InputName)
			nameSet[fqdn] = true
			if parent := dnsname.GetZoneFromNonApexFqdn(fqdn); parent != "" {
				nameSet[parent] = true
			}
		}
	}

	return setToSlice(nameSet), setToSlice(filterSet)
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out) // deterministic fetch order; result join is still commutative
	return out
}

// fetchConcurrently issues the exact-name and filter zone lookups in
// parallel, per §5's "two zone-lookup queries... run concurrently".
// Whichever fails first cancels the other and returns its error.
func fetchConcurrently(ctx context.Context, zones repo.ZoneRepository, names, filters []string) ([]model.Zone, []model.Zone, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type fetchResult struct {
		zones []model.Zone
		err   error
	}
	exactCh := make(chan fetchResult, 1)
	filterCh := make(chan fetchResult, 1)

	go func() {
		z, err := zones.GetZonesByNames(ctx, names)
		exactCh <- fetchResult{z, err}
	}()
	go func() {
		z, err := zones.GetZonesByFilters(ctx, filters)
		filterCh <- fetchResult{z, err}
	}()

	var exact, filter fetchResult
	for received := 0; received < 2; received++ {
		select {
		case exact = <-exactCh:
			if exact.err != nil {
				cancel()
				return nil, nil, exact.err
			}
		case filter = <-filterCh:
			if filter.err != nil {
				cancel()
				return nil, nil, filter.err
			}
		}
	}
	return exact.zones, filter.zones, nil
}

// resolveOne applies §4.4's per-type resolution rules against an already
// assembled ExistingZones snapshot.
func resolveOne(c model.ChangeInput, existing repo.ExistingZones) model.ValidationResult[model.ChangeForValidation] {
	switch {
	case c.Type == model.RecordTypeCNAME:
		return resolveCNAME(c, existing)
	case c.Type.IsPTR():
		if dnsname.ValidateIPv4Address(c.InputName) {
			return resolveIPv4PTR(c, existing)
		}
		return resolveIPv6PTR(c, existing)
	default:
		return resolveStandard(c, existing)
	}
}

// resolveStandard handles A/AAAA/TXT/MX/NS: prefer an apex match,
// otherwise the non-apex parent.
func resolveStandard(c model.ChangeInput, existing repo.ExistingZones) model.ValidationResult[model.ChangeForValidation] {
	fqdn := dnsname.Fqdn(c.InputName)

	if zone, ok := existing.GetByName(fqdn); ok {
		return model.Valid(model.ChangeForValidation{Input: c, Zone: zone, RelativeName: ""})
	}

	if parent := dnsname.GetZoneFromNonApexFqdn(fqdn); parent != "" {
		if zone, ok := existing.GetByName(parent); ok {
			return model.Valid(model.ChangeForValidation{
				Input:        c,
				Zone:         zone,
				RelativeName: dnsname.Relativize(fqdn, zone.Name),
			})
		}
	}

	return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(fqdn))
}

// resolveCNAME rejects an apex match outright (a CNAME at the zone apex
// collides with SOA/NS) and otherwise requires the non-apex parent zone.
func resolveCNAME(c model.ChangeInput, existing repo.ExistingZones) model.ValidationResult[model.ChangeForValidation] {
	fqdn := dnsname.Fqdn(c.InputName)

	if _, ok := existing.GetByName(fqdn); ok {
		return model.Invalid[model.ChangeForValidation](model.NewRecordAlreadyExists(fqdn))
	}

	parent := dnsname.GetZoneFromNonApexFqdn(fqdn)
	if parent == "" {
		return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(fqdn))
	}
	zone, ok := existing.GetByName(parent)
	if !ok {
		return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(fqdn))
	}
	return model.Valid(model.ChangeForValidation{
		Input:        c,
		Zone:         zone,
		RelativeName: dnsname.Relativize(fqdn, zone.Name),
	})
}

// resolveIPv4PTR collects every zone whose classful filter matches and
// which actually covers the IP, preferring a classless delegation and,
// among several, the one with the longest name (§9's determinism
// resolution of the source's under-specified "any zone with a /" rule).
func resolveIPv4PTR(c model.ChangeInput, existing repo.ExistingZones) model.ValidationResult[model.ChangeForValidation] {
	matches := existing.GetIPv4PtrMatches(c.InputName)
	if len(matches) == 0 {
		return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(c.InputName))
	}

	zone := pickMostSpecificIPv4Zone(matches)
	recordName, err := dnsname.GetIPv4PtrRecordName(c.InputName)
	if err != nil {
		return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(c.InputName))
	}

	return model.Valid(model.ChangeForValidation{Input: c, Zone: zone, RelativeName: recordName})
}

// pickMostSpecificIPv4Zone prefers a classless ("/"-embedding) zone name
// over a classful one, and among classless zones prefers the longest
// name. Name length is the only tie-break: the CIDR prefix inside the
// name is not compared, so overlapping delegations whose names have the
// same length (such as "0/25" and "0/26") resolve to whichever comes
// first in zones.
func pickMostSpecificIPv4Zone(zones []model.Zone) model.Zone {
	best := zones[0]
	for _, z := range zones[1:] {
		if classlessRank(z) > classlessRank(best) {
			best = z
			continue
		}
		if classlessRank(z) == classlessRank(best) && len(z.Name) > len(best.Name) {
			best = z
		}
	}
	return best
}

func classlessRank(z model.Zone) int {
	if dnsname.IsClasslessZoneName(z.Name) {
		return 1
	}
	return 0
}

// resolveIPv6PTR picks the candidate zone with the longest name (the
// most-specific delegation) among those matching a reverse-name suffix.
func resolveIPv6PTR(c model.ChangeInput, existing repo.ExistingZones) model.ValidationResult[model.ChangeForValidation] {
	matches := existing.GetIPv6PtrMatches(c.InputName)
	if len(matches) == 0 {
		return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(c.InputName))
	}

	zone := matches[0]
	for _, z := range matches[1:] {
		if len(z.Name) > len(zone.Name) {
			zone = z
		}
	}

	full, err := dnsname.GetIPv6FullReverseName(c.InputName)
	if err != nil {
		return model.Invalid[model.ChangeForValidation](model.NewZoneDiscoveryError(c.InputName))
	}
	relativeName := dnsname.Relativize(full, zone.Name)
	relativeName = strings.TrimSuffix(relativeName, ".")

	return model.Valid(model.ChangeForValidation{Input: c, Zone: zone, RelativeName: relativeName})
}
