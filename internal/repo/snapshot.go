package repo

import (
	"strings"

	"github.com/hydrabatch/hydrabatch/internal/dnsname"
	"github.com/hydrabatch/hydrabatch/internal/model"
)

// ExistingZones is a read-through, point-in-time snapshot of the zones
// relevant to one intake request. Its lifetime is the intake call: it is
// built once by zone discovery's batched fetch and never shared across
// requests (§5, "each request owns its ExistingZones... they are never
// shared").
type ExistingZones struct {
	byName   map[string]model.Zone // lowercased, dot-terminated name -> zone
	all      []model.Zone
}

// NewExistingZones builds an ExistingZones snapshot from the union of two
// batched fetches (exact-name and filter), commutatively joined — the
// order the two queries return in has no bearing on the result.
func NewExistingZones(zones ...[]model.Zone) ExistingZones {
	e := ExistingZones{byName: make(map[string]model.Zone)}
	for _, batch := range zones {
		for _, z := range batch {
			key := strings.ToLower(dnsname.Fqdn(z.Name))
			if _, dup := e.byName[key]; dup {
				continue
			}
			e.byName[key] = z
			e.all = append(e.all, z)
		}
	}
	return e
}

// GetByName returns the zone with exactly this name, if present.
func (e ExistingZones) GetByName(name string) (model.Zone, bool) {
	z, ok := e.byName[strings.ToLower(dnsname.Fqdn(name))]
	return z, ok
}

// GetIPv4PtrMatches returns every known zone that is a classful or
// classless IPv4 reverse zone actually covering ip, per dnsname.PtrIsInZone.
func (e ExistingZones) GetIPv4PtrMatches(ip string) []model.Zone {
	classfulName, err := dnsname.GetIPv4NonDelegatedZoneName(ip)
	if err != nil {
		return nil
	}
	var out []model.Zone
	for _, z := range e.all {
		if !strings.Contains(strings.ToLower(z.Name), strings.ToLower(classfulName)) {
			continue
		}
		ok, err := dnsname.PtrIsInZone(ip, z.Name)
		if err != nil || !ok {
			continue
		}
		out = append(out, z)
	}
	return out
}

// GetIPv6PtrMatches returns every known zone whose name is one of ip's
// nibble-boundary reverse-zone candidates.
func (e ExistingZones) GetIPv6PtrMatches(ip string) []model.Zone {
	suffixes, err := dnsname.IPv6ReverseCandidateSuffixes(ip)
	if err != nil {
		return nil
	}
	set := make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		set[strings.ToLower(s)] = true
	}
	var out []model.Zone
	for _, z := range e.all {
		if set[strings.ToLower(dnsname.Fqdn(z.Name))] {
			out = append(out, z)
		}
	}
	return out
}

// All returns every zone in the snapshot, for callers (the converter)
// that need the full set rather than a targeted lookup.
func (e ExistingZones) All() []model.Zone { return e.all }

// ExistingRecordSets is a read-through snapshot of record sets keyed by
// (zoneID, relativeName), built once per intake request from the
// deduplicated set of names that successfully resolved a zone.
type ExistingRecordSets struct {
	byNameKey map[string][]model.RecordSet // zoneID+"\x00"+relativeName -> record sets of all types at that name
}

// NewExistingRecordSets flattens the per-(zoneID,name) fetch results into
// one snapshot.
func NewExistingRecordSets(fetched map[model.RecordSetKey][]model.RecordSet) ExistingRecordSets {
	e := ExistingRecordSets{byNameKey: make(map[string][]model.RecordSet)}
	for key, rsets := range fetched {
		e.byNameKey[nameKey(key.ZoneID, key.Name)] = rsets
	}
	return e
}

// GetRecordSetsByName returns every record set (any type) at (zoneID, name).
func (e ExistingRecordSets) GetRecordSetsByName(zoneID, name string) []model.RecordSet {
	return e.byNameKey[nameKey(zoneID, name)]
}

// GetRecordSet returns the record set of the given type at (zoneID, name),
// if one exists.
func (e ExistingRecordSets) GetRecordSet(zoneID, name string, t model.RecordType) (model.RecordSet, bool) {
	for _, rs := range e.byNameKey[nameKey(zoneID, name)] {
		if rs.Type == t {
			return rs, true
		}
	}
	return model.RecordSet{}, false
}

func nameKey(zoneID, name string) string {
	return zoneID + "\x00" + strings.ToLower(name)
}
