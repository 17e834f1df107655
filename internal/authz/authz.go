// Package authz resolves whether an authenticated principal may act on a
// zone or view a batch change. It is deliberately thin: real directory
// lookups, group membership, and credential handling are external
// collaborators per §1 of the specification; this package only encodes
// the decision the core needs from them.
package authz

import (
	"strings"

	"github.com/hydrabatch/hydrabatch/internal/model"
)

// Principal is the authenticated caller of a batch operation.
type Principal struct {
	UserID    string
	UserName  string
	GroupIDs  []string
	IsAdmin   bool
}

// InGroup reports whether p belongs to groupID.
func (p Principal) InGroup(groupID string) bool {
	for _, g := range p.GroupIDs {
		if g == groupID {
			return true
		}
	}
	return false
}

// CanModifyZone reports whether p has at least AccessWrite on name within
// zone's access control list. Access is granted if any rule that matches
// the principal (by user or by group), name (RecordMask) and recordType
// carries at least AccessWrite; rule order does not matter, and a
// matching rule with a lower level does not deny. Administrators bypass
// ACL evaluation entirely.
func CanModifyZone(p Principal, zone model.Zone, name string, recordType model.RecordType) bool {
	if p.IsAdmin {
		return true
	}
	for _, rule := range zone.AccessControl.Rules {
		if !matchesPrincipal(p, rule) {
			continue
		}
		if !matchesMask(rule.RecordMask, name) {
			continue
		}
		if !matchesType(rule.RecordTypes, recordType) {
			continue
		}
		if rule.Level >= model.AccessWrite {
			return true
		}
	}
	return false
}

// CanViewBatchChange reports whether p may read a batch change owned by
// ownerUserID.
func CanViewBatchChange(p Principal, ownerUserID string) bool {
	return p.IsAdmin || p.UserID == ownerUserID
}

func matchesPrincipal(p Principal, rule model.ACLRule) bool {
	switch {
	case rule.UserID != "":
		return rule.UserID == p.UserID
	case rule.GroupID != "":
		return p.InGroup(rule.GroupID)
	default:
		return false
	}
}

func matchesMask(mask, name string) bool {
	if mask == "" || mask == "*" {
		return true
	}
	if strings.HasPrefix(mask, "*") {
		return strings.HasSuffix(name, strings.TrimPrefix(mask, "*"))
	}
	return mask == name
}

func matchesType(types []model.RecordType, t model.RecordType) bool {
	if len(types) == 0 {
		return true
	}
	for _, rt := range types {
		if rt == t {
			return true
		}
	}
	return false
}
