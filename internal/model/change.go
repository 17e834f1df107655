// Package model defines the data types that flow through the batch change
// intake pipeline: the user-supplied input, the progressively enriched
// per-change records, and the persisted batch entity.
package model

import "time"

// ChangeType distinguishes an additive mutation from a removal.
type ChangeType string

const (
	ChangeTypeAdd             ChangeType = "Add"
	ChangeTypeDeleteRecordSet ChangeType = "DeleteRecordSet"
)

// RecordType is the DNS RR type a ChangeInput carries.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeMX    RecordType = "MX"
	RecordTypePTR   RecordType = "PTR"
	// RecordTypeNS is accepted by contextual validation (approved-nameserver
	// enforcement, §4.5) even though it is not part of the core six types
	// §3 enumerates for ChangeInput.Type; it exists so the nameserver-allow-
	// list rule has a record type to apply to.
	RecordTypeNS RecordType = "NS"
)

// IsPTR reports whether t is the PTR type.
func (t RecordType) IsPTR() bool { return t == RecordTypePTR }

// IsStandard reports whether t is one of the "normal" forward record
// types resolved by apex-or-parent zone lookup (A, AAAA, TXT, MX, NS) —
// i.e. every type except CNAME and PTR, which have their own discovery
// and contextual rules.
func (t RecordType) IsStandard() bool {
	switch t {
	case RecordTypeA, RecordTypeAAAA, RecordTypeTXT, RecordTypeMX, RecordTypeNS:
		return true
	default:
		return false
	}
}

// RecordData is the type-specific payload of a ChangeInput. Exactly the
// field matching Type is populated; the rest are zero values.
type RecordData struct {
	Address  string `json:"address,omitempty"`  // A / AAAA
	CName    string `json:"cname,omitempty"`     // CNAME target FQDN
	Text     string `json:"text,omitempty"`      // TXT
	PTRDName string `json:"ptrdname,omitempty"`  // PTR target FQDN
	MXPref   *int   `json:"preference,omitempty"`
	MXExch   string `json:"exchange,omitempty"`
	NSDName  string `json:"nsdname,omitempty"` // NS target FQDN
}

// ChangeInput is a single user-supplied DNS mutation.
type ChangeInput struct {
	InputName  string     `json:"inputName"`
	Type       RecordType `json:"type"`
	TTL        *int       `json:"ttl,omitempty"`
	Record     RecordData `json:"record"`
	ChangeType ChangeType `json:"changeType"`
}

// BatchChangeInput is the ordered request body of a batch-change submission.
type BatchChangeInput struct {
	Comments string        `json:"comments,omitempty"`
	Changes  []ChangeInput `json:"changes"`
}

// AccessLevel enumerates what a principal may do to a zone.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessRead
	AccessWrite
	AccessDelete
)

// AccessControl is the minimal zone ACL the core needs to decide
// UserIsNotAuthorized: a set of (userId or groupId) -> AccessLevel
// entries, evaluated by internal/authz. The entries themselves are
// opaque to the core; only internal/authz's interpretation matters.
type AccessControl struct {
	Rules []ACLRule
}

// ACLRule grants Level to the principal identified by either UserID or
// GroupID (exactly one is set) for records matching RecordMask: "*" or
// empty matches all relative names, a leading "*" matches by suffix, and
// anything else must equal the relative name exactly.
type ACLRule struct {
	UserID      string
	GroupID     string
	RecordMask  string
	RecordTypes []RecordType // empty means all types
	Level       AccessLevel
}

// Zone is the authoritative zone entity as read from zone storage.
type Zone struct {
	ID            string
	Name          string // canonical, dot-terminated
	AccessControl AccessControl
}

// RecordSet is an existing record set read from record-set storage.
type RecordSet struct {
	ZoneID  string
	Name    string // relative to ZoneID's zone
	Type    RecordType
	TTL     int
	Records []RecordData
}

// RecordSetKey identifies a record set within a zone by its (name, type) pair,
// which together with ZoneID is the uniqueness constraint from §3 of the
// specification.
type RecordSetKey struct {
	ZoneID string
	Name   string
	Type   RecordType
}

// ChangeForValidation is a ChangeInput enriched with its discovered Zone
// and the record's name relative to that zone. It only exists once zone
// discovery (C4) has succeeded for the change.
type ChangeForValidation struct {
	Input        ChangeInput
	Zone         Zone
	RelativeName string
}

// RecordKey returns the (zone, relative name, type) identity this change
// would occupy once applied.
func (c ChangeForValidation) RecordKey() RecordSetKey {
	return RecordSetKey{ZoneID: c.Zone.ID, Name: c.RelativeName, Type: c.Input.Type}
}

// SingleChange is a stored, accepted change inside a persisted BatchChange.
// It freezes the ChangeForValidation's resolved identity alongside the
// original input so the converter and change-processor never need to
// re-run discovery.
type SingleChange struct {
	Input        ChangeInput
	ZoneID       string
	ZoneName     string
	RelativeName string
	Status       SingleChangeStatus
}

// SingleChangeStatus tracks a stored change's lifecycle after acceptance;
// owned by the converter/change-processor, not by the intake pipeline.
type SingleChangeStatus string

const (
	SingleChangeStatusPending  SingleChangeStatus = "Pending"
	SingleChangeStatusComplete SingleChangeStatus = "Complete"
	SingleChangeStatusFailed   SingleChangeStatus = "Failed"
)

// BatchChangeStatus is the overall status of a persisted batch.
type BatchChangeStatus string

const (
	BatchChangeStatusPending        BatchChangeStatus = "PendingProcessing"
	BatchChangeStatusPartialFailure BatchChangeStatus = "PartialFailure"
	BatchChangeStatusComplete       BatchChangeStatus = "Complete"
	BatchChangeStatusFailed         BatchChangeStatus = "Failed"
)

// BatchChange is the persistent entity created by a successful intake.
type BatchChange struct {
	ID               string
	UserID           string
	UserName         string
	Comments         string
	CreatedTimestamp time.Time
	Changes          []SingleChange
	Status           BatchChangeStatus
}

// BatchChangeSummary is the condensed form returned by list operations.
type BatchChangeSummary struct {
	ID               string
	UserID           string
	UserName         string
	Comments         string
	CreatedTimestamp time.Time
	Status           BatchChangeStatus
	TotalChanges     int
}

// BatchChangeSummaryList is a page of summaries.
type BatchChangeSummaryList struct {
	Summaries   []BatchChangeSummary
	StartFrom   int
	NextID      *int
	MaxItems    int
}
