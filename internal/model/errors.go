package model

import "fmt"

// SingleChangeErrorType enumerates the domain error taxonomy of a single
// change, per the specification's error-handling design.
type SingleChangeErrorType string

const (
	ErrInvalidInputField      SingleChangeErrorType = "InvalidInputFieldError"
	ErrInvalidTTL             SingleChangeErrorType = "InvalidTTL"
	ErrInvalidDomainName      SingleChangeErrorType = "InvalidDomainName"
	ErrInvalidIPAddress       SingleChangeErrorType = "InvalidIPAddress"
	ErrZoneDiscovery          SingleChangeErrorType = "ZoneDiscoveryError"
	ErrRecordAlreadyExists    SingleChangeErrorType = "RecordAlreadyExists"
	ErrRecordDoesNotExist     SingleChangeErrorType = "RecordDoesNotExist"
	ErrCnameIsNotUnique       SingleChangeErrorType = "CnameIsNotUniqueError"
	ErrUserIsNotAuthorized    SingleChangeErrorType = "UserIsNotAuthorized"
	ErrNotApprovedNameServer  SingleChangeErrorType = "NotApprovedNameServer"
	ErrHighValueDomain        SingleChangeErrorType = "HighValueDomainError"
	ErrRecordNameNotUniqueInBatch SingleChangeErrorType = "RecordNameNotUniqueInBatch"
)

// SingleChangeError is a typed failure attached to one input position.
type SingleChangeError struct {
	Type    SingleChangeErrorType
	Subject string // the field name, record name, or nameserver implicated
	Reason  string // human-readable detail, e.g. for InvalidInputFieldError
}

func (e SingleChangeError) Error() string {
	switch e.Type {
	case ErrInvalidInputField:
		return fmt.Sprintf("Invalid value for field %q: %s", e.Subject, e.Reason)
	case ErrZoneDiscovery:
		return fmt.Sprintf("No zone found for %q", e.Subject)
	case ErrRecordAlreadyExists:
		return fmt.Sprintf("Record %q already exists", e.Subject)
	case ErrRecordDoesNotExist:
		return fmt.Sprintf("Record %q does not exist", e.Subject)
	case ErrUserIsNotAuthorized:
		return fmt.Sprintf("User is not authorized to change %q", e.Subject)
	case ErrNotApprovedNameServer:
		return fmt.Sprintf("Name server %q is not approved", e.Subject)
	case ErrHighValueDomain:
		return fmt.Sprintf("%q is configured as a high-value domain and cannot be changed via batch", e.Subject)
	case ErrRecordNameNotUniqueInBatch:
		return fmt.Sprintf("Record %q is not unique in this batch", e.Subject)
	case ErrCnameIsNotUnique:
		return fmt.Sprintf("CNAME %q is not unique at this name", e.Subject)
	default:
		if e.Reason != "" {
			return fmt.Sprintf("%s: %s", e.Type, e.Reason)
		}
		return string(e.Type)
	}
}

// NewZoneDiscoveryError builds a ZoneDiscoveryError for name.
func NewZoneDiscoveryError(name string) SingleChangeError {
	return SingleChangeError{Type: ErrZoneDiscovery, Subject: name}
}

// NewRecordAlreadyExists builds a RecordAlreadyExists error for name.
func NewRecordAlreadyExists(name string) SingleChangeError {
	return SingleChangeError{Type: ErrRecordAlreadyExists, Subject: name}
}

// NewRecordDoesNotExist builds a RecordDoesNotExist error for name.
func NewRecordDoesNotExist(name string) SingleChangeError {
	return SingleChangeError{Type: ErrRecordDoesNotExist, Subject: name}
}

// NewInvalidInputField builds an InvalidInputFieldError.
func NewInvalidInputField(field, reason string) SingleChangeError {
	return SingleChangeError{Type: ErrInvalidInputField, Subject: field, Reason: reason}
}

// NewUserIsNotAuthorized builds a UserIsNotAuthorized error for the zone
// or record name the principal lacked permission for.
func NewUserIsNotAuthorized(name string) SingleChangeError {
	return SingleChangeError{Type: ErrUserIsNotAuthorized, Subject: name}
}

// NewNotApprovedNameServer builds a NotApprovedNameServer error for ns.
func NewNotApprovedNameServer(ns string) SingleChangeError {
	return SingleChangeError{Type: ErrNotApprovedNameServer, Subject: ns}
}

// NewHighValueDomainError builds a HighValueDomainError for name.
func NewHighValueDomainError(name string) SingleChangeError {
	return SingleChangeError{Type: ErrHighValueDomain, Subject: name}
}

// NewRecordNameNotUniqueInBatch builds a RecordNameNotUniqueInBatch error.
func NewRecordNameNotUniqueInBatch(name string) SingleChangeError {
	return SingleChangeError{Type: ErrRecordNameNotUniqueInBatch, Subject: name}
}

// NewCnameIsNotUnique builds a CnameIsNotUniqueError for name.
func NewCnameIsNotUnique(name string) SingleChangeError {
	return SingleChangeError{Type: ErrCnameIsNotUnique, Subject: name}
}

// BatchError is a batch-level precondition failure — distinct from the
// accumulated per-change errors, these abort intake immediately.
type BatchError struct {
	Code    string
	Message string
}

func (e BatchError) Error() string { return e.Message }

// BatchChangeIsEmpty is returned when a BatchChangeInput has zero changes.
func BatchChangeIsEmpty() BatchError {
	return BatchError{Code: "BatchChangeIsEmpty", Message: "Batch change contained no changes"}
}

// BatchChangeIsTooLarge is returned when a BatchChangeInput exceeds limit.
func BatchChangeIsTooLarge(limit int) BatchError {
	return BatchError{
		Code:    "BatchChangeIsTooLarge",
		Message: fmt.Sprintf("Batch change contains more than %d changes", limit),
	}
}

// BatchChangeNotFound is returned when a lookup by id finds nothing.
func BatchChangeNotFound(id string) BatchError {
	return BatchError{Code: "BatchChangeNotFound", Message: fmt.Sprintf("Batch change with id %q cannot be found", id)}
}

// UserNotAuthorizedToView is returned when a caller tries to read a batch
// change they did not create and are not an administrator for.
func UserNotAuthorizedToView() BatchError {
	return BatchError{Code: "UserNotAuthorizedToView", Message: "User does not have access to this batch change"}
}
