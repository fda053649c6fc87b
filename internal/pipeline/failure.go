package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failure reasons surfaced verbatim to the operator.
const (
	ReasonWarehouseInvalid   = "Warehouse name/code not valid"
	ReasonWarehouseAmbiguous = "Warehouse name/code is ambiguous"
	ReasonCustomerInvalid    = "Customer name/code not valid"
	ReasonCustomerAmbiguous  = "Customer name/code is ambiguous"
	ReasonAccessDenied       = "Customer does not have access to this warehouse"
	ReasonDateInvalid        = "Date not valid"
	ReasonQuantityInvalid    = "Quantity not valid"
	ReasonSKUInvalid         = "SKU not valid"
	ReasonFormFactorInvalid  = "Form factor not valid"
	ReasonCarrierInvalid     = "Carrier not valid"
	ReasonInsuranceInvalid   = "Insurance required not valid"
	ReasonValidateInvalid    = "Validate address not valid"
	ReasonChannelInvalid     = "Standard/Dropship not valid"
)

// Failure is a tagged validation failure: the field that failed and the
// reason shown to the operator. It deliberately replaces the string
// sentinels of earlier revisions so a legitimate value can never be
// mistaken for an error.
type Failure struct {
	Field  string
	Reason string
}

func (f *Failure) Error() string {
	return f.Reason
}

// NewFailure creates a Failure for a field with the given reason.
func NewFailure(field, reason string) *Failure {
	return &Failure{Field: field, Reason: reason}
}

// DropshipFailure aggregates every missing or invalid dropship sub-field
// into a single failure, so the operator can correct the whole record in
// one pass.
func DropshipFailure(fields []string) *Failure {
	return &Failure{
		Field:  FieldDropshipType,
		Reason: fmt.Sprintf("Dropship data not valid: %s", strings.Join(fields, "; ")),
	}
}

// AsFailure extracts a *Failure from an error chain, if present.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
