// Package pipeline turns an extracted raw field set into a validated,
// cross-referenced record and its remote submission payload.
package pipeline

import "strings"

// Document field keys shared by both document types. Keys are the exact
// strings the extraction service is instructed to emit.
const (
	FieldWarehouse  = "Warehouse Name/Code"
	FieldCustomer   = "Customer Name/Code"
	FieldSKU        = "Product SKU"
	FieldQuantity   = "Quantity"
	FieldCarrier    = "Carrier"
	FieldFormFactor = "Form Factor"

	FieldAddressName    = "Shipping Address (name)"
	FieldAddressEmail   = "Shipping Address (email)"
	FieldAddressPhone   = "Shipping Address (phone)"
	FieldAddressLine1   = "Shipping Address (line1)"
	FieldAddressLine2   = "Shipping Address (line2)"
	FieldAddressCity    = "Shipping Address (city)"
	FieldAddressState   = "Shipping Address (state)"
	FieldAddressCountry = "Shipping Address (country)"
	FieldAddressZip     = "Shipping Address (zip)"
)

// Order-only field keys.
const (
	FieldOrderDate       = "Order Date"
	FieldOrderID         = "Order ID"
	FieldInsurance       = "Insurance Required"
	FieldLotID           = "Product Lot/Batch ID"
	FieldValidateAddress = "Validate Address"
)

// Consignment-only field keys.
const (
	FieldConsignmentDate   = "Consignment Date"
	FieldConsignmentNumber = "Consignment Number"
	FieldSupplier          = "Supplier/Vendor"
	FieldTrackingNumber    = "Tracking Number"
	FieldOrderChannel      = "Standard/Dropship"
	FieldDropshipType      = "Dropship Type"
	FieldIsCase            = "Is Case"
	FieldPerCaseQuantity   = "Per Case Quantity"
	FieldNumberOfCases     = "Number of Cases"
	FieldLabelSource       = "Label Source"
	FieldLabelURL          = "Label URL"
)

var addressFields = []string{
	FieldAddressName, FieldAddressEmail, FieldAddressPhone,
	FieldAddressLine1, FieldAddressLine2, FieldAddressCity,
	FieldAddressState, FieldAddressCountry, FieldAddressZip,
}

var orderMandatory = []string{
	FieldWarehouse,
	FieldCustomer,
	FieldSKU,
	FieldQuantity,
}

var orderOptional = append([]string{
	FieldOrderDate,
	FieldOrderID,
	FieldCarrier,
	FieldFormFactor,
	FieldInsurance,
	FieldLotID,
}, append(append([]string{}, addressFields...), FieldValidateAddress)...)

var consignmentMandatory = []string{
	FieldWarehouse,
	FieldCustomer,
	FieldSKU,
	FieldQuantity,
	FieldOrderChannel,
}

var consignmentOptional = append([]string{
	FieldConsignmentDate,
	FieldConsignmentNumber,
	FieldSupplier,
	FieldFormFactor,
	FieldCarrier,
	FieldTrackingNumber,
	FieldDropshipType,
	FieldIsCase,
	FieldPerCaseQuantity,
	FieldNumberOfCases,
	FieldLabelSource,
	FieldLabelURL,
}, addressFields...)

// MandatoryFields returns the mandatory extraction keys for a document type.
func MandatoryFields(t DocumentType) []string {
	if t == DocConsignment {
		return consignmentMandatory
	}
	return orderMandatory
}

// OptionalFields returns the optional extraction keys for a document type.
func OptionalFields(t DocumentType) []string {
	if t == DocConsignment {
		return consignmentOptional
	}
	return orderOptional
}

// DeclaredFields returns every extraction key for a document type,
// mandatory first.
func DeclaredFields(t DocumentType) []string {
	return append(append([]string{}, MandatoryFields(t)...), OptionalFields(t)...)
}

// RawFieldSet is the flat field mapping produced by extraction. Values may
// be empty; an empty mandatory value is a validation failure, not an
// extraction failure.
type RawFieldSet map[string]string

// Get returns the trimmed value for a key, or "" if the key is absent.
func (r RawFieldSet) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Has reports whether a key carries a non-empty value.
func (r RawFieldSet) Has(key string) bool {
	return r.Get(key) != ""
}

// MissingKeys returns the declared keys that are absent from the set.
// Keys present with empty values are not missing.
func (r RawFieldSet) MissingKeys(declared []string) []string {
	var missing []string
	for _, key := range declared {
		if _, ok := r[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
