package pipeline

import (
	"github.com/jmallard/manifest/internal/refdata"
)

// ShippingAddress carries the destination address fields verbatim from
// extraction. Empty components are omitted from the submission payload.
type ShippingAddress struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// Empty reports whether no address component was supplied.
func (a ShippingAddress) Empty() bool {
	return a == ShippingAddress{}
}

// DropshipData holds the validated dropship sub-record of a consignment.
// Exactly one of the case fields or the label fields is populated,
// depending on the dropship type.
type DropshipData struct {
	Type            string           `json:"type"`
	IsCase          bool             `json:"isCase"`
	PerCaseQuantity int              `json:"perCaseQuantity,omitempty"`
	NumberOfCases   int              `json:"numberOfCases,omitempty"`
	LabelSource     string           `json:"labelSource,omitempty"`
	LabelURL        string           `json:"labelUrl,omitempty"`
	Address         *ShippingAddress `json:"address,omitempty"`
}

// Record is a fully validated document: every reference resolved against
// the catalog and every scalar field parsed to its canonical form. A
// Record is only ever produced when validation succeeds end to end.
type Record struct {
	Type     DocumentType
	Tenant   string
	Raw      RawFieldSet
	Original string

	Warehouse  *refdata.Warehouse
	Customer   *refdata.Customer
	Variant    *refdata.ProductVariant
	BinMapping *refdata.SkuBinMapping

	Date       int64
	Quantity   int
	FormFactor string
	Carrier    string

	OrderID         string
	LotID           string
	Insurance       bool
	ValidateAddress bool
	Address         *ShippingAddress

	ConsignmentNumber string
	Supplier          string
	TrackingNumber    string
	Dropship          *DropshipData
}
