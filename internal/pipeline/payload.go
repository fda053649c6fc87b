package pipeline

// Order types accepted by the remote API.
const OrderTypeRegular = "Regular"

// Fulfillment type stamped on consignment items.
const FulfillmentTypeFBA = "FBA"

// OrderLineItem is the single line item embedded in an order payload,
// joined from the resolved product variant and its bin mapping.
type OrderLineItem struct {
	ProductID             string         `json:"productId"`
	FormFactor            string         `json:"formFactor"`
	Quantity              int            `json:"quantity"`
	LotID                 string         `json:"lotId"`
	NestedFormFactorID    string         `json:"nestedFormFactorId"`
	MarketplaceAttributes map[string]any `json:"marketplaceAttributes"`
	Attributes            map[string]any `json:"attributes"`
	FnSKU                 string         `json:"fnSku"`
	SKU                   string         `json:"sku"`
	Name                  string         `json:"name"`
}

// OrderPayload is the variables object for the saveOrder mutation.
type OrderPayload struct {
	Warehouse             string           `json:"warehouse"`
	Customer              string           `json:"customer"`
	WarehouseToBeSelected bool             `json:"warehouseToBeSelected"`
	CustomerToBeSelected  bool             `json:"customerToBeSelected"`
	ToValidAddress        bool             `json:"toValidAddress"`
	OrderID               string           `json:"orderId"`
	OrderLineItems        []OrderLineItem  `json:"orderLineItems"`
	ShippingAddress       *ShippingAddress `json:"shippingAddress"`
	Carrier               string           `json:"carrier"`
	InsuranceRequired     bool             `json:"insuranceRequired"`
	OrderDate             int64            `json:"orderDate"`
	OrderType             string           `json:"orderType"`
}

// FormFactorQuantity is a form-factor breakdown entry on a consignment item.
type FormFactorQuantity struct {
	FormFactor string `json:"formFactor"`
	Quantity   int    `json:"quantity"`
}

// ConsignmentItem is a single entry of a consignment payload's items array.
type ConsignmentItem struct {
	ProductID       string               `json:"productId"`
	FulfillmentType string               `json:"fulfillmentType"`
	ASIN            string               `json:"asin"`
	SellerSKU       string               `json:"sellerSku"`
	SKU             string               `json:"sku"`
	Name            string               `json:"name"`
	FnSKU           string               `json:"fnSku"`
	LotID           string               `json:"lotId"`
	Quantity        int                  `json:"quantity"`
	FormFactors     []FormFactorQuantity `json:"formFactors"`
}

// ConsignmentPayload is the variables object for the saveConsignment
// mutation. Dropship fields are layered on only for dropship consignments.
type ConsignmentPayload struct {
	Warehouse         string            `json:"warehouse"`
	Customer          string            `json:"customer"`
	ConsignmentNumber string            `json:"consignmentNumber"`
	Supplier          string            `json:"supplier"`
	TrackingNumber    string            `json:"trackingNumber"`
	Carrier           string            `json:"carrier"`
	ConsignmentDate   int64             `json:"consignmentDate"`
	OrderChannel      string            `json:"orderChannel"`
	Items             []ConsignmentItem `json:"items"`
	Dropship          *DropshipData     `json:"dropship,omitempty"`
}

// BuildOrderPayload joins a validated order record against its resolved
// catalog documents to produce the saveOrder variables.
func BuildOrderPayload(rec *Record) *OrderPayload {
	var lotID, nestedFormFactor string
	if rec.BinMapping != nil {
		lotID = rec.BinMapping.LotID
		nestedFormFactor = rec.BinMapping.NestedFormFactor
	}
	if rec.LotID != "" {
		lotID = rec.LotID
	}

	item := OrderLineItem{
		ProductID:             rec.Variant.ProductID,
		FormFactor:            rec.FormFactor,
		Quantity:              rec.Quantity,
		LotID:                 lotID,
		NestedFormFactorID:    nestedFormFactor,
		MarketplaceAttributes: rec.Variant.MarketplaceAttributes,
		Attributes:            rec.Variant.Attributes,
		FnSKU:                 rec.Variant.FnSKU,
		SKU:                   rec.Variant.SKU,
		Name:                  rec.Variant.Name,
	}

	address := rec.Address
	if address == nil {
		address = &ShippingAddress{}
	}

	return &OrderPayload{
		Warehouse:             rec.Warehouse.ID.Hex(),
		Customer:              rec.Customer.ID.Hex(),
		WarehouseToBeSelected: true,
		CustomerToBeSelected:  true,
		ToValidAddress:        rec.ValidateAddress,
		OrderID:               rec.OrderID,
		OrderLineItems:        []OrderLineItem{item},
		ShippingAddress:       address,
		Carrier:               rec.Carrier,
		InsuranceRequired:     rec.Insurance,
		OrderDate:             rec.Date,
		OrderType:             OrderTypeRegular,
	}
}

// BuildConsignmentPayload joins a validated consignment record against its
// resolved catalog documents to produce the saveConsignment variables. A
// consignment with no explicit form factor falls back to the bin mapping's.
func BuildConsignmentPayload(rec *Record) *ConsignmentPayload {
	var lotID string
	formFactor := rec.FormFactor
	if rec.BinMapping != nil {
		lotID = rec.BinMapping.LotID
		if formFactor == "" {
			formFactor = rec.BinMapping.FormFactor
		}
	}

	item := ConsignmentItem{
		ProductID:       rec.Variant.ProductID,
		FulfillmentType: FulfillmentTypeFBA,
		ASIN:            rec.Variant.ASIN(),
		SellerSKU:       rec.Variant.SKU,
		SKU:             rec.Variant.SKU,
		Name:            rec.Variant.Name,
		FnSKU:           rec.Variant.FnSKU,
		LotID:           lotID,
		Quantity:        rec.Quantity,
		FormFactors: []FormFactorQuantity{
			{FormFactor: formFactor, Quantity: rec.Quantity},
		},
	}

	channel := ChannelStandard
	if rec.Dropship != nil {
		channel = ChannelDropship
	}

	return &ConsignmentPayload{
		Warehouse:         rec.Warehouse.ID.Hex(),
		Customer:          rec.Customer.ID.Hex(),
		ConsignmentNumber: rec.ConsignmentNumber,
		Supplier:          rec.Supplier,
		TrackingNumber:    rec.TrackingNumber,
		Carrier:           rec.Carrier,
		ConsignmentDate:   rec.Date,
		OrderChannel:      channel,
		Items:             []ConsignmentItem{item},
		Dropship:          rec.Dropship,
	}
}
