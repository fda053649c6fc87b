package pipeline_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/refdata"
)

func validatedRecord(docType pipeline.DocumentType) *pipeline.Record {
	return &pipeline.Record{
		Type:   docType,
		Tenant: "tenant-1",
		Warehouse: &refdata.Warehouse{
			ID:   primitive.NewObjectID(),
			Name: "Main",
			Code: "W1",
		},
		Customer: &refdata.Customer{
			ID:   primitive.NewObjectID(),
			Name: "Acme",
			Code: "C1",
		},
		Variant: &refdata.ProductVariant{
			ID:        primitive.NewObjectID(),
			SKU:       "SKU-1",
			ProductID: "product-1",
			Name:      "Widget",
			FnSKU:     "FN-1",
			MarketplaceAttributes: map[string]any{
				"asin": "B000TEST01",
			},
		},
		BinMapping: &refdata.SkuBinMapping{
			LotID:            "LOT-9",
			FormFactor:       "Case",
			NestedFormFactor: "nested-1",
		},
		Date:       1750000000000,
		Quantity:   12,
		FormFactor: "Each",
		Carrier:    "UPS",
	}
}

func TestBuildOrderPayload(t *testing.T) {
	rec := validatedRecord(pipeline.DocOrder)
	rec.OrderID = "PO-7"
	rec.Insurance = true

	payload := pipeline.BuildOrderPayload(rec)

	if payload.Warehouse != rec.Warehouse.ID.Hex() {
		t.Errorf("Warehouse = %q, want %q", payload.Warehouse, rec.Warehouse.ID.Hex())
	}
	if payload.Customer != rec.Customer.ID.Hex() {
		t.Errorf("Customer = %q, want %q", payload.Customer, rec.Customer.ID.Hex())
	}
	if !payload.WarehouseToBeSelected || !payload.CustomerToBeSelected {
		t.Error("warehouse and customer selection flags should be set")
	}
	if payload.OrderType != pipeline.OrderTypeRegular {
		t.Errorf("OrderType = %q, want %q", payload.OrderType, pipeline.OrderTypeRegular)
	}
	if payload.OrderDate != rec.Date {
		t.Errorf("OrderDate = %d, want %d", payload.OrderDate, rec.Date)
	}
	if !payload.InsuranceRequired {
		t.Error("InsuranceRequired = false, want true")
	}
	if payload.ShippingAddress == nil {
		t.Error("ShippingAddress should never be nil")
	}

	if len(payload.OrderLineItems) != 1 {
		t.Fatalf("OrderLineItems len = %d, want 1", len(payload.OrderLineItems))
	}
	item := payload.OrderLineItems[0]
	if item.SKU != "SKU-1" || item.Quantity != 12 {
		t.Errorf("line item = %q x%d, want SKU-1 x12", item.SKU, item.Quantity)
	}
	if item.LotID != "LOT-9" {
		t.Errorf("LotID = %q, want bin mapping lot LOT-9", item.LotID)
	}
	if item.NestedFormFactorID != "nested-1" {
		t.Errorf("NestedFormFactorID = %q, want nested-1", item.NestedFormFactorID)
	}
}

func TestBuildOrderPayloadLotOverride(t *testing.T) {
	rec := validatedRecord(pipeline.DocOrder)
	rec.LotID = "LOT-EXPLICIT"

	payload := pipeline.BuildOrderPayload(rec)
	if got := payload.OrderLineItems[0].LotID; got != "LOT-EXPLICIT" {
		t.Errorf("LotID = %q, want explicit LOT-EXPLICIT over bin mapping", got)
	}
}

func TestBuildConsignmentPayload(t *testing.T) {
	rec := validatedRecord(pipeline.DocConsignment)
	rec.ConsignmentNumber = "CN-3"
	rec.Supplier = "Initech"
	rec.TrackingNumber = "1Z999"

	payload := pipeline.BuildConsignmentPayload(rec)

	if payload.Warehouse != rec.Warehouse.ID.Hex() {
		t.Errorf("Warehouse = %q, want %q", payload.Warehouse, rec.Warehouse.ID.Hex())
	}
	if payload.OrderChannel != pipeline.ChannelStandard {
		t.Errorf("OrderChannel = %q, want %q", payload.OrderChannel, pipeline.ChannelStandard)
	}
	if payload.Dropship != nil {
		t.Error("Dropship should be omitted for standard consignments")
	}
	if payload.ConsignmentDate != rec.Date {
		t.Errorf("ConsignmentDate = %d, want %d", payload.ConsignmentDate, rec.Date)
	}

	if len(payload.Items) != 1 {
		t.Fatalf("Items len = %d, want 1", len(payload.Items))
	}
	item := payload.Items[0]
	if item.FulfillmentType != pipeline.FulfillmentTypeFBA {
		t.Errorf("FulfillmentType = %q, want %q", item.FulfillmentType, pipeline.FulfillmentTypeFBA)
	}
	if item.ASIN != "B000TEST01" {
		t.Errorf("ASIN = %q, want B000TEST01", item.ASIN)
	}
	if item.SellerSKU != "SKU-1" || item.SKU != "SKU-1" {
		t.Errorf("SKU fields = %q/%q, want SKU-1", item.SellerSKU, item.SKU)
	}
	if len(item.FormFactors) != 1 || item.FormFactors[0].FormFactor != "Each" || item.FormFactors[0].Quantity != 12 {
		t.Errorf("FormFactors = %+v, want [{Each 12}]", item.FormFactors)
	}
}

func TestBuildConsignmentPayloadFormFactorFallback(t *testing.T) {
	rec := validatedRecord(pipeline.DocConsignment)
	rec.FormFactor = ""

	payload := pipeline.BuildConsignmentPayload(rec)
	if got := payload.Items[0].FormFactors[0].FormFactor; got != "Case" {
		t.Errorf("FormFactor = %q, want bin mapping fallback Case", got)
	}
}

func TestBuildConsignmentPayloadDropship(t *testing.T) {
	rec := validatedRecord(pipeline.DocConsignment)
	rec.Dropship = &pipeline.DropshipData{
		Type:            pipeline.DropshipFBA,
		IsCase:          true,
		PerCaseQuantity: 6,
		NumberOfCases:   2,
	}

	payload := pipeline.BuildConsignmentPayload(rec)
	if payload.OrderChannel != pipeline.ChannelDropship {
		t.Errorf("OrderChannel = %q, want %q", payload.OrderChannel, pipeline.ChannelDropship)
	}
	if payload.Dropship == nil || payload.Dropship.NumberOfCases != 2 {
		t.Errorf("Dropship = %+v, want case pack carried through", payload.Dropship)
	}
}
