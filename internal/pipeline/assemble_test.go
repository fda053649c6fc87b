package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/refdata"
	"github.com/jmallard/manifest/pkg/pagination"
)

type fakeGateway struct {
	warehouses map[string]*refdata.Warehouse
	customers  map[string]*refdata.Customer
	variants   map[string]*refdata.ProductVariant
	mappings   map[primitive.ObjectID]*refdata.SkuBinMapping
	formFactor bool
	calls      []string
}

func (f *fakeGateway) Handler() *refdata.Handler { return nil }

func (f *fakeGateway) FindWarehouse(_ context.Context, _, codeOrName string) (*refdata.Warehouse, error) {
	f.calls = append(f.calls, "warehouse")
	if codeOrName == "dup" {
		return nil, refdata.ErrAmbiguous
	}
	if w, ok := f.warehouses[codeOrName]; ok {
		return w, nil
	}
	return nil, refdata.ErrNotFound
}

func (f *fakeGateway) FindCustomer(_ context.Context, _, codeOrName string) (*refdata.Customer, error) {
	f.calls = append(f.calls, "customer")
	if codeOrName == "dup" {
		return nil, refdata.ErrAmbiguous
	}
	if c, ok := f.customers[codeOrName]; ok {
		return c, nil
	}
	return nil, refdata.ErrNotFound
}

func (f *fakeGateway) FindProductVariant(_ context.Context, _ string, _ primitive.ObjectID, sku string) (*refdata.ProductVariant, error) {
	f.calls = append(f.calls, "sku")
	if v, ok := f.variants[sku]; ok {
		return v, nil
	}
	return nil, refdata.ErrNotFound
}

func (f *fakeGateway) FindSkuBinMapping(_ context.Context, variant primitive.ObjectID) (*refdata.SkuBinMapping, error) {
	return f.mappings[variant], nil
}

func (f *fakeGateway) FindValidFormFactor(_ context.Context, _ string, _ primitive.ObjectID, _, candidate string) (string, error) {
	if f.formFactor {
		return candidate, nil
	}
	return "", refdata.ErrNotFound
}

func (f *fakeGateway) ListWarehouses(_ context.Context, _ string, _ pagination.PageRequest) (*pagination.PageResult[refdata.Warehouse], error) {
	return nil, nil
}

func (f *fakeGateway) ListCustomers(_ context.Context, _ string, _ pagination.PageRequest) (*pagination.PageResult[refdata.Customer], error) {
	return nil, nil
}

type fakeDates struct {
	epochs map[string]int64
}

func (f *fakeDates) ClassifyDate(_ context.Context, expression string) (int64, error) {
	if ms, ok := f.epochs[expression]; ok {
		return ms, nil
	}
	return 0, pipeline.NewFailure(pipeline.FieldOrderDate, pipeline.ReasonDateInvalid)
}

var fixedNow = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func testAssembler(gw *fakeGateway, dates *fakeDates) *pipeline.Assembler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := pipeline.NewAssembler(gw, dates, logger)
	return a.WithClock(func() time.Time { return fixedNow })
}

func testGateway() *fakeGateway {
	warehouseID := primitive.NewObjectID()
	customerID := primitive.NewObjectID()
	variantID := primitive.NewObjectID()

	return &fakeGateway{
		warehouses: map[string]*refdata.Warehouse{
			"W1": {ID: warehouseID, Name: "Main", Code: "W1"},
		},
		customers: map[string]*refdata.Customer{
			"C1": {ID: customerID, Name: "Acme", Code: "C1"},
			"C2": {
				ID:         primitive.NewObjectID(),
				Name:       "Restricted",
				Code:       "C2",
				Warehouses: []primitive.ObjectID{primitive.NewObjectID()},
			},
		},
		variants: map[string]*refdata.ProductVariant{
			"SKU-1": {
				ID:        variantID,
				SKU:       "SKU-1",
				ProductID: "product-1",
				Name:      "Widget",
			},
		},
		mappings: map[primitive.ObjectID]*refdata.SkuBinMapping{
			variantID: {Product: variantID, LotID: "LOT-9", FormFactor: "Case"},
		},
		formFactor: true,
	}
}

func orderFields() pipeline.RawFieldSet {
	return pipeline.RawFieldSet{
		pipeline.FieldWarehouse:  "W1",
		pipeline.FieldCustomer:   "C1",
		pipeline.FieldSKU:        "SKU-1",
		pipeline.FieldQuantity:   "five",
		pipeline.FieldCarrier:    "ups",
		pipeline.FieldFormFactor: "case",
		pipeline.FieldInsurance:  "yes",
	}
}

func TestAssembleOrder(t *testing.T) {
	gw := testGateway()
	a := testAssembler(gw, &fakeDates{})

	rec, err := a.Assemble(context.Background(), "", orderFields(), pipeline.DocOrder)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	if rec.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", rec.Quantity)
	}
	if rec.FormFactor != "Case" {
		t.Errorf("FormFactor = %q, want Case", rec.FormFactor)
	}
	if rec.Carrier != "UPS" {
		t.Errorf("Carrier = %q, want UPS", rec.Carrier)
	}
	if !rec.Insurance {
		t.Error("Insurance = false, want true")
	}
	if rec.Date != fixedNow.UnixMilli() {
		t.Errorf("Date = %d, want current time %d", rec.Date, fixedNow.UnixMilli())
	}
	if rec.BinMapping == nil || rec.BinMapping.LotID != "LOT-9" {
		t.Errorf("BinMapping = %+v, want lot LOT-9", rec.BinMapping)
	}
}

func TestAssembleValidatorOrder(t *testing.T) {
	t.Run("customer failure short-circuits before warehouse", func(t *testing.T) {
		gw := testGateway()
		a := testAssembler(gw, &fakeDates{})

		fields := orderFields()
		fields[pipeline.FieldCustomer] = "nobody"

		_, err := a.Assemble(context.Background(), "", fields, pipeline.DocOrder)
		failure, ok := pipeline.AsFailure(err)
		if !ok {
			t.Fatalf("error = %v, want Failure", err)
		}
		if failure.Reason != pipeline.ReasonCustomerInvalid {
			t.Errorf("reason = %q, want %q", failure.Reason, pipeline.ReasonCustomerInvalid)
		}
		if len(gw.calls) != 1 || gw.calls[0] != "customer" {
			t.Errorf("calls = %v, want [customer]", gw.calls)
		}
	})

	t.Run("quantity failure short-circuits before sku", func(t *testing.T) {
		gw := testGateway()
		a := testAssembler(gw, &fakeDates{})

		fields := orderFields()
		fields[pipeline.FieldQuantity] = "zero"

		_, err := a.Assemble(context.Background(), "", fields, pipeline.DocOrder)
		failure, ok := pipeline.AsFailure(err)
		if !ok {
			t.Fatalf("error = %v, want Failure", err)
		}
		if failure.Reason != pipeline.ReasonQuantityInvalid {
			t.Errorf("reason = %q, want %q", failure.Reason, pipeline.ReasonQuantityInvalid)
		}
		for _, call := range gw.calls {
			if call == "sku" {
				t.Error("sku lookup should not run after quantity failure")
			}
		}
	})
}

func TestAssembleLookupFailures(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(pipeline.RawFieldSet)
		wantReason string
	}{
		{
			name:       "unknown warehouse",
			mutate:     func(f pipeline.RawFieldSet) { f[pipeline.FieldWarehouse] = "nowhere" },
			wantReason: pipeline.ReasonWarehouseInvalid,
		},
		{
			name:       "ambiguous warehouse",
			mutate:     func(f pipeline.RawFieldSet) { f[pipeline.FieldWarehouse] = "dup" },
			wantReason: pipeline.ReasonWarehouseAmbiguous,
		},
		{
			name:       "ambiguous customer",
			mutate:     func(f pipeline.RawFieldSet) { f[pipeline.FieldCustomer] = "dup" },
			wantReason: pipeline.ReasonCustomerAmbiguous,
		},
		{
			name:       "customer without warehouse access",
			mutate:     func(f pipeline.RawFieldSet) { f[pipeline.FieldCustomer] = "C2" },
			wantReason: pipeline.ReasonAccessDenied,
		},
		{
			name:       "unknown sku",
			mutate:     func(f pipeline.RawFieldSet) { f[pipeline.FieldSKU] = "SKU-404" },
			wantReason: pipeline.ReasonSKUInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAssembler(testGateway(), &fakeDates{})

			fields := orderFields()
			tt.mutate(fields)

			_, err := a.Assemble(context.Background(), "", fields, pipeline.DocOrder)
			failure, ok := pipeline.AsFailure(err)
			if !ok {
				t.Fatalf("error = %v, want Failure", err)
			}
			if failure.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", failure.Reason, tt.wantReason)
			}
		})
	}
}

func TestAssembleDates(t *testing.T) {
	past := fixedNow.Add(-24 * time.Hour).UnixMilli()
	future := fixedNow.Add(24 * time.Hour).UnixMilli()

	dates := &fakeDates{epochs: map[string]int64{
		"yesterday": past,
		"tomorrow":  future,
	}}

	t.Run("resolved past date", func(t *testing.T) {
		a := testAssembler(testGateway(), dates)

		fields := orderFields()
		fields[pipeline.FieldOrderDate] = "yesterday"

		rec, err := a.Assemble(context.Background(), "", fields, pipeline.DocOrder)
		if err != nil {
			t.Fatalf("Assemble error: %v", err)
		}
		if rec.Date != past {
			t.Errorf("Date = %d, want %d", rec.Date, past)
		}
	})

	t.Run("future date rejected", func(t *testing.T) {
		a := testAssembler(testGateway(), dates)

		fields := orderFields()
		fields[pipeline.FieldOrderDate] = "tomorrow"

		_, err := a.Assemble(context.Background(), "", fields, pipeline.DocOrder)
		failure, ok := pipeline.AsFailure(err)
		if !ok {
			t.Fatalf("error = %v, want Failure", err)
		}
		if failure.Reason != pipeline.ReasonDateInvalid {
			t.Errorf("reason = %q, want %q", failure.Reason, pipeline.ReasonDateInvalid)
		}
	})

	t.Run("unresolvable date rejected", func(t *testing.T) {
		a := testAssembler(testGateway(), dates)

		fields := orderFields()
		fields[pipeline.FieldOrderDate] = "the day after the thing"

		_, err := a.Assemble(context.Background(), "", fields, pipeline.DocOrder)
		failure, ok := pipeline.AsFailure(err)
		if !ok {
			t.Fatalf("error = %v, want Failure", err)
		}
		if failure.Reason != pipeline.ReasonDateInvalid {
			t.Errorf("reason = %q, want %q", failure.Reason, pipeline.ReasonDateInvalid)
		}
	})
}

func consignmentFields() pipeline.RawFieldSet {
	return pipeline.RawFieldSet{
		pipeline.FieldWarehouse:    "W1",
		pipeline.FieldCustomer:     "C1",
		pipeline.FieldSKU:          "SKU-1",
		pipeline.FieldQuantity:     "10",
		pipeline.FieldOrderChannel: "standard",
	}
}

func TestAssembleConsignment(t *testing.T) {
	t.Run("standard channel", func(t *testing.T) {
		a := testAssembler(testGateway(), &fakeDates{})

		rec, err := a.Assemble(context.Background(), "", consignmentFields(), pipeline.DocConsignment)
		if err != nil {
			t.Fatalf("Assemble error: %v", err)
		}
		if rec.Dropship != nil {
			t.Error("Dropship should be nil for standard channel")
		}
	})

	t.Run("absent form factor stays unset", func(t *testing.T) {
		a := testAssembler(testGateway(), &fakeDates{})

		rec, err := a.Assemble(context.Background(), "", consignmentFields(), pipeline.DocConsignment)
		if err != nil {
			t.Fatalf("Assemble error: %v", err)
		}
		if rec.FormFactor != "" {
			t.Errorf("FormFactor = %q, want unset", rec.FormFactor)
		}
	})

	t.Run("form factor must match unit configuration", func(t *testing.T) {
		gw := testGateway()
		gw.formFactor = false
		a := testAssembler(gw, &fakeDates{})

		fields := consignmentFields()
		fields[pipeline.FieldFormFactor] = "pallet"

		_, err := a.Assemble(context.Background(), "", fields, pipeline.DocConsignment)
		failure, ok := pipeline.AsFailure(err)
		if !ok {
			t.Fatalf("error = %v, want Failure", err)
		}
		if failure.Reason != pipeline.ReasonFormFactorInvalid {
			t.Errorf("reason = %q, want %q", failure.Reason, pipeline.ReasonFormFactorInvalid)
		}
	})

	t.Run("invalid channel", func(t *testing.T) {
		a := testAssembler(testGateway(), &fakeDates{})

		fields := consignmentFields()
		fields[pipeline.FieldOrderChannel] = "express"

		_, err := a.Assemble(context.Background(), "", fields, pipeline.DocConsignment)
		failure, ok := pipeline.AsFailure(err)
		if !ok {
			t.Fatalf("error = %v, want Failure", err)
		}
		if failure.Reason != pipeline.ReasonChannelInvalid {
			t.Errorf("reason = %q, want %q", failure.Reason, pipeline.ReasonChannelInvalid)
		}
	})

	t.Run("dropship channel validates sub-record", func(t *testing.T) {
		a := testAssembler(testGateway(), &fakeDates{})

		fields := consignmentFields()
		fields[pipeline.FieldOrderChannel] = "dropship"
		fields[pipeline.FieldDropshipType] = "FBA"
		fields[pipeline.FieldIsCase] = "no"

		rec, err := a.Assemble(context.Background(), "", fields, pipeline.DocConsignment)
		if err != nil {
			t.Fatalf("Assemble error: %v", err)
		}
		if rec.Dropship == nil || rec.Dropship.Type != pipeline.DropshipFBA {
			t.Errorf("Dropship = %+v, want FBA", rec.Dropship)
		}
	})
}
