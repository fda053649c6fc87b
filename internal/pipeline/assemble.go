package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmallard/manifest/internal/refdata"
)

// DateClassifier resolves a free-form date expression to an epoch
// millisecond timestamp.
type DateClassifier interface {
	ClassifyDate(ctx context.Context, expression string) (int64, error)
}

// Assembler runs the field validators in dependency order against a raw
// field set, resolving references through the gateway and producing either
// a fully validated Record or the first Failure encountered.
type Assembler struct {
	gateway refdata.System
	dates   DateClassifier
	logger  *slog.Logger
	now     func() time.Time
}

// NewAssembler creates an Assembler. The clock defaults to time.Now and is
// injectable for tests.
func NewAssembler(gateway refdata.System, dates DateClassifier, logger *slog.Logger) *Assembler {
	return &Assembler{
		gateway: gateway,
		dates:   dates,
		logger:  logger.With("system", "assembler"),
		now:     time.Now,
	}
}

// WithClock overrides the assembler's clock.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Assemble validates a raw field set for the given tenant and document
// type. Validation short-circuits on the first failure; only the dropship
// validator aggregates its sub-field failures. Gateway transport failures
// are returned as wrapped errors, distinct from validation failures.
func (a *Assembler) Assemble(ctx context.Context, tenant string, raw RawFieldSet, docType DocumentType) (*Record, error) {
	rec := &Record{
		Type:   docType,
		Tenant: tenant,
		Raw:    raw,
	}

	customer, err := a.gateway.FindCustomer(ctx, tenant, raw.Get(FieldCustomer))
	if err != nil {
		return nil, lookupFailure(err, FieldCustomer, ReasonCustomerInvalid, ReasonCustomerAmbiguous)
	}
	rec.Customer = customer

	warehouse, err := a.gateway.FindWarehouse(ctx, tenant, raw.Get(FieldWarehouse))
	if err != nil {
		return nil, lookupFailure(err, FieldWarehouse, ReasonWarehouseInvalid, ReasonWarehouseAmbiguous)
	}
	rec.Warehouse = warehouse

	if !customer.AllowsWarehouse(warehouse.ID) {
		return nil, NewFailure(FieldWarehouse, ReasonAccessDenied)
	}

	if rec.Date, err = a.resolveDate(ctx, raw, docType); err != nil {
		return nil, err
	}

	if rec.Quantity, err = ValidateQuantity(raw.Get(FieldQuantity)); err != nil {
		return nil, err
	}

	variant, err := a.gateway.FindProductVariant(ctx, tenant, customer.ID, raw.Get(FieldSKU))
	if err != nil {
		return nil, lookupFailure(err, FieldSKU, ReasonSKUInvalid, ReasonSKUInvalid)
	}
	rec.Variant = variant

	if rec.BinMapping, err = a.gateway.FindSkuBinMapping(ctx, variant.ID); err != nil {
		return nil, fmt.Errorf("sku bin mapping lookup: %w", err)
	}

	if rec.FormFactor, err = a.resolveFormFactor(ctx, rec); err != nil {
		return nil, err
	}

	if rec.Carrier, err = ValidateCarrier(raw.Get(FieldCarrier)); err != nil {
		return nil, err
	}

	rec.Address = collectAddress(raw)

	if docType == DocOrder {
		if err := a.assembleOrder(rec); err != nil {
			return nil, err
		}
	} else {
		if err := a.assembleConsignment(rec); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func (a *Assembler) assembleOrder(rec *Record) error {
	raw := rec.Raw

	rec.OrderID = raw.Get(FieldOrderID)
	rec.LotID = raw.Get(FieldLotID)

	insurance, ok := ParseYesNo(raw.Get(FieldInsurance))
	if !ok {
		return NewFailure(FieldInsurance, ReasonInsuranceInvalid)
	}
	rec.Insurance = insurance

	validate, ok := ParseYesNo(raw.Get(FieldValidateAddress))
	if !ok {
		return NewFailure(FieldValidateAddress, ReasonValidateInvalid)
	}
	rec.ValidateAddress = validate

	return nil
}

func (a *Assembler) assembleConsignment(rec *Record) error {
	raw := rec.Raw

	rec.ConsignmentNumber = raw.Get(FieldConsignmentNumber)
	rec.Supplier = raw.Get(FieldSupplier)
	rec.TrackingNumber = raw.Get(FieldTrackingNumber)

	channel, err := ValidateChannel(raw.Get(FieldOrderChannel))
	if err != nil {
		return err
	}

	if channel == ChannelDropship {
		dropship, err := ValidateDropship(raw, rec.Address)
		if err != nil {
			return err
		}
		rec.Dropship = dropship
	}

	return nil
}

// resolveDate defaults an absent date to the current time; a present date
// must resolve to a timestamp no later than now.
func (a *Assembler) resolveDate(ctx context.Context, raw RawFieldSet, docType DocumentType) (int64, error) {
	field := FieldOrderDate
	if docType == DocConsignment {
		field = FieldConsignmentDate
	}

	expression := raw.Get(field)
	if expression == "" {
		return a.now().UnixMilli(), nil
	}

	epochMillis, err := a.dates.ClassifyDate(ctx, expression)
	if err != nil || epochMillis <= 0 {
		return 0, NewFailure(field, ReasonDateInvalid)
	}
	if epochMillis > a.now().UnixMilli() {
		return 0, NewFailure(field, ReasonDateInvalid)
	}
	return epochMillis, nil
}

// resolveFormFactor applies the closed canonical set for orders. A
// consignment form factor must instead match the resolved SKU's unit
// configuration and stays unset when not supplied.
func (a *Assembler) resolveFormFactor(ctx context.Context, rec *Record) (string, error) {
	candidate := rec.Raw.Get(FieldFormFactor)

	if rec.Type == DocOrder {
		return ValidateOrderFormFactor(candidate)
	}

	if candidate == "" {
		return "", nil
	}

	matched, err := a.gateway.FindValidFormFactor(ctx, rec.Tenant, rec.Customer.ID, rec.Variant.SKU, candidate)
	if err != nil {
		if errors.Is(err, refdata.ErrNotFound) {
			return "", NewFailure(FieldFormFactor, ReasonFormFactorInvalid)
		}
		return "", fmt.Errorf("form factor lookup: %w", err)
	}
	return matched, nil
}

func collectAddress(raw RawFieldSet) *ShippingAddress {
	addr := ShippingAddress{
		Name:    raw.Get(FieldAddressName),
		Email:   raw.Get(FieldAddressEmail),
		Phone:   raw.Get(FieldAddressPhone),
		Line1:   raw.Get(FieldAddressLine1),
		Line2:   raw.Get(FieldAddressLine2),
		City:    raw.Get(FieldAddressCity),
		State:   raw.Get(FieldAddressState),
		Country: raw.Get(FieldAddressCountry),
		Zip:     raw.Get(FieldAddressZip),
	}
	if addr.Empty() {
		return nil
	}
	return &addr
}

// lookupFailure maps gateway errors to validation failures, passing
// transport errors through wrapped so callers can tell bad input from an
// unreachable store.
func lookupFailure(err error, field, notFound, ambiguous string) error {
	switch {
	case errors.Is(err, refdata.ErrNotFound):
		return NewFailure(field, notFound)
	case errors.Is(err, refdata.ErrAmbiguous):
		return NewFailure(field, ambiguous)
	default:
		return fmt.Errorf("%s lookup: %w", field, err)
	}
}
