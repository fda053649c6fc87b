package pipeline

import (
	"net/url"
	"strings"

	"github.com/jmallard/manifest/pkg/formatting"
)

// Consignment channels.
const (
	ChannelStandard = "Standard"
	ChannelDropship = "Dropship"
)

// Dropship types.
const (
	DropshipFBA     = "FBA"
	DropshipRegular = "Regular"
)

// Label sources for regular dropship consignments.
const (
	LabelSourcePublicURL = "public url"
	LabelSourceSystem    = "system generated"
)

// ValidateChannel canonicalizes the Standard/Dropship channel field.
func ValidateChannel(raw string) (string, error) {
	switch strings.ToLower(raw) {
	case "standard":
		return ChannelStandard, nil
	case "dropship":
		return ChannelDropship, nil
	default:
		return "", NewFailure(FieldOrderChannel, ReasonChannelInvalid)
	}
}

// ValidateDropship validates the dropship sub-record of a consignment.
// Unlike the scalar validators it is exhaustive: every missing or invalid
// sub-field is collected so the single returned failure names all of them.
func ValidateDropship(raw RawFieldSet, address *ShippingAddress) (*DropshipData, error) {
	var offending []string

	data := &DropshipData{}

	switch strings.ToLower(raw.Get(FieldDropshipType)) {
	case "fba":
		data.Type = DropshipFBA
		offending = append(offending, validateCasePack(raw, data)...)
	case "regular":
		data.Type = DropshipRegular
		offending = append(offending, validateLabel(raw, address, data)...)
	default:
		offending = append(offending, FieldDropshipType)
	}

	if len(offending) > 0 {
		return nil, DropshipFailure(offending)
	}
	return data, nil
}

// validateCasePack checks the FBA branch: Is Case is required, and a
// cased shipment additionally requires both case-pack counts.
func validateCasePack(raw RawFieldSet, data *DropshipData) []string {
	var offending []string

	isCase, ok := ParseYesNo(raw.Get(FieldIsCase))
	if !raw.Has(FieldIsCase) || !ok {
		return append(offending, FieldIsCase)
	}
	data.IsCase = isCase

	if !isCase {
		return nil
	}

	if n, err := formatting.ParseCount(raw.Get(FieldPerCaseQuantity)); err == nil && n > 0 {
		data.PerCaseQuantity = n
	} else {
		offending = append(offending, FieldPerCaseQuantity)
	}

	if n, err := formatting.ParseCount(raw.Get(FieldNumberOfCases)); err == nil && n > 0 {
		data.NumberOfCases = n
	} else {
		offending = append(offending, FieldNumberOfCases)
	}

	return offending
}

// validateLabel checks the Regular branch: a label source is required,
// public url sources need a parseable URL, and system generated sources
// carry the shipping address through verbatim.
func validateLabel(raw RawFieldSet, address *ShippingAddress, data *DropshipData) []string {
	switch strings.ToLower(raw.Get(FieldLabelSource)) {
	case LabelSourcePublicURL:
		data.LabelSource = LabelSourcePublicURL
		labelURL := raw.Get(FieldLabelURL)
		if !validURL(labelURL) {
			return []string{FieldLabelURL}
		}
		data.LabelURL = labelURL
	case LabelSourceSystem:
		data.LabelSource = LabelSourceSystem
		if address != nil && !address.Empty() {
			copied := *address
			data.Address = &copied
		}
	default:
		return []string{FieldLabelSource}
	}
	return nil
}

func validURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
