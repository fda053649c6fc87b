package pipeline

import (
	"strings"

	"github.com/jmallard/manifest/pkg/formatting"
)

// Canonical form factors.
const (
	FormFactorEach   = "Each"
	FormFactorCase   = "Case"
	FormFactorCarton = "Carton"
	FormFactorPallet = "Pallet"
)

var formFactors = map[string]string{
	"each":   FormFactorEach,
	"case":   FormFactorCase,
	"carton": FormFactorCarton,
	"pallet": FormFactorPallet,
}

var carriers = map[string]string{
	"ups":   "UPS",
	"usps":  "USPS",
	"fedex": "FedEx",
}

// ValidateQuantity parses a quantity expressed as digits or number words
// and requires it to be a positive integer.
func ValidateQuantity(raw string) (int, error) {
	n, err := formatting.ParseCount(raw)
	if err != nil || n <= 0 {
		return 0, NewFailure(FieldQuantity, ReasonQuantityInvalid)
	}
	return n, nil
}

// ValidateOrderFormFactor canonicalizes an order form factor against the
// closed set. An absent value defaults to Each.
func ValidateOrderFormFactor(raw string) (string, error) {
	if raw == "" {
		return FormFactorEach, nil
	}
	if canonical, ok := formFactors[strings.ToLower(raw)]; ok {
		return canonical, nil
	}
	return "", NewFailure(FieldFormFactor, ReasonFormFactorInvalid)
}

// ValidateCarrier canonicalizes a carrier name. An absent value resolves
// to the empty string, meaning no carrier preference.
func ValidateCarrier(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if canonical, ok := carriers[strings.ToLower(raw)]; ok {
		return canonical, nil
	}
	return "", NewFailure(FieldCarrier, ReasonCarrierInvalid)
}

// ParseYesNo interprets a yes/no flag. An absent value is false; anything
// other than a yes/no variant is an error so a typo never silently picks
// a side.
func ParseYesNo(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "":
		return false, true
	case "yes", "y", "true":
		return true, true
	case "no", "n", "false":
		return false, true
	default:
		return false, false
	}
}
