// Package extraction turns free-form document text into structured raw
// field sets using a configured language model agent.
package extraction

import (
	"context"

	"github.com/jmallard/manifest/internal/pipeline"
)

// MandatoryReport is the outcome of the mandatory-field check: either all
// mandatory fields are present, or Message enumerates the missing ones.
type MandatoryReport struct {
	Present bool   `json:"present"`
	Message string `json:"message"`
}

// Service defines the model-backed extraction operations. All operations
// are blocking network calls; the service bounds each call with its own
// timeout on top of the caller's ctx.
type Service interface {
	Extract(ctx context.Context, docType pipeline.DocumentType, text string) (pipeline.RawFieldSet, error)
	ClassifyMandatory(ctx context.Context, docType pipeline.DocumentType, text string) (*MandatoryReport, error)
	ClassifyDate(ctx context.Context, expression string) (int64, error)
}
