package workflow

import (
	"errors"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/jmallard/manifest/internal/pipeline"
)

// State bag keys shared by the intake graph nodes.
const (
	KeyText      = "text"
	KeyTenant    = "tenant"
	KeyDocType   = "document_type"
	KeyFields    = "fields"
	KeyRejection = "rejection"
	KeyRecord    = "record"
)

// Workflow errors. Rejections are not errors: a rejected item still
// produces a Result. These signal a broken graph or a transport failure.
var (
	ErrStateCorrupt = errors.New("workflow state corrupt")
	ErrTransport    = errors.New("transport failure")
)

// Result is the outcome of one item's intake run: either an accepted,
// fully validated record or a rejection reason surfaced verbatim.
type Result struct {
	Accepted bool             `json:"accepted"`
	Reason   string           `json:"reason,omitempty"`
	Record   *pipeline.Record `json:"-"`
}

func rejected(s state.State) bool {
	_, ok := s.Get(KeyRejection)
	return ok
}
