package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/jmallard/manifest/internal/pipeline"
)

// AssembleNode returns a state node that runs the field validators over
// the extracted field set and stores the validated record. Validation
// failures surface their reason verbatim; transport failures are logged
// distinctly since they indicate systemic trouble rather than bad input.
func AssembleNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		if rejected(s) {
			return s, nil
		}

		_, docType, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("assemble: %w", err)
		}

		tenant, err := extractTenant(s)
		if err != nil {
			return s, fmt.Errorf("assemble: %w", err)
		}

		fieldsVal, ok := s.Get(KeyFields)
		if !ok {
			return s, fmt.Errorf("assemble: %w: missing %s in state", ErrStateCorrupt, KeyFields)
		}
		fields, ok := fieldsVal.(pipeline.RawFieldSet)
		if !ok {
			return s, fmt.Errorf("assemble: %w: %s is not RawFieldSet", ErrStateCorrupt, KeyFields)
		}

		record, err := rt.Assembler.Assemble(ctx, tenant, fields, docType)
		if err != nil {
			if failure, ok := pipeline.AsFailure(err); ok {
				rt.Logger.InfoContext(
					ctx, "validation failed",
					"document_type", docType,
					"field", failure.Field,
					"reason", failure.Reason,
				)
				return s.Set(KeyRejection, failure.Reason), nil
			}

			rt.Logger.ErrorContext(ctx, "assembly transport failure", "error", err)
			return s.Set(KeyRejection, fmt.Sprintf("%s: %s", ErrTransport, err)), nil
		}

		return s.Set(KeyRecord, record), nil
	})
}
