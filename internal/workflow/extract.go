package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ExtractNode returns a state node that extracts the raw field set from
// the input text. Malformed model output records a rejection; the item is
// recoverable by resubmitting corrected text.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		text, docType, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		fields, err := rt.Extraction.Extract(ctx, docType, text)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "field extraction failed",
				"document_type", docType,
				"error", err,
			)
			return s.Set(KeyRejection, err.Error()), nil
		}

		return s.Set(KeyFields, fields), nil
	})
}
