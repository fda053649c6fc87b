package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/jmallard/manifest/internal/pipeline"
)

// ClassifyNode returns a state node that checks the input text for missing
// mandatory fields. A negative report records a rejection in the state bag
// rather than failing the graph, so the item still reaches the exit node.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		text, docType, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		report, err := rt.Extraction.ClassifyMandatory(ctx, docType, text)
		if err != nil {
			rt.Logger.ErrorContext(ctx, "mandatory field check failed", "error", err)
			return s.Set(KeyRejection, fmt.Sprintf("%s: %s", ErrTransport, err)), nil
		}

		if !report.Present {
			rt.Logger.InfoContext(
				ctx, "mandatory fields missing",
				"document_type", docType,
				"message", report.Message,
			)
			return s.Set(KeyRejection, report.Message), nil
		}

		return s, nil
	})
}

func extractInput(s state.State) (string, pipeline.DocumentType, error) {
	textVal, ok := s.Get(KeyText)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrStateCorrupt, KeyText)
	}
	text, ok := textVal.(string)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not string", ErrStateCorrupt, KeyText)
	}

	typeVal, ok := s.Get(KeyDocType)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrStateCorrupt, KeyDocType)
	}
	docType, ok := typeVal.(pipeline.DocumentType)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not DocumentType", ErrStateCorrupt, KeyDocType)
	}

	return text, docType, nil
}

func extractTenant(s state.State) (string, error) {
	tenantVal, ok := s.Get(KeyTenant)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrStateCorrupt, KeyTenant)
	}
	tenant, ok := tenantVal.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrStateCorrupt, KeyTenant)
	}
	return tenant, nil
}
