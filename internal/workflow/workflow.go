package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/jmallard/manifest/internal/pipeline"
)

// Execute runs the intake workflow for a single item. It builds the state
// graph (classify → extract? → assemble), executes it, and extracts the
// Result from the final state. A rejection at any node flows through to
// the exit node; only a corrupt state bag or a broken graph returns an
// error.
func Execute(
	ctx context.Context,
	rt *Runtime,
	tenant string,
	docType pipeline.DocumentType,
	text string,
) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyText, text)
	initialState = initialState.Set(KeyTenant, tenant)
	initialState = initialState.Set(KeyDocType, docType)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("manifest-intake")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("assemble", AssembleNode(rt)); err != nil {
		return nil, err
	}

	// classify → extract (when mandatory fields are present)
	if err := graph.AddEdge("classify", "extract", state.Not(rejected)); err != nil {
		return nil, err
	}

	// classify → assemble (when already rejected; assemble passes through)
	if err := graph.AddEdge("classify", "assemble", rejected); err != nil {
		return nil, err
	}

	// extract → assemble (unconditional)
	if err := graph.AddEdge("extract", "assemble", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("assemble"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	if reasonVal, ok := s.Get(KeyRejection); ok {
		reason, ok := reasonVal.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not string", ErrStateCorrupt, KeyRejection)
		}
		return &Result{Accepted: false, Reason: reason}, nil
	}

	recordVal, ok := s.Get(KeyRecord)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrStateCorrupt, KeyRecord)
	}
	record, ok := recordVal.(*pipeline.Record)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not *Record", ErrStateCorrupt, KeyRecord)
	}

	return &Result{Accepted: true, Record: record}, nil
}
