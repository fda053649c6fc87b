// Package prompts defines the model-facing contract for each pipeline
// stage: the instruction text, the response format, and the composition
// of both with a document's field lists and user text.
package prompts

import (
	"encoding/json"
	"slices"
)

// Stage represents a model interaction stage in the intake pipeline.
type Stage string

// Valid pipeline stages.
const (
	StageClassify           Stage = "classify"
	StageExtractOrder       Stage = "extract-order"
	StageExtractConsignment Stage = "extract-consignment"
	StageDate               Stage = "date"
)

var stages = []Stage{
	StageClassify,
	StageExtractOrder,
	StageExtractConsignment,
	StageDate,
}

// Stages returns the list of valid pipeline stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known pipeline stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
