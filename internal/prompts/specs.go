package prompts

// MandatoryMarker is the literal response the classify stage must emit
// when no mandatory field is missing. Anything else is treated as an
// enumeration of missing fields.
const MandatoryMarker = "All mandatory fields are present"

const classifySpec = `Respond with either the missing field list or the exact phrase "` +
	MandatoryMarker + `". Do not respond with anything else.`

const extractSpec = `Respond with a single JSON object whose keys are exactly the declared fields and whose values are strings extracted from the user's input. Empty string values are permitted. Do not add keys, omit keys, or respond with anything other than valid JSON. No markdown fencing.`

const dateSpec = `Respond with either the epoch time in milliseconds or the exact phrase "Date not valid". Do not respond with anything else.`

var specs = map[Stage]string{
	StageClassify:           classifySpec,
	StageExtractOrder:       extractSpec,
	StageExtractConsignment: extractSpec,
	StageDate:               dateSpec,
}

// Spec returns the response contract for a pipeline stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
