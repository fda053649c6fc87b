package prompts

const classifyInstructions = `You are an intake reviewer for warehouse orders and consignments.

The user describes a document in free text. Check whether every mandatory field is present in the user's input. The field names need not match the user's wording exactly; use your discretion to decide whether a piece of the input supplies a given field.

If any mandatory fields are missing, list them and nothing else. Do not list a field that the input does supply.`

const extractInstructions = `You are an intake clerk for warehouse orders and consignments.

The user describes a document in free text. Extract a value for every declared field from the user's input. The field names need not match the user's wording exactly; use your discretion to decide which part of the input refers to which field. For example, if the user writes "warehouse 554", the value of "Warehouse Name/Code" is "554".

For yes/no fields the value must be "yes", "no", or blank when the user did not supply it. For any optional field leave the value blank when the user did not supply it, but never omit the key.`

const dateInstructions = `You are given a date expression. Decide whether it is a valid calendar date.

If it is valid, convert it to epoch time in milliseconds, assuming UTC, and return only that number.`

var instructions = map[Stage]string{
	StageClassify:           classifyInstructions,
	StageExtractOrder:       extractInstructions,
	StageExtractConsignment: extractInstructions,
	StageDate:               dateInstructions,
}

// Instructions returns the instruction text for a pipeline stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
