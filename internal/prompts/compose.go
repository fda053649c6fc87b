package prompts

import (
	"fmt"
	"strings"

	"github.com/jmallard/manifest/internal/pipeline"
)

// Classify composes the mandatory-field check prompt for a document type.
func Classify(docType pipeline.DocumentType, text string) string {
	instructions, _ := Instructions(StageClassify)
	spec, _ := Spec(StageClassify)

	return fmt.Sprintf(
		"%s\n\nThe user's input is: %q\nThe mandatory fields are: %s.\n\n%s",
		instructions,
		text,
		fieldList(pipeline.MandatoryFields(docType)),
		spec,
	)
}

// Extract composes the field extraction prompt for a document type.
func Extract(docType pipeline.DocumentType, text string) string {
	stage := StageExtractOrder
	if docType == pipeline.DocConsignment {
		stage = StageExtractConsignment
	}
	instructions, _ := Instructions(stage)
	spec, _ := Spec(stage)

	return fmt.Sprintf(
		"%s\n\nThe user's input is: %q\nThe mandatory fields are: %s.\nThe optional fields are: %s.\n\n%s",
		instructions,
		text,
		fieldList(pipeline.MandatoryFields(docType)),
		fieldList(pipeline.OptionalFields(docType)),
		spec,
	)
}

// Date composes the date resolution prompt for a date expression.
func Date(expression string) string {
	instructions, _ := Instructions(StageDate)
	spec, _ := Spec(StageDate)

	return fmt.Sprintf("%s\n\nThe date expression is: %q\n\n%s", instructions, expression, spec)
}

func fieldList(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return strings.Join(quoted, ", ")
}
