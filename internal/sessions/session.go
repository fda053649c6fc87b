// Package sessions implements the interactive batch domain: a session
// accumulates intake items through extraction and validation, and a
// separate submit step drains the accepted set to the remote API.
package sessions

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmallard/manifest/internal/pipeline"
)

// SubmissionOutcome is the independent result of submitting one accepted
// item to the remote API.
type SubmissionOutcome struct {
	Submitted bool   `json:"submitted"`
	Message   string `json:"message"`
}

// Item is one entry of a session's batch, in input order. An item carries
// its intake outcome and, after the submit step, its submission outcome.
type Item struct {
	Position   int                `json:"position"`
	Text       string             `json:"text"`
	Accepted   bool               `json:"accepted"`
	Reason     string             `json:"reason,omitempty"`
	Submission *SubmissionOutcome `json:"submission,omitempty"`

	record *pipeline.Record
}

// Session is a user's pending batch. Items are appended by the intake
// phase and drained by the submission phase; the two phases never run
// concurrently for one session.
type Session struct {
	ID        uuid.UUID             `json:"id"`
	Tenant    string                `json:"tenant"`
	Type      pipeline.DocumentType `json:"type"`
	Items     []Item                `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
}

// Accepted returns the indices of items eligible for submission: accepted
// by validation and not yet successfully submitted.
func (s *Session) Accepted() []int {
	var indices []int
	for i := range s.Items {
		item := &s.Items[i]
		if !item.Accepted || item.record == nil {
			continue
		}
		if item.Submission != nil && item.Submission.Submitted {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}
