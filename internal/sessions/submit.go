package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/remote"
)

// Submit drains the session's accepted items to the remote API. Login
// happens once; a failed login aborts the whole submission phase with a
// batch-level error. Individual submissions run on a bounded worker pool
// and fail independently, with no retry and no rollback of prior
// successes.
func (s *system) Submit(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.store.acquire(id)
	if err != nil {
		return nil, err
	}
	defer s.store.release(id)

	indices := session.Accepted()
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: nothing accepted to submit", ErrNoItems)
	}

	token, err := s.login(ctx)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.submitWorkers)

	for _, idx := range indices {
		g.Go(func() error {
			session.Items[idx].Submission = s.submitItem(gctx, token, session.Items[idx].record)
			return nil
		})
	}

	g.Wait()

	s.logger.InfoContext(
		ctx, "submission phase complete",
		"session_id", session.ID,
		"attempted", len(indices),
		"submitted", countSubmitted(session.Items),
	)

	return session, nil
}

func (s *system) login(ctx context.Context) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	token, err := s.remote.Login(callCtx)
	if err != nil {
		if errors.Is(err, remote.ErrAuth) {
			s.logger.ErrorContext(ctx, "login failed, submission phase aborted", "error", err)
			return "", err
		}
		return "", fmt.Errorf("%w: %w", remote.ErrAuth, err)
	}
	return token, nil
}

func (s *system) submitItem(ctx context.Context, token string, record *pipeline.Record) *SubmissionOutcome {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var message string
	var err error
	if record.Type == pipeline.DocConsignment {
		message, err = s.remote.SaveConsignment(callCtx, token, pipeline.BuildConsignmentPayload(record))
	} else {
		message, err = s.remote.SaveOrder(callCtx, token, pipeline.BuildOrderPayload(record))
	}

	if err != nil {
		s.logger.WarnContext(ctx, "submission failed", "error", err)
		return &SubmissionOutcome{Submitted: false, Message: err.Error()}
	}

	return &SubmissionOutcome{Submitted: true, Message: message}
}

func countSubmitted(items []Item) int {
	var n int
	for i := range items {
		if items[i].Submission != nil && items[i].Submission.Submitted {
			n++
		}
	}
	return n
}
