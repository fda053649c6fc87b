package sessions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmallard/manifest/internal/workflow"
)

// AddItems runs the intake workflow for each text, fanning out across a
// bounded worker pool. Every item is attempted regardless of prior
// failures, and outcomes are appended to the session in input order.
func (s *system) AddItems(ctx context.Context, id uuid.UUID, texts []string) (*Session, error) {
	if len(texts) == 0 {
		return nil, ErrNoItems
	}

	session, err := s.store.acquire(id)
	if err != nil {
		return nil, err
	}
	defer s.store.release(id)

	items := s.runBatch(ctx, session, texts)

	base := len(session.Items)
	for i := range items {
		items[i].Position = base + i
	}
	session.Items = append(session.Items, items...)

	s.logger.InfoContext(
		ctx, "batch processed",
		"session_id", session.ID,
		"items", len(items),
		"accepted", countAccepted(items),
	)

	return session, nil
}

// runBatch fans the items out across the worker pool. Workers only fill an
// indexed slot, so reported order always matches input order. A worker
// never returns an error: per-item failures become rejections.
func (s *system) runBatch(ctx context.Context, session *Session, texts []string) []Item {
	items := make([]Item, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, text := range texts {
		g.Go(func() error {
			items[i] = s.runItem(gctx, session, text)
			return nil
		})
	}

	g.Wait()
	return items
}

// runItem executes the intake workflow for one text. Timeouts are applied
// per outbound call by the extraction service and the reference gateway,
// not across the whole item.
func (s *system) runItem(ctx context.Context, session *Session, text string) Item {
	item := Item{Text: text}

	result, err := workflow.Execute(ctx, s.runtime, session.Tenant, session.Type, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "intake workflow failed", "error", err)
		item.Reason = fmt.Sprintf("%s: %s", workflow.ErrTransport, err)
		return item
	}

	item.Accepted = result.Accepted
	item.Reason = result.Reason
	item.record = result.Record
	return item
}

func countAccepted(items []Item) int {
	var n int
	for i := range items {
		if items[i].Accepted {
			n++
		}
	}
	return n
}
