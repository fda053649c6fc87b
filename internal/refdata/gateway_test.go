package refdata

import (
	"context"
	"testing"
	"time"
)

func TestQueryContext(t *testing.T) {
	g := &gateway{timeout: time.Minute}

	ctx, cancel := g.queryContext(context.Background())
	defer cancel()

	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("no deadline applied to the query")
	}
}

func TestQueryContextDisabled(t *testing.T) {
	g := &gateway{}
	parent := context.Background()

	ctx, cancel := g.queryContext(parent)
	defer cancel()

	if ctx != parent {
		t.Error("zero timeout should leave the caller's context untouched")
	}
}
