// Package workflow executes the per-item intake graph: classify the
// input for missing mandatory fields, extract a raw field set, and
// assemble it into a validated record.
package workflow

import (
	"log/slog"

	"github.com/jmallard/manifest/internal/extraction"
	"github.com/jmallard/manifest/internal/pipeline"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Extraction extraction.Service
	Assembler  *pipeline.Assembler
	Logger     *slog.Logger
}
