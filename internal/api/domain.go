package api

import (
	"github.com/jmallard/manifest/internal/config"
	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/refdata"
	"github.com/jmallard/manifest/internal/sessions"
	"github.com/jmallard/manifest/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	RefData  refdata.System
	Sessions sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	refdataSystem := refdata.New(
		runtime.Database,
		runtime.Logger,
		runtime.Pagination,
		runtime.Pipeline.CallTimeoutDuration(),
	)

	assembler := pipeline.NewAssembler(
		refdataSystem,
		runtime.Extraction,
		runtime.Logger,
	)

	sessionsSystem := sessions.New(sessions.Options{
		Runtime: &workflow.Runtime{
			Extraction: runtime.Extraction,
			Assembler:  assembler,
			Logger:     runtime.Logger,
		},
		Remote:        runtime.Remote,
		Archive:       runtime.Storage,
		Logger:        runtime.Logger,
		Pipeline:      runtime.Pipeline,
		MaxUploadSize: cfg.API.MaxUploadSizeBytes(),
	})

	return &Domain{
		RefData:  refdataSystem,
		Sessions: sessionsSystem,
	}
}
