package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmallard/manifest/internal/config"
	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/remote"
	"github.com/jmallard/manifest/internal/workflow"
	"github.com/jmallard/manifest/pkg/storage"
)

// System defines the public contract for session operations.
type System interface {
	Handler() *Handler

	Create(tenant string, docType pipeline.DocumentType) *Session
	Find(id uuid.UUID) (*Session, error)
	Delete(id uuid.UUID) error

	AddItems(ctx context.Context, id uuid.UUID, texts []string) (*Session, error)
	Submit(ctx context.Context, id uuid.UUID) (*Session, error)
}

type system struct {
	store         *store
	runtime       *workflow.Runtime
	remote        remote.System
	archive       storage.System
	logger        *slog.Logger
	maxUploadSize int64
	workers       int
	submitWorkers int
	callTimeout   time.Duration
}

// Options carries the construction parameters for the session system.
// Archive may be nil, in which case uploaded workbooks are not retained.
type Options struct {
	Runtime       *workflow.Runtime
	Remote        remote.System
	Archive       storage.System
	Logger        *slog.Logger
	Pipeline      config.PipelineConfig
	MaxUploadSize int64
}

// New creates a session system with an empty in-memory store.
func New(opts Options) System {
	return &system{
		store:         newStore(),
		runtime:       opts.Runtime,
		remote:        opts.Remote,
		archive:       opts.Archive,
		logger:        opts.Logger.With("system", "sessions"),
		maxUploadSize: opts.MaxUploadSize,
		workers:       opts.Pipeline.Workers,
		submitWorkers: opts.Pipeline.SubmitWorkers,
		callTimeout:   opts.Pipeline.CallTimeoutDuration(),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.archive, s.logger, s.maxUploadSize)
}

func (s *system) Create(tenant string, docType pipeline.DocumentType) *Session {
	session := s.store.create(tenant, docType)
	s.logger.Info(
		"session created",
		"session_id", session.ID,
		"document_type", docType,
	)
	return session
}

func (s *system) Find(id uuid.UUID) (*Session, error) {
	return s.store.find(id)
}

func (s *system) Delete(id uuid.UUID) error {
	return s.store.delete(id)
}
