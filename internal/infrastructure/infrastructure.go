// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, remote access) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/jmallard/manifest/internal/config"
	"github.com/jmallard/manifest/internal/extraction"
	"github.com/jmallard/manifest/internal/remote"
	"github.com/jmallard/manifest/pkg/database"
	"github.com/jmallard/manifest/pkg/lifecycle"
	"github.com/jmallard/manifest/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, document store access, the extraction agent, and the remote API.
type Infrastructure struct {
	Agent      gaconfig.AgentConfig
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Remote     remote.System
	Extraction extraction.Service

	// Storage is nil when no blob backend is configured; uploads are
	// still processed, just not archived.
	Storage storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var store storage.System
	if cfg.Storage.Enabled() {
		store, err = storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
	}

	return &Infrastructure{
		Agent:      cfg.Agent,
		Lifecycle:  lc,
		Logger:     logger,
		Database:   db,
		Remote:     remote.New(cfg.Remote, logger),
		Extraction: extraction.New(cfg.Agent, cfg.Pipeline.CallTimeoutDuration(), logger),
		Storage:    store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}
