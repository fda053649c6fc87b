// Package database provides MongoDB connection management with lifecycle coordination.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jmallard/manifest/pkg/lifecycle"
)

// System manages the MongoDB client and lifecycle coordination.
type System interface {
	// Client returns the underlying MongoDB client.
	Client() *mongo.Client
	// Collection returns a handle to a named collection in the configured database.
	Collection(name string) *mongo.Collection
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	client      *mongo.Client
	name        string
	logger      *slog.Logger
	connTimeout time.Duration
}

// New creates a database system with the given configuration. The driver
// connects lazily; reachability is verified by the ping registered in Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize)).
		SetConnectTimeout(cfg.ConnTimeoutDuration())

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &database{
		client:      client,
		name:        cfg.Name,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Client() *mongo.Client {
	return d.client
}

func (d *database) Collection(name string) *mongo.Collection {
	return d.client.Database(d.name).Collection(name)
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.client.Ping(pingCtx, readpref.Primary()); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.logger.Info("database connection established", "database", d.name)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		disconnectCtx, cancel := context.WithTimeout(context.Background(), d.connTimeout)
		defer cancel()

		if err := d.client.Disconnect(disconnectCtx); err != nil {
			d.logger.Error("database disconnect failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
