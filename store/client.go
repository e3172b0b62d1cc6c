package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

func NewClient(host string, lifecycle fx.Lifecycle) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ContextTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(host))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

// NewDatabase returns the audit database. Patients and visits live in separate
// collections of the same database so cohort reads can share a snapshot.
func NewDatabase(client *mongo.Client, cfg *Config) (*mongo.Database, error) {
	if cfg.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}
	return client.Database(cfg.DatabaseName), nil
}
