// Package mongo holds the MongoDB adapters behind the core repository ports.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Config carries the connection settings for the credential store.
type Config struct {
	URI      string
	Database string
}

// Connect dials the credential store and fails fast with a ping rather than
// letting the first repository call discover a dead connection.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect %q: %w", cfg.Database, err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping %q: %w", cfg.Database, err)
	}

	return client, client.Database(cfg.Database), nil
}
