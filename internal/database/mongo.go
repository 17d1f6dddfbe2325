package database

import (
	"context"
	"fmt"

	"github.com/evalpoint/evalpoint-backend/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewMongoClient creates and validates a MongoDB client connection.
// The caller owns the client and must Disconnect it on shutdown.
func NewMongoClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Info().
		Str("database", cfg.MongoDB).
		Msg("MongoDB connected")

	return client, nil
}
