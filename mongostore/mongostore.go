/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package mongostore writes compacted reference range documents to MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/humaidq/labranges/catalog"
)

// Defaults for Config.
const (
	DefaultURI        = "mongodb://localhost:27017/"
	DefaultDatabase   = "report_simplifier"
	DefaultCollection = "reference_ranges"

	defaultConnectTimeout = 10 * time.Second
)

// Config selects the MongoDB deployment and collection.
type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// ValidateAndSetDefault fills empty fields with the package defaults.
func (c *Config) ValidateAndSetDefault() error {
	if c.URI == "" {
		c.URI = DefaultURI
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.ConnectTimeout)
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	return nil
}

// Store is a connected MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect opens a client for cfg and verifies it with a ping to the primary.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.ValidateAndSetDefault(); err != nil {
		return nil, err
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetReadPreference(readpref.Primary())

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Debug("Connected to mongodb", "database", cfg.Database, "collection", cfg.Collection)

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

// InsertDocuments inserts docs in one ordered batch. When replace is set the
// collection is emptied first.
func (s *Store) InsertDocuments(ctx context.Context, docs []catalog.Document, replace bool) (int, error) {
	if replace {
		res, err := s.collection.DeleteMany(ctx, bson.D{})
		if err != nil {
			return 0, fmt.Errorf("failed to clear collection: %w", err)
		}
		logger.Info("Cleared collection", "deleted", res.DeletedCount)
	}

	if len(docs) == 0 {
		logger.Warn("No documents to insert")
		return 0, nil
	}

	batch := make([]any, 0, len(docs))
	for _, doc := range docs {
		batch = append(batch, toBSON(doc))
	}

	res, err := s.collection.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to insert documents: %w", err)
	}

	logger.Infof("Inserted %d documents into %s.%s", len(res.InsertedIDs), s.collection.Database().Name(), s.collection.Name())

	return len(res.InsertedIDs), nil
}

// toBSON keeps unit groups in first-seen order.
func toBSON(doc catalog.Document) bson.D {
	ranges := make(bson.D, 0, len(doc.Ranges))
	for _, g := range doc.Ranges {
		ranges = append(ranges, bson.E{Key: g.Unit, Value: g.Value()})
	}

	return bson.D{
		{Key: "type", Value: doc.Type},
		{Key: "test", Value: doc.Test},
		{Key: "ranges", Value: ranges},
	}
}
