/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/labranges/catalog"
)

// RangeDocument is a stored catalog.Document.
type RangeDocument struct {
	ID        uuid.UUID       `db:"id"`
	Type      string          `db:"type"`
	Test      string          `db:"test"`
	Ranges    json.RawMessage `db:"ranges"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// SaveDocuments upserts docs keyed by section type and test name in a single
// transaction and returns the number of rows written.
func SaveDocuments(ctx context.Context, docs []catalog.Document) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO reference_range_documents (type, test, ranges)
		VALUES ($1, $2, $3)
		ON CONFLICT (type, test)
		DO UPDATE SET
			ranges = EXCLUDED.ranges,
			updated_at = now()
	`

	saved := 0

	for _, doc := range docs {
		ranges, err := doc.RangesJSON()
		if err != nil {
			return 0, fmt.Errorf("failed to encode ranges for %s/%s: %w", doc.Type, doc.Test, err)
		}

		if _, err := tx.Exec(ctx, query, doc.Type, doc.Test, ranges); err != nil {
			return 0, fmt.Errorf("failed to save %s/%s: %w", doc.Type, doc.Test, err)
		}

		saved++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit documents: %w", err)
	}

	logger.Infof("Saved %d reference range documents", saved)

	return saved, nil
}

// ListDocuments returns stored documents ordered by type and test. An empty
// section returns every document.
func ListDocuments(ctx context.Context, section string) ([]RangeDocument, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, type, test, ranges, created_at, updated_at
		FROM reference_range_documents
		WHERE $1 = '' OR type = $1
		ORDER BY type ASC, test ASC
	`

	rows, err := pool.Query(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []RangeDocument
	for rows.Next() {
		var doc RangeDocument
		if err := rows.Scan(&doc.ID, &doc.Type, &doc.Test, &doc.Ranges, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// FindDocuments returns documents whose test name matches name, ignoring case.
func FindDocuments(ctx context.Context, name string) ([]RangeDocument, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, type, test, ranges, created_at, updated_at
		FROM reference_range_documents
		WHERE lower(test) = lower($1)
		ORDER BY type ASC
	`

	rows, err := pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer rows.Close()

	var docs []RangeDocument
	for rows.Next() {
		var doc RangeDocument
		if err := rows.Scan(&doc.ID, &doc.Type, &doc.Test, &doc.Ranges, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}
