// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

// RepositoryName is the key the activity repository is propagated under.
const RepositoryName = "activity"

const table = "activity_logs"

var _ RepositoryInterface = (*Repository)(nil)

// Repository reads and writes the activity log of the schema its handle is bound to.
type Repository struct {
	h *tenancy.Handle

	tracer tracing.TracingInterface
}

func (r *Repository) Record(ctx context.Context, e *Entry) (*Entry, error) {
	ctx, span := r.tracer.Start(ctx, "activity.Repository.Record")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate activity id: %w", err)
	}

	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	out := *e
	out.ID = id.String()
	out.Metadata = metadata

	err = r.h.Statement(ctx).
		Insert(r.h.Table(table)).
		Columns("id", "user_id", "entity_type", "entity_id", "action", "metadata").
		Values(out.ID, nullString(e.UserID), e.EntityType, nullString(e.EntityID), e.Action, string(raw)).
		Suffix("RETURNING created_at").
		QueryRowContext(ctx).
		Scan(&out.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to record activity in %s: %w", r.h.Schema(), err)
	}

	return &out, nil
}

// List returns the most recent entries, optionally restricted to one user.
func (r *Repository) List(ctx context.Context, userID string, page, size int64) ([]*Entry, error) {
	ctx, span := r.tracer.Start(ctx, "activity.Repository.List")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := r.listQuery(ctx, userID, pageSize, db.Offset(page, pageSize)).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity in %s: %w", r.h.Schema(), err)
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		var (
			e        Entry
			uid, eid sql.NullString
			raw      []byte
		)

		if err := rows.Scan(&e.ID, &uid, &e.EntityType, &eid, &e.Action, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		e.UserID = uid.String
		e.EntityID = eid.String

		if err := json.Unmarshal(raw, &e.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode activity metadata: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (r *Repository) listQuery(ctx context.Context, userID string, limit, offset uint64) sq.SelectBuilder {
	q := r.h.Statement(ctx).
		Select("id", "user_id", "entity_type", "entity_id", "action", "metadata", "created_at").
		From(r.h.Table(table)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset)

	if userID != "" {
		q = q.Where(sq.Eq{"user_id": userID})
	}

	return q
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func NewRepository(h *tenancy.Handle, tracer tracing.TracingInterface) *Repository {
	return &Repository{h: h, tracer: tracer}
}

// NewFactory returns the propagator factory building one Repository per request.
func NewFactory(tracer tracing.TracingInterface) tenancy.Factory {
	return func(h *tenancy.Handle) any {
		return NewRepository(h, tracer)
	}
}
