// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package posts

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

// RepositoryName is the key the posts repository is propagated under.
const RepositoryName = "posts"

const (
	postsTable    = "posts"
	profilesTable = "user_profiles"

	defaultVisibility = "public"
)

var _ RepositoryInterface = (*Repository)(nil)

// Repository reads and writes posts of the schema its handle is bound to.
type Repository struct {
	h *tenancy.Handle

	tracer tracing.TracingInterface
}

// Create inserts the post, creating the author profile first when missing.
// Both statements run on the request transaction when there is one.
func (r *Repository) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	ctx, span := r.tracer.Start(ctx, "posts.Repository.Create")
	defer span.End()

	if _, err := r.profileInsert(ctx, req).ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure profile %s in %s: %w", req.OwnerID, r.h.Schema(), err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post id: %w", err)
	}

	p := &Post{
		ID:         id.String(),
		OwnerID:    req.OwnerID,
		Body:       req.Body,
		Visibility: req.Visibility,
	}
	if p.Visibility == "" {
		p.Visibility = defaultVisibility
	}

	err = r.h.Statement(ctx).
		Insert(r.h.Table(postsTable)).
		Columns("id", "owner_id", "body", "visibility").
		Values(p.ID, p.OwnerID, p.Body, p.Visibility).
		Suffix("RETURNING created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if storage.IsForeignKeyViolation(err) {
			return nil, storage.WrapForeignKeyError(err, "post owner "+req.OwnerID)
		}
		return nil, fmt.Errorf("failed to create post in %s: %w", r.h.Schema(), err)
	}

	return p, nil
}

func (r *Repository) profileInsert(ctx context.Context, req *CreatePostRequest) sq.InsertBuilder {
	name := req.DisplayName
	if name == "" {
		name = req.OwnerID
	}

	return r.h.Statement(ctx).
		Insert(r.h.Table(profilesTable)).
		Columns("user_id", "display_name").
		Values(req.OwnerID, name).
		Suffix("ON CONFLICT (user_id) DO NOTHING")
}

// List returns the public feed, or every post of one owner when ownerID is set.
func (r *Repository) List(ctx context.Context, ownerID string, page, size int64) ([]*Post, error) {
	ctx, span := r.tracer.Start(ctx, "posts.Repository.List")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := r.listQuery(ctx, ownerID, pageSize, db.Offset(page, pageSize)).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts in %s: %w", r.h.Schema(), err)
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Body, &p.Visibility, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return posts, nil
}

func (r *Repository) listQuery(ctx context.Context, ownerID string, limit, offset uint64) sq.SelectBuilder {
	q := r.h.Statement(ctx).
		Select("id", "owner_id", "body", "visibility", "created_at", "updated_at").
		From(r.h.Table(postsTable)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset)

	if ownerID != "" {
		return q.Where(sq.Eq{"owner_id": ownerID})
	}

	return q.Where(sq.Eq{"visibility": defaultVisibility})
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
