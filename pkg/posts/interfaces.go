// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package posts

import (
	"context"
)

type RepositoryInterface interface {
	Create(ctx context.Context, req *CreatePostRequest) (*Post, error)
	List(ctx context.Context, ownerID string, page, size int64) ([]*Post, error)
}
