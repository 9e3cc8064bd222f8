// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
)

type RepositoryInterface interface {
	Record(ctx context.Context, e *Entry) (*Entry, error)
	List(ctx context.Context, userID string, page, size int64) ([]*Entry, error)
}
