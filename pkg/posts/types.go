// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package posts

import (
	"time"
)

type Post struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Body       string    `json:"body"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreatePostRequest creates a post, and the author profile if it is the
// author's first post in the organization.
type CreatePostRequest struct {
	OwnerID     string `json:"owner_id" validate:"required,max=128"`
	DisplayName string `json:"display_name" validate:"omitempty,max=256"`
	Body        string `json:"body" validate:"required,max=10000"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=public members private"`
}
