// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"fmt"
)

// statement is one idempotent DDL statement; %[1]s is the quoted schema.
type statement struct {
	name string
	ddl  string
}

func (s statement) render(quotedSchema string) string {
	return fmt.Sprintf(s.ddl, quotedSchema)
}

// tables are listed in dependency order, foreign keys only point at
// tables of the same schema.
var tables = []statement{
	{
		name: "user_profiles",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.user_profiles (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id      TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL,
	bio          TEXT,
	avatar_url   TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "posts",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.posts (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id   TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	body       TEXT NOT NULL,
	visibility TEXT NOT NULL DEFAULT 'public' CHECK (visibility IN ('public', 'members', 'private')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "post_likes",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.post_likes (
	post_id    UUID NOT NULL REFERENCES %[1]s.posts (id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (post_id, user_id)
)`,
	},
	{
		name: "post_comments",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.post_comments (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	post_id    UUID NOT NULL REFERENCES %[1]s.posts (id) ON DELETE CASCADE,
	author_id  TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	body       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "groups",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s."groups" (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name        TEXT NOT NULL,
	description TEXT,
	owner_id    TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "group_members",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.group_members (
	group_id  UUID NOT NULL REFERENCES %[1]s."groups" (id) ON DELETE CASCADE,
	user_id   TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	role      TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('owner', 'admin', 'member')),
	joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (group_id, user_id)
)`,
	},
	{
		name: "conversations",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.conversations (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title      TEXT,
	is_group   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "conversation_participants",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.conversation_participants (
	conversation_id UUID NOT NULL REFERENCES %[1]s.conversations (id) ON DELETE CASCADE,
	user_id         TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	joined_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_read_at    TIMESTAMPTZ,
	PRIMARY KEY (conversation_id, user_id)
)`,
	},
	{
		name: "messages",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.messages (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	conversation_id UUID NOT NULL REFERENCES %[1]s.conversations (id) ON DELETE CASCADE,
	sender_id       TEXT NOT NULL REFERENCES %[1]s.user_profiles (user_id) ON DELETE CASCADE,
	body            TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		name: "activity_logs",
		ddl: `CREATE TABLE IF NOT EXISTS %[1]s.activity_logs (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id     TEXT,
	entity_type TEXT NOT NULL,
	entity_id   TEXT,
	action      TEXT NOT NULL,
	metadata    JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
}

// indexes back the tenant repository query patterns: owner and visibility
// feeds, engagement by post, membership by user, message timelines and
// activity log lookups. Index names are schema local.
var indexes = []statement{
	{name: "posts_owner_created_idx", ddl: `CREATE INDEX IF NOT EXISTS posts_owner_created_idx ON %[1]s.posts (owner_id, created_at DESC)`},
	{name: "posts_visibility_created_idx", ddl: `CREATE INDEX IF NOT EXISTS posts_visibility_created_idx ON %[1]s.posts (visibility, created_at DESC)`},
	{name: "post_likes_post_idx", ddl: `CREATE INDEX IF NOT EXISTS post_likes_post_idx ON %[1]s.post_likes (post_id, created_at DESC)`},
	{name: "post_likes_user_idx", ddl: `CREATE INDEX IF NOT EXISTS post_likes_user_idx ON %[1]s.post_likes (user_id)`},
	{name: "post_comments_post_created_idx", ddl: `CREATE INDEX IF NOT EXISTS post_comments_post_created_idx ON %[1]s.post_comments (post_id, created_at)`},
	{name: "post_comments_author_idx", ddl: `CREATE INDEX IF NOT EXISTS post_comments_author_idx ON %[1]s.post_comments (author_id)`},
	{name: "group_members_user_idx", ddl: `CREATE INDEX IF NOT EXISTS group_members_user_idx ON %[1]s.group_members (user_id)`},
	{name: "conversation_participants_user_idx", ddl: `CREATE INDEX IF NOT EXISTS conversation_participants_user_idx ON %[1]s.conversation_participants (user_id)`},
	{name: "messages_conversation_created_idx", ddl: `CREATE INDEX IF NOT EXISTS messages_conversation_created_idx ON %[1]s.messages (conversation_id, created_at DESC)`},
	{name: "messages_sender_created_idx", ddl: `CREATE INDEX IF NOT EXISTS messages_sender_created_idx ON %[1]s.messages (sender_id, created_at DESC)`},
	{name: "activity_logs_user_created_idx", ddl: `CREATE INDEX IF NOT EXISTS activity_logs_user_created_idx ON %[1]s.activity_logs (user_id, created_at DESC)`},
	{name: "activity_logs_entity_idx", ddl: `CREATE INDEX IF NOT EXISTS activity_logs_entity_idx ON %[1]s.activity_logs (entity_type, entity_id)`},
	{name: "activity_logs_action_created_idx", ddl: `CREATE INDEX IF NOT EXISTS activity_logs_action_created_idx ON %[1]s.activity_logs (action, created_at DESC)`},
}

// TableNames returns the fixed set of tables every tenant schema holds.
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.name)
	}
	return names
}

// IndexNames returns the fixed set of secondary indexes every tenant schema holds.
func IndexNames() []string {
	names := make([]string, 0, len(indexes))
	for _, i := range indexes {
		names = append(names, i.name)
	}
	return names
}
