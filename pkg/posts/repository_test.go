// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package posts

import (
	"context"
	"reflect"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package posts -destination ./mock_db.go -source=../../internal/db/interfaces.go

func newTestRepository(t *testing.T, ctrl *gomock.Controller, schema string) *Repository {
	t.Helper()

	mockDB := NewMockDBClientInterface(ctrl)
	mockDB.EXPECT().Statement(gomock.Any()).Return(sq.StatementBuilder.PlaceholderFormat(sq.Dollar)).AnyTimes()

	h, err := tenancy.NewConnector(mockDB).Handle(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewRepository(h, tracing.NewNoopTracer())
}

func TestRepositoryListQuery(t *testing.T) {
	tests := []struct {
		name     string
		ownerID  string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "public feed",
			wantSQL:  `SELECT id, owner_id, body, visibility, created_at, updated_at FROM "org_acme"."posts" WHERE visibility = $1 ORDER BY created_at DESC, id DESC LIMIT 100 OFFSET 0`,
			wantArgs: []any{"public"},
		},
		{
			name:     "by owner",
			ownerID:  "u1",
			wantSQL:  `SELECT id, owner_id, body, visibility, created_at, updated_at FROM "org_acme"."posts" WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT 100 OFFSET 0`,
			wantArgs: []any{"u1"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			q, args, err := newTestRepository(t, ctrl, "org_acme").listQuery(context.Background(), test.ownerID, 100, 0).ToSql()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if q != test.wantSQL {
				t.Errorf("expected query\n%s\ngot\n%s", test.wantSQL, q)
			}

			if !reflect.DeepEqual(args, test.wantArgs) {
				t.Errorf("expected args %v, got %v", test.wantArgs, args)
			}
		})
	}
}

func TestRepositoryProfileInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newTestRepository(t, ctrl, "org_acme")

	q, args, err := repo.profileInsert(context.Background(), &CreatePostRequest{OwnerID: "u1"}).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `INSERT INTO "org_acme"."user_profiles" (user_id,display_name) VALUES ($1,$2) ON CONFLICT (user_id) DO NOTHING`
	if q != want {
		t.Errorf("expected query\n%s\ngot\n%s", want, q)
	}

	if !reflect.DeepEqual(args, []any{"u1", "u1"}) {
		t.Errorf("expected display name to default to the owner id, got %v", args)
	}
}

func TestRepositoriesNeverShareSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := newTestRepository(t, ctrl, "org_a")
	b := newTestRepository(t, ctrl, "org_b")

	qa, _, _ := a.listQuery(context.Background(), "", 10, 0).ToSql()
	qb, _, _ := b.listQuery(context.Background(), "", 10, 0).ToSql()

	if qa == qb {
		t.Fatalf("repositories of different tenants built the same query %q", qa)
	}
}
