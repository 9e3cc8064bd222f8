// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"strings"
	"testing"
)

type request struct {
	ID   string `json:"id" validate:"omitempty,organization_id"`
	Body string `json:"body" validate:"required,max=5"`
}

func TestValidatorStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     request
		wantErr []string
	}{
		{name: "valid", req: request{ID: "acme-corp-123", Body: "hi"}},
		{name: "optional id", req: request{Body: "hi"}},
		{name: "bad id", req: request{ID: "acme corp", Body: "hi"}, wantErr: []string{"id failed on organization_id"}},
		{name: "missing body", req: request{}, wantErr: []string{"body failed on required"}},
		{name: "long body", req: request{Body: "toolong"}, wantErr: []string{"body failed on max=5"}},
		{name: "both", req: request{ID: "a;b"}, wantErr: []string{"id failed", "body failed"}},
	}

	v := NewValidator()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := v.Struct(test.req)

			if len(test.wantErr) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error, got none")
			}

			for _, want := range test.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}
		})
	}
}
