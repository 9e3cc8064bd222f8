// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import "testing"

func TestPagination(t *testing.T) {
	tests := []struct {
		page, size int64
		wantSize   uint64
		wantOffset uint64
	}{
		{page: 0, size: 0, wantSize: 100, wantOffset: 0},
		{page: 1, size: 10, wantSize: 10, wantOffset: 0},
		{page: 3, size: 10, wantSize: 10, wantOffset: 20},
		{page: -4, size: 25, wantSize: 25, wantOffset: 0},
		{page: 2, size: 10000, wantSize: 500, wantOffset: 500},
	}

	for _, test := range tests {
		size := PageSize(test.size)
		if size != test.wantSize {
			t.Errorf("PageSize(%d) = %d, expected %d", test.size, size, test.wantSize)
		}
		if offset := Offset(test.page, size); offset != test.wantOffset {
			t.Errorf("Offset(%d, %d) = %d, expected %d", test.page, size, offset, test.wantOffset)
		}
	}
}
