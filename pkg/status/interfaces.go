// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
)

// PingerInterface is implemented by every dependency checked by the status endpoint.
type PingerInterface interface {
	Ping(ctx context.Context) error
}
