// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusProvisioning Status = "provisioning"
	StatusActive       Status = "active"
	StatusSuspended    Status = "suspended"
	// StatusDeleted is terminal and only reached when an administrator drops the organization.
	StatusDeleted Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return slices.Contains([]Status{StatusProvisioning, StatusActive, StatusSuspended, StatusDeleted}, s)
}

// IsUsable reports whether tenant-scoped operations may run for an organization in this status.
func (s Status) IsUsable() bool {
	return s == StatusActive
}

// ParseStatus converts a persisted status value.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown organization status %q", v)
	}
	return s, nil
}

type Transition string

const (
	TransitionMarkAsProvisioned Transition = "markAsProvisioned"
	TransitionSuspend           Transition = "suspend"
	TransitionReactivate        Transition = "reactivate"
)

type edge struct {
	From Status
	To   Status
}

var transitions = map[Transition]edge{
	TransitionMarkAsProvisioned: {From: StatusProvisioning, To: StatusActive},
	TransitionSuspend:           {From: StatusActive, To: StatusSuspended},
	TransitionReactivate:        {From: StatusSuspended, To: StatusActive},
}

// Transitions returns every known transition.
func Transitions() []Transition {
	return []Transition{TransitionMarkAsProvisioned, TransitionSuspend, TransitionReactivate}
}

// Endpoints returns the required source status and the resulting status of t.
func (t Transition) Endpoints() (Status, Status, error) {
	e, ok := transitions[t]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown transition %q", ErrInvalidStateTransition, t)
	}
	return e.From, e.To, nil
}

// Next returns the status reached by applying t to s.
func (s Status) Next(t Transition) (Status, error) {
	from, to, err := t.Endpoints()
	if err != nil {
		return s, err
	}
	if s != from {
		return s, fmt.Errorf("%w: cannot %s from %s", ErrInvalidStateTransition, t, s)
	}
	return to, nil
}
