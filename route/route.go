/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package route defines the route entity and the in-memory store that keeps routes for the lifetime
// of the process.
package route

import (
	"github.com/google/uuid"
)

// Status is the lifecycle state of a route.
type Status int

// Enumeration of Status
const (
	// StatusActive is the state of every newly created route.
	StatusActive Status = iota

	// StatusFinished is a valid state that no operation transitions a route into yet.
	StatusFinished
)

// String implements fmt.Stringer.
func (status Status) String() string {
	switch status {
	case StatusActive:
		return "Active"
	case StatusFinished:
		return "Finished"
	}
	return "Unknown"
}

// Route is a route record. ID and UserID never change after creation.
type Route struct {
	// ID is generated by the store when the route is created.
	ID uuid.UUID

	// UserID identifies the user who owns the route.
	UserID uuid.UUID

	Status Status
}

// NewRoute is a request to create a route.
type NewRoute struct {
	UserID uuid.UUID
}
