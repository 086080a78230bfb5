// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgehub

import "fmt"

// Error is a bridge-level failure of a single operation. It never indicates
// that the bridge itself is unusable.
type Error struct {
	Code    int32
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("bridge error %d: %s", e.Code, e.Message)
}

var (
	// ErrRouteNotFound is returned when a lane or sender is not configured on
	// this bridge instance
	ErrRouteNotFound = &Error{
		Code:    -1,
		Message: "route not found",
	}
	// ErrChannelInactive is returned when the local outbound channel tied to
	// a lane is congested or suspended. Callers may retry later.
	ErrChannelInactive = &Error{
		Code:    -2,
		Message: "outbound channel with the target sibling chain is inactive",
	}
	// ErrStaleTransaction is returned when a message delivery transaction
	// references a lane whose outbound channel is inactive
	ErrStaleTransaction = &Error{
		Code:    -3,
		Message: "stale transaction",
	}
	// ErrPayloadTooLarge is returned when an outbound payload exceeds the
	// maximal size accepted by the bridge
	ErrPayloadTooLarge = &Error{
		Code:    -4,
		Message: "payload too large",
	}
	// ErrLaneMismatch is returned when a proof targets a different lane than
	// the one it was submitted for
	ErrLaneMismatch = &Error{
		Code:    -5,
		Message: "lane mismatch",
	}
	// ErrThrottled is returned when a lane exceeds its inbound proof
	// verification budget
	ErrThrottled = &Error{
		Code:    -6,
		Message: "throttled",
	}
)
