// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgehub

var (
	_ StatusProvider = AlwaysActive{}
	_ StatusProvider = StatusProviderFunc(nil)
)

// StatusProvider reports the state of the local outbound channel that
// messages received over a lane are dispatched into.
//
// Implementations must be pure reads: they may be called many times per
// block without side effects.
type StatusProvider interface {
	// IsCongested returns true if the channel can't accept more messages
	IsCongested() bool
}

// AlwaysActive is used by bridges that don't track local backpressure, e.g.
// bridges without fee or congestion economics.
type AlwaysActive struct{}

func (AlwaysActive) IsCongested() bool {
	return false
}

// StatusProviderFunc adapts a function to a StatusProvider
type StatusProviderFunc func() bool

func (f StatusProviderFunc) IsCongested() bool {
	return f()
}
