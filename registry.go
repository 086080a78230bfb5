// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgehub

import (
	"errors"
	"fmt"

	"github.com/luxfi/math/set"
)

var (
	errEmptyLane       = errors.New("empty lane id")
	errDuplicateLane   = errors.New("duplicate lane")
	errDuplicateSender = errors.New("duplicate sender")
)

// Entry is the configuration of a single lane of a bridge
type Entry struct {
	// Route is the sender that originates traffic on the lane
	Route SenderAndLane
	// Status reports whether the local outbound channel the lane dispatches
	// into is congested. A nil Status means no local backpressure is
	// tracked for the lane.
	Status StatusProvider
}

// Registry maps the lanes of a single bridge instance to their routes and
// channel status providers.
//
// The registry is immutable after construction and safe for concurrent use.
// Bridges have few lanes, so lookups scan the entries in order.
type Registry struct {
	entries []Entry
}

// NewRegistry returns a registry of [entries]. Duplicate lanes or senders
// are configuration errors.
func NewRegistry(entries ...Entry) (*Registry, error) {
	var (
		lanes   = set.NewSet[LaneID](len(entries))
		senders = set.NewSet[Location](len(entries))
	)
	for _, entry := range entries {
		lane := entry.Route.Lane
		switch {
		case lane == EmptyLaneID:
			return nil, fmt.Errorf("route %s: %w", entry.Route, errEmptyLane)
		case lanes.Contains(lane):
			return nil, fmt.Errorf("lane %s: %w", lane, errDuplicateLane)
		case senders.Contains(entry.Route.Location):
			return nil, fmt.Errorf("sender %s: %w", entry.Route.Location, errDuplicateSender)
		}
		lanes.Add(lane)
		senders.Add(entry.Route.Location)
	}

	return &Registry{
		entries: append([]Entry(nil), entries...),
	}, nil
}

// Lookup returns the entry configured for [lane]
func (r *Registry) Lookup(lane LaneID) (Entry, bool) {
	for _, entry := range r.entries {
		if entry.Route.Lane == lane {
			return entry, true
		}
	}
	return Entry{}, false
}

// Route returns the route configured for [lane]
func (r *Registry) Route(lane LaneID) (SenderAndLane, bool) {
	entry, ok := r.Lookup(lane)
	return entry.Route, ok
}

// Status returns the status provider configured for [lane]. Returns false if
// the lane is unknown or unmonitored.
func (r *Registry) Status(lane LaneID) (StatusProvider, bool) {
	entry, ok := r.Lookup(lane)
	if !ok || entry.Status == nil {
		return nil, false
	}
	return entry.Status, true
}

// RouteFor returns the route of the sender at [location]
func (r *Registry) RouteFor(location Location) (SenderAndLane, bool) {
	for _, entry := range r.entries {
		if entry.Route.Location == location {
			return entry.Route, true
		}
	}
	return SenderAndLane{}, false
}

// IsChannelActive returns true unless the outbound channel associated with
// [lane] reports congestion.
//
// Lanes without a status provider are treated as active: the absence of a
// provider means no local backpressure is tracked, not that the lane is
// down.
func (r *Registry) IsChannelActive(lane LaneID) bool {
	provider, ok := r.Status(lane)
	if !ok {
		return true
	}
	return !provider.IsCongested()
}

// Lanes returns the configured lanes in configuration order
func (r *Registry) Lanes() []LaneID {
	lanes := make([]LaneID, len(r.entries))
	for i, entry := range r.entries {
		lanes[i] = entry.Route.Lane
	}
	return lanes
}

// Len returns the number of configured lanes
func (r *Registry) Len() int {
	return len(r.entries)
}
