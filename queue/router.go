// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/bridgehub"
)

var (
	errUnknownDestination   = errors.New("unknown destination")
	errDuplicateDestination = errors.New("duplicate destination")
)

// Router enqueues messages on the channel of their destination without
// blocking
type Router struct {
	channels map[bridgehub.Location]*Channel
}

func NewRouter(channels ...*Channel) (*Router, error) {
	r := &Router{
		channels: make(map[bridgehub.Location]*Channel, len(channels)),
	}
	for _, channel := range channels {
		destination := channel.Destination()
		if _, ok := r.channels[destination]; ok {
			return nil, fmt.Errorf("%w: %s", errDuplicateDestination, destination)
		}
		r.channels[destination] = channel
	}
	return r, nil
}

// Channel returns the channel towards [destination]
func (r *Router) Channel(destination bridgehub.Location) (*Channel, bool) {
	channel, ok := r.channels[destination]
	return channel, ok
}

// SendNotice enqueues [payload] on the channel towards [destination]
func (r *Router) SendNotice(_ context.Context, destination bridgehub.Location, payload []byte) error {
	channel, ok := r.channels[destination]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownDestination, destination)
	}
	return channel.TryEnqueue(payload)
}
