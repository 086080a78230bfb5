// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package inbound

import (
	"context"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

var _ MessageDispatch = (*Dispatch)(nil)

// Dispatcher executes messages received over a lane
type Dispatcher interface {
	// Weight returns the cost of dispatching [msg]
	Weight(msg *message.Message) uint64
	// Dispatch executes [msg]. An error fails the message, not the batch.
	Dispatch(ctx context.Context, msg *message.Message) error
}

// MessageDispatch is a Dispatcher that can refuse messages of a lane
type MessageDispatch interface {
	Dispatcher
	IsActive(lane bridgehub.LaneID) bool
}

// Dispatch always accepts messages. Channel state is enforced by the Gate
// before messages are proven, so it isn't checked again at dispatch time.
type Dispatch struct {
	Dispatcher
}

func NewDispatch(dispatcher Dispatcher) *Dispatch {
	return &Dispatch{Dispatcher: dispatcher}
}

func (*Dispatch) IsActive(bridgehub.LaneID) bool {
	return true
}

// DispatchResult is the outcome of dispatching a single message
type DispatchResult struct {
	Nonce  uint64
	Weight uint64
	Err    error
}

// DispatchAll dispatches every message of [proved] in nonce order. Messages
// aren't dispatched at all if [dispatch] refuses the lane.
func DispatchAll(ctx context.Context, dispatch MessageDispatch, proved *ProvedMessages) ([]DispatchResult, bool) {
	if !dispatch.IsActive(proved.Lane) {
		return nil, false
	}

	results := make([]DispatchResult, 0, len(proved.Messages))
	for i := range proved.Messages {
		msg := &proved.Messages[i]
		results = append(results, DispatchResult{
			Nonce:  msg.Nonce,
			Weight: dispatch.Weight(msg),
			Err:    dispatch.Dispatch(ctx, msg),
		})
	}
	return results, true
}
