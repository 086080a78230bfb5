// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hauler

import (
	"context"

	"github.com/luxfi/bridgehub"
)

// SendArtifacts is returned by the transport after a message has been
// accepted on a lane
type SendArtifacts struct {
	// Nonce is the nonce assigned to the message
	Nonce uint64
	// EnqueuedMessages is the number of messages on the lane that haven't
	// been confirmed as delivered yet, including this one
	EnqueuedMessages uint64
}

// Transport hands outbound messages to the underlying messaging layer
type Transport interface {
	// Send enqueues [payload] on [lane]. The message isn't delivered when
	// Send returns, only accepted.
	Send(ctx context.Context, lane bridgehub.LaneID, payload []byte) (SendArtifacts, error)
}

// Listener is notified of the lane events produced by the multiplexer
type Listener interface {
	OnMessageEnqueued(ctx context.Context, lane bridgehub.LaneID, enqueued uint64)
	OnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64)
}
