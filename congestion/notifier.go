// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"context"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

var _ Handler = (*Notifier)(nil)

// Notifier broadcasts lane events to a list of handlers. Several independently
// configured lanes can share one event stream this way: each handler only
// reacts to the lane it owns.
type Notifier struct {
	log      log.Logger
	handlers []Handler
}

func NewNotifier(log log.Logger, handlers ...Handler) *Notifier {
	return &Notifier{
		log:      log,
		handlers: append([]Handler(nil), handlers...),
	}
}

// OnMessageEnqueued broadcasts an enqueue event
func (n *Notifier) OnMessageEnqueued(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) {
	if !n.TryOnMessageEnqueued(ctx, lane, enqueued) {
		n.log.Debug("no congestion handler for lane",
			log.UserString("event", "enqueued"),
			log.Stringer("lane", lane),
		)
	}
}

// OnMessagesDelivered broadcasts a delivery confirmation event
func (n *Notifier) OnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) {
	if !n.TryOnMessagesDelivered(ctx, lane, enqueued) {
		n.log.Debug("no congestion handler for lane",
			log.UserString("event", "delivered"),
			log.Stringer("lane", lane),
		)
	}
}

// TryOnMessageEnqueued calls every handler and returns true if any of them
// owns [lane]
func (n *Notifier) TryOnMessageEnqueued(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) bool {
	matched := false
	for _, handler := range n.handlers {
		if handler.TryOnMessageEnqueued(ctx, lane, enqueued) {
			matched = true
		}
	}
	return matched
}

// TryOnMessagesDelivered calls every handler and returns true if any of them
// owns [lane]
func (n *Notifier) TryOnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) bool {
	matched := false
	for _, handler := range n.handlers {
		if handler.TryOnMessagesDelivered(ctx, lane, enqueued) {
			matched = true
		}
	}
	return matched
}
