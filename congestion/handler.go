// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package congestion tracks the number of outstanding messages on bridge
// lanes and signals lane senders when a lane becomes congested or
// uncongested.
package congestion

import (
	"context"
	"sync"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

var (
	_ Handler = (*LaneHandler)(nil)
	_ Handler = NoOpHandler{}
)

// Handler reacts to lane events. Every handler receives every event and
// decides on its own whether the event concerns it.
type Handler interface {
	// TryOnMessageEnqueued is called after a message has been enqueued on
	// [lane], which now holds [enqueued] undelivered messages. Returns true
	// if the handler owns [lane].
	TryOnMessageEnqueued(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) bool
	// TryOnMessagesDelivered is called after a delivery confirmation has been
	// received on [lane], which still holds [enqueued] undelivered messages.
	// Returns true if the handler owns [lane].
	TryOnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) bool
}

// NoticeSender sends out-of-band notices back to the sender of a lane
type NoticeSender interface {
	SendNotice(ctx context.Context, destination bridgehub.Location, payload []byte) error
}

// Notices are the payloads sent when a lane changes state. A nil payload is
// never sent.
type Notices struct {
	Congested   []byte
	Uncongested []byte
}

func (n Notices) payload(congested bool) []byte {
	if congested {
		return n.Congested
	}
	return n.Uncongested
}

// NoOpHandler ignores all events. It is used by bridges without fee
// economics, which never signal congestion.
type NoOpHandler struct{}

func (NoOpHandler) TryOnMessageEnqueued(context.Context, bridgehub.LaneID, uint64) bool {
	return false
}

func (NoOpHandler) TryOnMessagesDelivered(context.Context, bridgehub.LaneID, uint64) bool {
	return false
}

// LaneHandler tracks the congestion state of a single route
type LaneHandler struct {
	log        log.Logger
	route      bridgehub.SenderAndLane
	thresholds Thresholds
	notices    Notices
	sender     NoticeSender
	metrics    *Metrics

	// lock serializes events of the lane so that transitions are detected
	// and signalled in delivery order
	lock      sync.Mutex
	congested bool
}

func NewLaneHandler(
	log log.Logger,
	route bridgehub.SenderAndLane,
	thresholds Thresholds,
	notices Notices,
	sender NoticeSender,
	metrics *Metrics,
) *LaneHandler {
	return &LaneHandler{
		log:        log,
		route:      route,
		thresholds: thresholds,
		notices:    notices,
		sender:     sender,
		metrics:    metrics,
	}
}

// Route returns the route this handler tracks
func (h *LaneHandler) Route() bridgehub.SenderAndLane {
	return h.route
}

// IsCongested returns the last observed congestion state of the lane
func (h *LaneHandler) IsCongested() bool {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.congested
}

func (h *LaneHandler) TryOnMessageEnqueued(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) bool {
	if lane != h.route.Lane {
		return false
	}

	h.observe(ctx, enqueued)
	return true
}

func (h *LaneHandler) TryOnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) bool {
	if lane != h.route.Lane {
		return false
	}

	h.observe(ctx, enqueued)
	return true
}

func (h *LaneHandler) observe(ctx context.Context, enqueued uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	congested := h.thresholds.Congested(h.congested, enqueued)
	if congested == h.congested {
		return
	}

	// The state change is kept even if the notice can't be sent.
	h.congested = congested
	h.metrics.transition(h.route.Lane, congested)
	h.log.Info("lane congestion state changed",
		log.Stringer("lane", h.route.Lane),
		log.Stringer("sender", h.route.Location),
		log.Uint64("enqueuedMessages", enqueued),
		log.Bool("congested", congested),
	)

	payload := h.notices.payload(congested)
	if payload == nil {
		h.log.Debug("not sending congestion notice",
			log.Stringer("lane", h.route.Lane),
			log.UserString("reason", "notice disabled"),
		)
		return
	}

	if err := h.sender.SendNotice(ctx, h.route.Location, payload); err != nil {
		h.metrics.noticeFailed(h.route.Lane, congested)
		h.log.Warn("failed to send congestion notice",
			log.Stringer("lane", h.route.Lane),
			log.Stringer("sender", h.route.Location),
			log.Bool("congested", congested),
			log.Err(err),
		)
		return
	}
	h.metrics.noticeSent(h.route.Lane, congested)
}
