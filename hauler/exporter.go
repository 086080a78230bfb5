// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hauler multiplexes the outbound traffic of several senders over the
// lanes of a single bridge.
package hauler

import (
	"context"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

// Ticket is a validated outbound message, ready to be delivered
type Ticket struct {
	Route     bridgehub.SenderAndLane
	Payload   []byte
	MessageID ids.ID
}

// Exporter validates outbound messages against the lanes of a bridge and
// hands them to the transport.
type Exporter struct {
	log            log.Logger
	registry       *bridgehub.Registry
	transport      Transport
	listener       Listener
	maxPayloadSize int
	metrics        *metrics
}

// NewExporter returns a new exporter. A zero [maxPayloadSize] disables the
// payload size check.
func NewExporter(
	log log.Logger,
	registry *bridgehub.Registry,
	transport Transport,
	listener Listener,
	maxPayloadSize int,
	registerer metric.Registerer,
	namespace string,
) (*Exporter, error) {
	metrics, err := newMetrics(registerer, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exporter metrics: %w", err)
	}

	return &Exporter{
		log:            log,
		registry:       registry,
		transport:      transport,
		listener:       listener,
		maxPayloadSize: maxPayloadSize,
		metrics:        metrics,
	}, nil
}

// Validate checks that [route] is configured on this bridge and that
// [payload] can be carried by it. Nothing is sent.
func (e *Exporter) Validate(route bridgehub.SenderAndLane, payload []byte) (Ticket, error) {
	configured, ok := e.registry.Route(route.Lane)
	if !ok || configured.Location != route.Location {
		e.metrics.reject(route.Lane, routeNotFoundReason)
		return Ticket{}, fmt.Errorf("%w: %s", bridgehub.ErrRouteNotFound, route)
	}
	if e.maxPayloadSize > 0 && len(payload) > e.maxPayloadSize {
		e.metrics.reject(route.Lane, payloadTooLargeReason)
		return Ticket{}, fmt.Errorf("%w: %d > %d",
			bridgehub.ErrPayloadTooLarge,
			len(payload),
			e.maxPayloadSize,
		)
	}

	messageID, err := ids.ToID(hash.ComputeHash256(payload))
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{
		Route:     route,
		Payload:   payload,
		MessageID: messageID,
	}, nil
}

// Deliver sends a validated message. Transport errors are returned as is.
// Once the transport accepted the message the enqueue event is reported to
// the listener; the listener can't fail the delivery.
func (e *Exporter) Deliver(ctx context.Context, ticket Ticket) (ids.ID, error) {
	lane := ticket.Route.Lane
	artifacts, err := e.transport.Send(ctx, lane, ticket.Payload)
	if err != nil {
		e.metrics.reject(lane, sendFailedReason)
		e.log.Error("failed to send outbound message",
			log.Stringer("lane", lane),
			log.Stringer("messageID", ticket.MessageID),
			log.Err(err),
		)
		return ids.Empty, err
	}

	labels := laneLabelValue(lane)
	e.metrics.exported.With(labels).Inc()
	e.metrics.exportedBytes.With(labels).Add(float64(len(ticket.Payload)))
	e.log.Debug("exported outbound message",
		log.Stringer("lane", lane),
		log.Stringer("messageID", ticket.MessageID),
		log.Uint64("nonce", artifacts.Nonce),
		log.Uint64("enqueuedMessages", artifacts.EnqueuedMessages),
	)

	e.listener.OnMessageEnqueued(ctx, lane, artifacts.EnqueuedMessages)
	return ticket.MessageID, nil
}

// Export validates and delivers [payload] over [route]
func (e *Exporter) Export(ctx context.Context, route bridgehub.SenderAndLane, payload []byte) (ids.ID, error) {
	ticket, err := e.Validate(route, payload)
	if err != nil {
		return ids.Empty, err
	}
	return e.Deliver(ctx, ticket)
}

// ExportFrom exports [payload] over the lane configured for [sender]
func (e *Exporter) ExportFrom(ctx context.Context, sender bridgehub.Location, payload []byte) (ids.ID, error) {
	route, ok := e.registry.RouteFor(sender)
	if !ok {
		e.log.Debug("dropping outbound message",
			log.Stringer("sender", sender),
			log.UserString("reason", "unknown sender"),
		)
		return ids.Empty, fmt.Errorf("%w: sender %s", bridgehub.ErrRouteNotFound, sender)
	}
	return e.Export(ctx, route, payload)
}
