// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hauler

import (
	"context"
	"fmt"

	"github.com/luxfi/metric"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

// DeliveryAdapter forwards delivery confirmations reported by the transport
// to the listener
type DeliveryAdapter struct {
	log      log.Logger
	listener Listener
	metrics  *metrics
}

func NewDeliveryAdapter(
	log log.Logger,
	listener Listener,
	registerer metric.Registerer,
	namespace string,
) (*DeliveryAdapter, error) {
	metrics, err := newMetrics(registerer, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize delivery metrics: %w", err)
	}

	return &DeliveryAdapter{
		log:      log,
		listener: listener,
		metrics:  metrics,
	}, nil
}

// OnMessagesDelivered is called by the transport once messages on [lane]
// have been confirmed. [enqueued] is the number of messages still waiting
// for a confirmation.
func (d *DeliveryAdapter) OnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) {
	d.metrics.delivered.With(laneLabelValue(lane)).Inc()
	d.log.Debug("received delivery confirmation",
		log.Stringer("lane", lane),
		log.Uint64("enqueuedMessages", enqueued),
	)
	d.listener.OnMessagesDelivered(ctx, lane, enqueued)
}
