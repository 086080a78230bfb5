// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hauler

import (
	"errors"

	"github.com/luxfi/metric"

	"github.com/luxfi/bridgehub"
)

const (
	laneLabel   = "lane"
	reasonLabel = "reason"

	routeNotFoundReason   = "route_not_found"
	payloadTooLargeReason = "payload_too_large"
	sendFailedReason      = "send_failed"
)

var (
	laneLabels       = []string{laneLabel}
	laneReasonLabels = []string{laneLabel, reasonLabel}
)

type metrics struct {
	exported      metric.CounterVec // lane
	exportedBytes metric.CounterVec // lane
	rejected      metric.CounterVec // lane + reason
	delivered     metric.CounterVec // lane
}

func newMetrics(registerer metric.Registerer, namespace string) (*metrics, error) {
	m := &metrics{
		exported: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "exported_msgs",
				Help:      "number of messages handed to the transport (n)",
			},
			laneLabels,
		),
		exportedBytes: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "exported_bytes",
				Help:      "number of payload bytes handed to the transport",
			},
			laneLabels,
		),
		rejected: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_msgs",
				Help:      "number of outbound messages that were not exported (n)",
			},
			laneReasonLabels,
		),
		delivered: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "delivery_confirmations",
				Help:      "number of delivery confirmations received (n)",
			},
			laneLabels,
		),
	}
	return m, errors.Join()
}

func (m *metrics) reject(lane bridgehub.LaneID, reason string) {
	m.rejected.With(metric.Labels{
		laneLabel:   lane.String(),
		reasonLabel: reason,
	}).Inc()
}

func laneLabelValue(lane bridgehub.LaneID) metric.Labels {
	return metric.Labels{
		laneLabel: lane.String(),
	}
}
