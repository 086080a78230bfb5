// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"errors"

	"github.com/luxfi/metric"

	"github.com/luxfi/bridgehub"
)

const (
	laneLabel   = "lane"
	signalLabel = "signal"

	congestedSignal   = "congested"
	uncongestedSignal = "uncongested"
)

var (
	laneLabels       = []string{laneLabel}
	laneSignalLabels = []string{laneLabel, signalLabel}
)

type Metrics struct {
	Transitions    metric.CounterVec // lane + signal
	NoticesSent    metric.CounterVec // lane + signal
	NoticesFailed  metric.CounterVec // lane + signal
	CongestedLanes metric.GaugeVec   // lane
}

func NewMetrics(registerer metric.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Transitions: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "congestion_transitions",
				Help:      "number of congestion state changes (n)",
			},
			laneSignalLabels,
		),
		NoticesSent: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "congestion_notices_sent",
				Help:      "number of congestion notices handed to the sender (n)",
			},
			laneSignalLabels,
		),
		NoticesFailed: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "congestion_notices_failed",
				Help:      "number of congestion notices that could not be sent (n)",
			},
			laneSignalLabels,
		),
		CongestedLanes: metric.NewGaugeVec(
			metric.GaugeOpts{
				Namespace: namespace,
				Name:      "congested",
				Help:      "1 if the lane is congested",
			},
			laneLabels,
		),
	}
	return m, errors.Join()
}

func (m *Metrics) transition(lane bridgehub.LaneID, congested bool) {
	m.Transitions.With(signalLabels(lane, congested)).Inc()

	delta := -1.0
	if congested {
		delta = 1
	}
	m.CongestedLanes.With(metric.Labels{
		laneLabel: lane.String(),
	}).Add(delta)
}

func (m *Metrics) noticeSent(lane bridgehub.LaneID, congested bool) {
	m.NoticesSent.With(signalLabels(lane, congested)).Inc()
}

func (m *Metrics) noticeFailed(lane bridgehub.LaneID, congested bool) {
	m.NoticesFailed.With(signalLabels(lane, congested)).Inc()
}

func signalLabels(lane bridgehub.LaneID, congested bool) metric.Labels {
	signal := uncongestedSignal
	if congested {
		signal = congestedSignal
	}
	return metric.Labels{
		laneLabel:   lane.String(),
		signalLabel: signal,
	}
}
