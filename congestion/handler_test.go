// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

var errSendFailed = errors.New("send failed")

type sentNotice struct {
	destination bridgehub.Location
	payload     []byte
}

// recordingSender records every notice it is asked to send
type recordingSender struct {
	lock    sync.Mutex
	err     error
	notices []sentNotice
}

func (r *recordingSender) SendNotice(_ context.Context, destination bridgehub.Location, payload []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.notices = append(r.notices, sentNotice{
		destination: destination,
		payload:     payload,
	})
	return r.err
}

func (r *recordingSender) sent() []sentNotice {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]sentNotice(nil), r.notices...)
}

func newTestMetrics(t *testing.T) *Metrics {
	m, err := NewMetrics(metric.NewRegistry(), "")
	require.NoError(t, err)
	return m
}

func newTestHandler(t *testing.T, route bridgehub.SenderAndLane, thresholds Thresholds, notices Notices, sender NoticeSender) *LaneHandler {
	return NewLaneHandler(
		log.NewNoOpLogger(),
		route,
		thresholds,
		notices,
		sender,
		newTestMetrics(t),
	)
}

func TestThresholdsVerify(t *testing.T) {
	require.NoError(t, DefaultThresholds().Verify())
	require.ErrorIs(t, Thresholds{High: 10, Low: 10}.Verify(), ErrInvalidThresholds)
	require.ErrorIs(t, Thresholds{High: 10, Low: 11}.Verify(), ErrInvalidThresholds)
}

func TestThresholdsCongested(t *testing.T) {
	thresholds := Thresholds{High: 8_000, Low: 2_000}

	tests := []struct {
		name        string
		prev        bool
		outstanding uint64
		want        bool
	}{
		{name: "below high", prev: false, outstanding: 5_000, want: false},
		{name: "at high", prev: false, outstanding: 8_000, want: false},
		{name: "above high", prev: false, outstanding: 8_001, want: true},
		{name: "congested above low", prev: true, outstanding: 2_001, want: true},
		{name: "congested at low", prev: true, outstanding: 2_000, want: false},
		{name: "congested below low", prev: true, outstanding: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, thresholds.Congested(tt.prev, tt.outstanding))
		})
	}
}

func TestLaneHandlerNoticeSequence(t *testing.T) {
	require := require.New(t)

	var (
		ctx         = context.Background()
		lane        = bridgehub.LaneIDFromUint32(1)
		route       = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
		congested   = []byte("congested")
		uncongested = []byte("uncongested")
		sender      = &recordingSender{}
	)
	handler := newTestHandler(t, route, Thresholds{High: 8_000, Low: 2_000}, Notices{
		Congested:   congested,
		Uncongested: uncongested,
	}, sender)

	steps := []struct {
		outstanding uint64
		wantNotices int
	}{
		{outstanding: 1_000, wantNotices: 0},
		{outstanding: 5_000, wantNotices: 0},
		{outstanding: 8_200, wantNotices: 1},
		{outstanding: 9_000, wantNotices: 1},
		{outstanding: 3_000, wantNotices: 1},
		{outstanding: 1_500, wantNotices: 2},
	}
	for _, step := range steps {
		require.True(handler.TryOnMessageEnqueued(ctx, lane, step.outstanding))
		require.Len(sender.sent(), step.wantNotices, "after %d outstanding messages", step.outstanding)
	}

	notices := sender.sent()
	require.Equal(congested, notices[0].payload)
	require.Equal(uncongested, notices[1].payload)
	require.Equal(route.Location, notices[0].destination)
	require.False(handler.IsCongested())
}

func TestLaneHandlerDeliveryClearsCongestion(t *testing.T) {
	require := require.New(t)

	var (
		ctx    = context.Background()
		lane   = bridgehub.LaneIDFromUint32(1)
		route  = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
		sender = &recordingSender{}
	)
	congested, uncongested := message.CongestionNotices(ids.GenerateTestID())
	handler := newTestHandler(t, route, DefaultThresholds(), Notices{
		Congested:   congested,
		Uncongested: uncongested,
	}, sender)

	require.True(handler.TryOnMessageEnqueued(ctx, lane, DefaultHighWatermark+1))
	require.True(handler.IsCongested())

	require.True(handler.TryOnMessagesDelivered(ctx, lane, DefaultLowWatermark+1))
	require.True(handler.IsCongested())

	require.True(handler.TryOnMessagesDelivered(ctx, lane, DefaultLowWatermark))
	require.False(handler.IsCongested())

	notices := sender.sent()
	require.Len(notices, 2)
	status, err := message.ParseReportBridgeStatus(notices[1].payload)
	require.NoError(err)
	require.False(status.IsCongested)
}

func TestLaneHandlerIgnoresOtherLanes(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	var (
		ctx   = context.Background()
		lane  = bridgehub.LaneIDFromUint32(1)
		other = bridgehub.LaneIDFromUint32(2)
		route = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
	)
	// no calls expected
	sender := NewMockNoticeSender(ctrl)
	handler := newTestHandler(t, route, DefaultThresholds(), Notices{
		Congested:   []byte{1},
		Uncongested: []byte{0},
	}, sender)

	require.False(handler.TryOnMessageEnqueued(ctx, other, DefaultHighWatermark+1))
	require.False(handler.TryOnMessagesDelivered(ctx, other, 0))
	require.False(handler.IsCongested())
}

func TestLaneHandlerSendFailureKeepsState(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	var (
		ctx   = context.Background()
		lane  = bridgehub.LaneIDFromUint32(1)
		route = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
	)
	sender := NewMockNoticeSender(ctrl)
	handler := newTestHandler(t, route, DefaultThresholds(), Notices{
		Congested:   []byte{1},
		Uncongested: []byte{0},
	}, sender)

	sender.EXPECT().SendNotice(gomock.Any(), route.Location, []byte{1}).Return(errSendFailed)
	require.True(handler.TryOnMessageEnqueued(ctx, lane, DefaultHighWatermark+1))
	require.True(handler.IsCongested())

	// the failed notice is not retried while the state doesn't change
	require.True(handler.TryOnMessageEnqueued(ctx, lane, DefaultHighWatermark+2))
	require.True(handler.IsCongested())
}

func TestLaneHandlerDisabledNotices(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	var (
		ctx   = context.Background()
		lane  = bridgehub.LaneIDFromUint32(1)
		route = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
	)
	// no calls expected
	sender := NewMockNoticeSender(ctrl)
	handler := newTestHandler(t, route, DefaultThresholds(), Notices{}, sender)

	require.True(handler.TryOnMessageEnqueued(ctx, lane, DefaultHighWatermark+1))
	require.True(handler.IsCongested())
	require.True(handler.TryOnMessagesDelivered(ctx, lane, 0))
	require.False(handler.IsCongested())
}

func TestLaneHandlerConcurrentEvents(t *testing.T) {
	require := require.New(t)

	var (
		ctx    = context.Background()
		lane   = bridgehub.LaneIDFromUint32(1)
		route  = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
		sender = &recordingSender{}
	)
	handler := newTestHandler(t, route, DefaultThresholds(), Notices{
		Congested:   []byte{1},
		Uncongested: []byte{0},
	}, sender)

	var eg errgroup.Group
	for i := 0; i < 64; i++ {
		eg.Go(func() error {
			handler.TryOnMessageEnqueued(ctx, lane, DefaultHighWatermark+1)
			return nil
		})
	}
	require.NoError(eg.Wait())

	// a single transition, so a single notice
	require.Len(sender.sent(), 1)
	require.True(handler.IsCongested())
}
