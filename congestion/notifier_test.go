// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"context"
	"testing"

	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/luxfi/bridgehub"
)

func TestNotifierLaneIsolation(t *testing.T) {
	require := require.New(t)

	var (
		ctx     = context.Background()
		lane1   = bridgehub.LaneIDFromUint32(1)
		lane2   = bridgehub.LaneIDFromUint32(2)
		sender1 = &recordingSender{}
		sender2 = &recordingSender{}
	)
	handler1 := newTestHandler(t,
		bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane1),
		DefaultThresholds(),
		Notices{Congested: []byte{1}, Uncongested: []byte{0}},
		sender1,
	)
	handler2 := newTestHandler(t,
		bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(2000), lane2),
		DefaultThresholds(),
		Notices{Congested: []byte{1}, Uncongested: []byte{0}},
		sender2,
	)
	notifier := NewNotifier(log.NewNoOpLogger(), handler1, handler2)

	require.True(notifier.TryOnMessageEnqueued(ctx, lane1, DefaultHighWatermark+1))
	require.True(handler1.IsCongested())
	require.False(handler2.IsCongested())
	require.Len(sender1.sent(), 1)
	require.Empty(sender2.sent())

	require.True(notifier.TryOnMessagesDelivered(ctx, lane2, 0))
	require.True(handler1.IsCongested())
	require.False(handler2.IsCongested())
	require.Empty(sender2.sent())

	require.False(notifier.TryOnMessageEnqueued(ctx, bridgehub.LaneIDFromUint32(99), DefaultHighWatermark+1))
	notifier.OnMessageEnqueued(ctx, bridgehub.LaneIDFromUint32(99), DefaultHighWatermark+1)
	notifier.OnMessagesDelivered(ctx, bridgehub.LaneIDFromUint32(99), 0)
	require.Len(sender1.sent(), 1)
	require.Empty(sender2.sent())
}

func TestNotifierSkipsNoOpHandler(t *testing.T) {
	notifier := NewNotifier(log.NewNoOpLogger(), NoOpHandler{})
	require.False(t, notifier.TryOnMessageEnqueued(context.Background(), bridgehub.LaneIDFromUint32(1), DefaultHighWatermark+1))
	require.False(t, notifier.TryOnMessagesDelivered(context.Background(), bridgehub.LaneIDFromUint32(1), 0))
}

// The handler must only notify on state changes, notices must alternate
// starting with a congested notice, and events on other lanes must never
// change the state.
func TestNotifierHysteresisProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var (
			ctx        = context.Background()
			lane       = bridgehub.LaneIDFromUint32(1)
			other      = bridgehub.LaneIDFromUint32(2)
			low        = rapid.Uint64Range(0, 1_000).Draw(t, "low")
			high       = rapid.Uint64Range(low+1, 2_000).Draw(t, "high")
			thresholds = Thresholds{High: high, Low: low}
			sender     = &recordingSender{}
		)
		metrics, err := NewMetrics(metric.NewRegistry(), "")
		if err != nil {
			t.Fatal(err)
		}
		handler := NewLaneHandler(
			log.NewNoOpLogger(),
			bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane),
			thresholds,
			Notices{Congested: []byte{1}, Uncongested: []byte{0}},
			sender,
			metrics,
		)
		notifier := NewNotifier(log.NewNoOpLogger(), handler)

		expected := false
		transitions := 0
		events := rapid.IntRange(1, 64).Draw(t, "events")
		for i := 0; i < events; i++ {
			outstanding := rapid.Uint64Range(0, 3_000).Draw(t, "outstanding")
			onOther := rapid.Bool().Draw(t, "onOther")
			delivered := rapid.Bool().Draw(t, "delivered")

			target := lane
			if onOther {
				target = other
			}
			if delivered {
				notifier.OnMessagesDelivered(ctx, target, outstanding)
			} else {
				notifier.OnMessageEnqueued(ctx, target, outstanding)
			}

			if !onOther {
				next := thresholds.Congested(expected, outstanding)
				if next != expected {
					transitions++
				}
				expected = next
			}
			if handler.IsCongested() != expected {
				t.Fatalf("expected congested=%v after %d outstanding", expected, outstanding)
			}
		}

		notices := sender.sent()
		if len(notices) != transitions {
			t.Fatalf("expected %d notices, got %d", transitions, len(notices))
		}
		for i, notice := range notices {
			want := byte(1)
			if i%2 == 1 {
				want = 0
			}
			if notice.payload[0] != want {
				t.Fatalf("notice %d has payload %d", i, notice.payload[0])
			}
		}
	})
}
