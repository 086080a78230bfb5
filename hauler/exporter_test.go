// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hauler

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/congestion"
)

var errTransportDown = errors.New("transport down")

var (
	testLane   = bridgehub.LaneIDFromUint32(1)
	testSender = bridgehub.SiblingParachain(1000)
	testRoute  = bridgehub.NewSenderAndLane(testSender, testLane)
)

func newTestRegistry(t *testing.T) *bridgehub.Registry {
	registry, err := bridgehub.NewRegistry(bridgehub.Entry{Route: testRoute})
	require.NoError(t, err)
	return registry
}

func newTestExporter(t *testing.T, transport Transport, listener Listener, maxPayloadSize int) *Exporter {
	exporter, err := NewExporter(
		log.NewNoOpLogger(),
		newTestRegistry(t),
		transport,
		listener,
		maxPayloadSize,
		metric.NewRegistry(),
		"",
	)
	require.NoError(t, err)
	return exporter
}

func TestExporterValidate(t *testing.T) {
	tests := []struct {
		name        string
		route       bridgehub.SenderAndLane
		payload     []byte
		expectedErr error
	}{
		{
			name:    "valid",
			route:   testRoute,
			payload: []byte("hello"),
		},
		{
			name:    "max size",
			route:   testRoute,
			payload: make([]byte, 8),
		},
		{
			name:        "unknown lane",
			route:       bridgehub.NewSenderAndLane(testSender, bridgehub.LaneIDFromUint32(2)),
			payload:     []byte("hello"),
			expectedErr: bridgehub.ErrRouteNotFound,
		},
		{
			name:        "other sender on configured lane",
			route:       bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(2000), testLane),
			payload:     []byte("hello"),
			expectedErr: bridgehub.ErrRouteNotFound,
		},
		{
			name:        "payload too large",
			route:       testRoute,
			payload:     make([]byte, 9),
			expectedErr: bridgehub.ErrPayloadTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			exporter := newTestExporter(t, NewMockTransport(ctrl), NewMockListener(ctrl), 8)
			ticket, err := exporter.Validate(tt.route, tt.payload)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				return
			}

			expectedID, err := ids.ToID(hash.ComputeHash256(tt.payload))
			require.NoError(err)
			require.Equal(expectedID, ticket.MessageID)
			require.Equal(tt.route, ticket.Route)
		})
	}
}

func TestExporterDeliver(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	var (
		ctx       = context.Background()
		payload   = []byte("hello")
		transport = NewMockTransport(ctrl)
		listener  = NewMockListener(ctrl)
	)
	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), testLane, payload).Return(SendArtifacts{
			Nonce:            7,
			EnqueuedMessages: 3,
		}, nil),
		listener.EXPECT().OnMessageEnqueued(gomock.Any(), testLane, uint64(3)),
	)

	exporter := newTestExporter(t, transport, listener, 0)
	messageID, err := exporter.Export(ctx, testRoute, payload)
	require.NoError(err)

	expectedID, err := ids.ToID(hash.ComputeHash256(payload))
	require.NoError(err)
	require.Equal(expectedID, messageID)
}

func TestExporterDeliverTransportError(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	transport := NewMockTransport(ctrl)
	// the listener must not be notified
	listener := NewMockListener(ctrl)
	transport.EXPECT().Send(gomock.Any(), testLane, gomock.Any()).Return(SendArtifacts{}, errTransportDown)

	exporter := newTestExporter(t, transport, listener, 0)
	messageID, err := exporter.Export(context.Background(), testRoute, []byte("hello"))
	require.ErrorIs(err, errTransportDown)
	require.Equal(ids.Empty, messageID)
}

func TestExporterUnknownRouteNeverSends(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	exporter := newTestExporter(t, NewMockTransport(ctrl), NewMockListener(ctrl), 0)
	_, err := exporter.ExportFrom(context.Background(), bridgehub.SiblingParachain(2000), []byte("hello"))
	require.ErrorIs(err, bridgehub.ErrRouteNotFound)
}

func TestExporterExportFrom(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	transport := NewMockTransport(ctrl)
	listener := NewMockListener(ctrl)
	transport.EXPECT().Send(gomock.Any(), testLane, gomock.Any()).Return(SendArtifacts{Nonce: 1, EnqueuedMessages: 1}, nil)
	listener.EXPECT().OnMessageEnqueued(gomock.Any(), testLane, uint64(1))

	exporter := newTestExporter(t, transport, listener, 0)
	_, err := exporter.ExportFrom(context.Background(), testSender, []byte("hello"))
	require.NoError(err)
}

// A congestion notice that can't be sent must not fail the export
func TestExporterNoticeFailureDoesNotFailExport(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	noticeSender := congestion.NewMockNoticeSender(ctrl)
	noticeSender.EXPECT().SendNotice(gomock.Any(), testSender, []byte{1}).Return(errTransportDown)

	congestionMetrics, err := congestion.NewMetrics(metric.NewRegistry(), "")
	require.NoError(err)
	handler := congestion.NewLaneHandler(
		log.NewNoOpLogger(),
		testRoute,
		congestion.Thresholds{High: 1, Low: 0},
		congestion.Notices{Congested: []byte{1}, Uncongested: []byte{0}},
		noticeSender,
		congestionMetrics,
	)
	notifier := congestion.NewNotifier(log.NewNoOpLogger(), handler)

	transport := NewMockTransport(ctrl)
	transport.EXPECT().Send(gomock.Any(), testLane, gomock.Any()).Return(SendArtifacts{Nonce: 2, EnqueuedMessages: 2}, nil)

	exporter := newTestExporter(t, transport, notifier, 0)
	_, err = exporter.Export(context.Background(), testRoute, []byte("hello"))
	require.NoError(err)
	require.True(handler.IsCongested())
}

func TestDeliveryAdapterForwards(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	listener := NewMockListener(ctrl)
	listener.EXPECT().OnMessagesDelivered(gomock.Any(), testLane, uint64(4))

	adapter, err := NewDeliveryAdapter(log.NewNoOpLogger(), listener, metric.NewRegistry(), "")
	require.NoError(err)
	adapter.OnMessagesDelivered(context.Background(), testLane, 4)
}
