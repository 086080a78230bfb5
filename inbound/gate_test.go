// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package inbound

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

var errInvalidProof = errors.New("invalid proof")

func newTestGate(t *testing.T, verifier ProofVerifier, entries ...bridgehub.Entry) *Gate {
	registry, err := bridgehub.NewRegistry(entries...)
	require.NoError(t, err)

	gate, err := NewGate(log.NewNoOpLogger(), registry, verifier, metric.NewRegistry(), "")
	require.NoError(t, err)
	return gate
}

func newTestProof(lane bridgehub.LaneID) *message.MessagesProof {
	return &message.MessagesProof{
		BridgedHeaderHash: ids.GenerateTestID(),
		StorageProof:      [][]byte{{1, 2, 3}},
		Lane:              lane,
		NoncesStart:       1,
		NoncesEnd:         2,
	}
}

func TestGateVerifyMessagesProof(t *testing.T) {
	var (
		lane      = bridgehub.LaneIDFromUint32(1)
		sender    = bridgehub.SiblingParachain(1000)
		proved    = &ProvedMessages{Lane: lane}
		congested = bridgehub.StatusProviderFunc(func() bool { return true })
	)

	tests := []struct {
		name          string
		entries       []bridgehub.Entry
		lane          bridgehub.LaneID
		verifierCalls int
		verifierErr   error
		expectedErr   error
	}{
		{
			name: "active channel",
			entries: []bridgehub.Entry{{
				Route:  bridgehub.NewSenderAndLane(sender, lane),
				Status: bridgehub.AlwaysActive{},
			}},
			lane:          lane,
			verifierCalls: 1,
		},
		{
			name: "inactive channel",
			entries: []bridgehub.Entry{{
				Route:  bridgehub.NewSenderAndLane(sender, lane),
				Status: congested,
			}},
			lane:          lane,
			verifierCalls: 0,
			expectedErr:   bridgehub.ErrChannelInactive,
		},
		{
			name: "unmonitored lane",
			entries: []bridgehub.Entry{{
				Route: bridgehub.NewSenderAndLane(sender, lane),
			}},
			lane:          lane,
			verifierCalls: 1,
		},
		{
			name: "unknown lane",
			entries: []bridgehub.Entry{{
				Route:  bridgehub.NewSenderAndLane(sender, lane),
				Status: congested,
			}},
			lane:          bridgehub.LaneIDFromUint32(99),
			verifierCalls: 1,
		},
		{
			name: "verifier error is returned unchanged",
			entries: []bridgehub.Entry{{
				Route:  bridgehub.NewSenderAndLane(sender, lane),
				Status: bridgehub.AlwaysActive{},
			}},
			lane:          lane,
			verifierCalls: 1,
			verifierErr:   errInvalidProof,
			expectedErr:   errInvalidProof,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			proof := newTestProof(tt.lane)
			verifier := NewMockProofVerifier(ctrl)
			var expected *ProvedMessages
			if tt.verifierErr == nil {
				expected = proved
			}
			verifier.EXPECT().VerifyMessagesProof(gomock.Any(), proof, uint32(2)).Return(expected, tt.verifierErr).Times(tt.verifierCalls)

			gate := newTestGate(t, verifier, tt.entries...)
			got, err := gate.VerifyMessagesProof(context.Background(), proof, 2)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				require.Nil(got)
				return
			}
			require.Equal(proved, got)
		})
	}
}

func TestGateOnInboundBatch(t *testing.T) {
	var (
		lane   = bridgehub.LaneIDFromUint32(1)
		route  = bridgehub.NewSenderAndLane(bridgehub.SiblingParachain(1000), lane)
		proof  = newTestProof(lane)
		proved = &ProvedMessages{Lane: lane}
	)
	proofBytes, err := message.MarshalMessagesProof(proof)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		require := require.New(t)
		ctrl := gomock.NewController(t)

		verifier := NewMockProofVerifier(ctrl)
		verifier.EXPECT().VerifyMessagesProof(gomock.Any(), proof, uint32(2)).Return(proved, nil)

		gate := newTestGate(t, verifier, bridgehub.Entry{Route: route, Status: bridgehub.AlwaysActive{}})
		got, err := gate.OnInboundBatch(context.Background(), lane, proofBytes, 2)
		require.NoError(err)
		require.Equal(proved, got)
	})

	t.Run("lane mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		gate := newTestGate(t, NewMockProofVerifier(ctrl), bridgehub.Entry{Route: route})
		_, err := gate.OnInboundBatch(context.Background(), bridgehub.LaneIDFromUint32(2), proofBytes, 2)
		require.ErrorIs(t, err, bridgehub.ErrLaneMismatch)
	})

	t.Run("malformed", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		gate := newTestGate(t, NewMockProofVerifier(ctrl), bridgehub.Entry{Route: route})
		_, err := gate.OnInboundBatch(context.Background(), lane, proofBytes[:10], 2)
		require.Error(t, err)
	})
}

func TestGateNilProof(t *testing.T) {
	ctrl := gomock.NewController(t)

	// no calls expected
	gate := newTestGate(t, NewMockProofVerifier(ctrl))
	_, err := gate.VerifyMessagesProof(context.Background(), nil, 1)
	require.ErrorIs(t, err, errNilProof)
}
