// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package inbound

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

var errDispatchFailed = errors.New("dispatch failed")

type testDispatcher struct {
	dispatched []uint64
}

func (*testDispatcher) Weight(msg *message.Message) uint64 {
	return uint64(len(msg.Payload))
}

func (d *testDispatcher) Dispatch(_ context.Context, msg *message.Message) error {
	d.dispatched = append(d.dispatched, msg.Nonce)
	if msg.Nonce == 2 {
		return errDispatchFailed
	}
	return nil
}

type refusingDispatch struct {
	testDispatcher
}

func (*refusingDispatch) IsActive(bridgehub.LaneID) bool {
	return false
}

func TestDispatchIsAlwaysActive(t *testing.T) {
	dispatch := NewDispatch(&testDispatcher{})
	require.True(t, dispatch.IsActive(bridgehub.LaneIDFromUint32(1)))
	require.True(t, dispatch.IsActive(bridgehub.EmptyLaneID))
}

func TestDispatchAll(t *testing.T) {
	require := require.New(t)

	lane := bridgehub.LaneIDFromUint32(1)
	dispatcher := &testDispatcher{}
	proved := &ProvedMessages{
		Lane: lane,
		Messages: []message.Message{
			{Lane: lane, Nonce: 1, Payload: []byte{1}},
			{Lane: lane, Nonce: 2, Payload: []byte{1, 2}},
			{Lane: lane, Nonce: 3, Payload: []byte{1, 2, 3}},
		},
	}

	results, ok := DispatchAll(context.Background(), NewDispatch(dispatcher), proved)
	require.True(ok)
	require.Equal([]uint64{1, 2, 3}, dispatcher.dispatched)
	require.Len(results, 3)
	require.NoError(results[0].Err)
	require.ErrorIs(results[1].Err, errDispatchFailed)
	require.NoError(results[2].Err)
	require.Equal(uint64(3), results[2].Weight)
}

func TestDispatchAllRefused(t *testing.T) {
	require := require.New(t)

	dispatch := &refusingDispatch{}
	results, ok := DispatchAll(context.Background(), dispatch, &ProvedMessages{
		Lane:     bridgehub.LaneIDFromUint32(1),
		Messages: []message.Message{{Nonce: 1}},
	})
	require.False(ok)
	require.Empty(results)
	require.Empty(dispatch.dispatched)
}
