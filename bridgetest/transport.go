// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bridgetest provides in-memory implementations of the external
// collaborators of a bridge.
package bridgetest

import (
	"context"
	"sync"
	"testing"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/hauler"
)

var _ hauler.Transport = (*Transport)(nil)

// Transport is an in-memory outbound message queue per lane.
// Set SendF to customize behavior, or leave nil to queue messages.
// Set CantSend to true to fail on unexpected calls.
type Transport struct {
	T *testing.T

	SendF func(context.Context, bridgehub.LaneID, []byte) (hauler.SendArtifacts, error)

	CantSend bool

	lock  sync.Mutex
	lanes map[bridgehub.LaneID]*outboundLane
}

type outboundLane struct {
	latestNonce    uint64
	confirmedNonce uint64
	payloads       [][]byte
}

func (t *Transport) Send(ctx context.Context, lane bridgehub.LaneID, payload []byte) (hauler.SendArtifacts, error) {
	if t.SendF != nil {
		return t.SendF(ctx, lane, payload)
	}
	if t.CantSend && t.T != nil {
		t.T.Fatal("unexpected Send")
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	l := t.lane(lane)
	l.latestNonce++
	l.payloads = append(l.payloads, payload)
	return hauler.SendArtifacts{
		Nonce:            l.latestNonce,
		EnqueuedMessages: l.latestNonce - l.confirmedNonce,
	}, nil
}

// Confirm marks up to [n] of the oldest messages of [lane] as delivered and
// returns the number of messages still waiting for a confirmation
func (t *Transport) Confirm(lane bridgehub.LaneID, n uint64) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	l := t.lane(lane)
	l.confirmedNonce = min(l.confirmedNonce+n, l.latestNonce)
	return l.latestNonce - l.confirmedNonce
}

// Sent returns the payloads sent on [lane]
func (t *Transport) Sent(lane bridgehub.LaneID) [][]byte {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([][]byte(nil), t.lane(lane).payloads...)
}

// lane assumes [t.lock] is held
func (t *Transport) lane(lane bridgehub.LaneID) *outboundLane {
	if t.lanes == nil {
		t.lanes = make(map[bridgehub.LaneID]*outboundLane)
	}
	l, ok := t.lanes[lane]
	if !ok {
		l = &outboundLane{}
		t.lanes[lane] = l
	}
	return l
}
