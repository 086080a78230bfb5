// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package inbound guards the verification of messages received from the
// bridged chain.
package inbound

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/metric"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

var (
	_ ProofVerifier = (*Gate)(nil)

	errNilProof = errors.New("nil messages proof")
)

// Gate rejects message proofs received over lanes whose local outbound
// channel is inactive. Accepted proofs are verified by the wrapped verifier.
type Gate struct {
	log      log.Logger
	registry *bridgehub.Registry
	verifier ProofVerifier

	rejected metric.CounterVec // lane + reason
	verified metric.CounterVec // lane
}

func NewGate(
	log log.Logger,
	registry *bridgehub.Registry,
	verifier ProofVerifier,
	registerer metric.Registerer,
	namespace string,
) (*Gate, error) {
	g := &Gate{
		log:      log,
		registry: registry,
		verifier: verifier,
		rejected: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "inbound_rejected",
				Help:      "number of inbound proofs rejected (n)",
			},
			[]string{"lane", "reason"},
		),
		verified: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "inbound_verified",
				Help:      "number of inbound proofs handed to the proof verifier (n)",
			},
			[]string{"lane"},
		),
	}
	return g, errors.Join()
}

// VerifyMessagesProof verifies [proof] if the outbound channel tied to its
// lane is active. The verifier is never called for an inactive lane, and
// its result is returned unchanged otherwise.
func (g *Gate) VerifyMessagesProof(ctx context.Context, proof *message.MessagesProof, count uint32) (*ProvedMessages, error) {
	if proof == nil {
		return nil, errNilProof
	}

	lane := proof.Lane
	if _, ok := g.registry.Status(lane); !ok {
		g.log.Debug("no channel status tracked for lane",
			log.Stringer("lane", lane),
		)
	}
	if !g.registry.IsChannelActive(lane) {
		g.reject(lane, "channel_inactive")
		g.log.Debug("dropping messages proof",
			log.Stringer("lane", lane),
			log.Uint64("noncesStart", proof.NoncesStart),
			log.Uint64("noncesEnd", proof.NoncesEnd),
			log.UserString("reason", "channel inactive"),
		)
		return nil, fmt.Errorf("%w: lane %s", bridgehub.ErrChannelInactive, lane)
	}

	g.verified.With(metric.Labels{"lane": lane.String()}).Inc()
	return g.verifier.VerifyMessagesProof(ctx, proof, count)
}

// OnInboundBatch parses and verifies a batch of messages received over
// [lane]
func (g *Gate) OnInboundBatch(ctx context.Context, lane bridgehub.LaneID, proofBytes []byte, count uint32) (*ProvedMessages, error) {
	proof, err := message.ParseMessagesProof(proofBytes)
	if err != nil {
		g.reject(lane, "malformed")
		g.log.Debug("failed to parse messages proof",
			log.Stringer("lane", lane),
			log.Binary("proof", proofBytes),
			log.Err(err),
		)
		return nil, err
	}
	if proof.Lane != lane {
		g.reject(lane, "lane_mismatch")
		return nil, fmt.Errorf("%w: proof for lane %s received on lane %s",
			bridgehub.ErrLaneMismatch,
			proof.Lane,
			lane,
		)
	}
	return g.VerifyMessagesProof(ctx, proof, count)
}

func (g *Gate) reject(lane bridgehub.LaneID, reason string) {
	g.rejected.With(metric.Labels{
		"lane":   lane.String(),
		"reason": reason,
	}).Inc()
}
