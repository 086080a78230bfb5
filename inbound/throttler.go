// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package inbound

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

var (
	_ Throttler     = (*RateThrottler)(nil)
	_ ProofVerifier = (*ThrottledVerifier)(nil)
)

// Throttler decides whether a lane may use the proof verifier
type Throttler interface {
	Handle(lane bridgehub.LaneID) bool
}

// RateThrottler allows every configured lane [limit] proofs per second with
// bursts of up to [burst] proofs. Lanes unknown at construction share a
// single budget, so rotating lane ids doesn't buy a fresh burst.
type RateThrottler struct {
	// immutable after construction
	limiters map[bridgehub.LaneID]*rate.Limiter
	unknown  *rate.Limiter
}

func NewRateThrottler(limit float64, burst int, lanes ...bridgehub.LaneID) *RateThrottler {
	r := &RateThrottler{
		limiters: make(map[bridgehub.LaneID]*rate.Limiter, len(lanes)),
		unknown:  rate.NewLimiter(rate.Limit(limit), burst),
	}
	for _, lane := range lanes {
		r.limiters[lane] = rate.NewLimiter(rate.Limit(limit), burst)
	}
	return r
}

func (r *RateThrottler) Handle(lane bridgehub.LaneID) bool {
	limiter, ok := r.limiters[lane]
	if !ok {
		limiter = r.unknown
	}
	return limiter.Allow()
}

func NewThrottledVerifier(verifier ProofVerifier, throttler Throttler, log log.Logger) *ThrottledVerifier {
	return &ThrottledVerifier{
		verifier:  verifier,
		throttler: throttler,
		log:       log,
	}
}

// ThrottledVerifier drops proofs of lanes that exceed their verification
// budget
type ThrottledVerifier struct {
	verifier  ProofVerifier
	throttler Throttler
	log       log.Logger
}

func (t *ThrottledVerifier) VerifyMessagesProof(ctx context.Context, proof *message.MessagesProof, count uint32) (*ProvedMessages, error) {
	if proof == nil {
		return nil, errNilProof
	}
	if !t.throttler.Handle(proof.Lane) {
		t.log.Debug("dropping messages proof",
			log.Stringer("lane", proof.Lane),
			log.UserString("reason", "throttled"),
		)
		return nil, fmt.Errorf("%w: lane %s", bridgehub.ErrThrottled, proof.Lane)
	}

	return t.verifier.VerifyMessagesProof(ctx, proof, count)
}
