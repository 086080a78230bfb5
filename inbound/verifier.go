// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package inbound

import (
	"context"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

// ProvedMessages are the messages extracted from a verified proof
type ProvedMessages struct {
	Lane     bridgehub.LaneID
	Messages []message.Message
}

// ProofVerifier verifies storage proofs of messages sent on the bridged
// chain against its finalized headers
type ProofVerifier interface {
	// VerifyMessagesProof returns the [count] messages proven by [proof] or
	// an error if the proof is invalid
	VerifyMessagesProof(ctx context.Context, proof *message.MessagesProof, count uint32) (*ProvedMessages, error)
}
