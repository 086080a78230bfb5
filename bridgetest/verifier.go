// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgetest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/luxfi/bridgehub/inbound"
	"github.com/luxfi/bridgehub/message"
)

var (
	_ inbound.ProofVerifier = (*ProofVerifier)(nil)

	ErrMessagesCountMismatch = errors.New("messages count mismatch")
)

// ProofVerifier accepts every proof. Each storage proof node is treated as
// the payload of one message.
// Set VerifyMessagesProofF to customize behavior.
// Set CantVerifyMessagesProof to true to fail on unexpected calls.
type ProofVerifier struct {
	T *testing.T

	VerifyMessagesProofF func(context.Context, *message.MessagesProof, uint32) (*inbound.ProvedMessages, error)

	CantVerifyMessagesProof bool

	calls atomic.Uint64
}

func (v *ProofVerifier) VerifyMessagesProof(ctx context.Context, proof *message.MessagesProof, count uint32) (*inbound.ProvedMessages, error) {
	v.calls.Add(1)
	if v.VerifyMessagesProofF != nil {
		return v.VerifyMessagesProofF(ctx, proof, count)
	}
	if v.CantVerifyMessagesProof && v.T != nil {
		v.T.Fatal("unexpected VerifyMessagesProof")
	}

	if uint64(count) != proof.MessagesCount() || int(count) != len(proof.StorageProof) {
		return nil, fmt.Errorf("%w: declared %d, proven %d", ErrMessagesCountMismatch, count, len(proof.StorageProof))
	}

	proved := &inbound.ProvedMessages{
		Lane:     proof.Lane,
		Messages: make([]message.Message, len(proof.StorageProof)),
	}
	for i, node := range proof.StorageProof {
		proved.Messages[i] = message.Message{
			Lane:    proof.Lane,
			Nonce:   proof.NoncesStart + uint64(i),
			Payload: node,
		}
	}
	return proved, nil
}

// Calls returns the number of proofs handed to the verifier
func (v *ProofVerifier) Calls() uint64 {
	return v.calls.Load()
}
