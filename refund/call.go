// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package refund

import (
	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/message"
)

// CallKind is the kind of a relayer call
type CallKind uint8

const (
	OtherCall CallKind = iota
	BatchCall
	ReceiveMessagesProofCall
	ReceiveMessagesDeliveryProofCall
	SubmitFinalityProofCall
	SubmitParachainHeadsCall
)

func (k CallKind) String() string {
	switch k {
	case BatchCall:
		return "batch"
	case ReceiveMessagesProofCall:
		return "receive_messages_proof"
	case ReceiveMessagesDeliveryProofCall:
		return "receive_messages_delivery_proof"
	case SubmitFinalityProofCall:
		return "submit_finality_proof"
	case SubmitParachainHeadsCall:
		return "submit_parachain_heads"
	default:
		return "other"
	}
}

// Call is the decoded form of a call submitted by a relayer. Only the fields
// relevant to its Kind are set.
type Call struct {
	Kind CallKind
	// Pallet is the messages pallet instance targeted by message calls
	Pallet string
	// Proof is set for ReceiveMessagesProofCall
	Proof *message.MessagesProof
	// MessagesCount is the number of messages declared by the relayer
	MessagesCount uint32
	// DeliveryLane is set for ReceiveMessagesDeliveryProofCall
	DeliveryLane bridgehub.LaneID
	// Calls are the inner calls of a BatchCall
	Calls []Call
}

func ReceiveMessagesProof(pallet string, proof *message.MessagesProof, count uint32) Call {
	return Call{
		Kind:          ReceiveMessagesProofCall,
		Pallet:        pallet,
		Proof:         proof,
		MessagesCount: count,
	}
}

func ReceiveMessagesDeliveryProof(pallet string, lane bridgehub.LaneID) Call {
	return Call{
		Kind:         ReceiveMessagesDeliveryProofCall,
		Pallet:       pallet,
		DeliveryLane: lane,
	}
}

func SubmitFinalityProof() Call {
	return Call{Kind: SubmitFinalityProofCall}
}

func SubmitParachainHeads() Call {
	return Call{Kind: SubmitParachainHeadsCall}
}

func Batch(calls ...Call) Call {
	return Call{
		Kind:  BatchCall,
		Calls: calls,
	}
}

// Lane returns the lane targeted by a message call
func (c *Call) Lane() (bridgehub.LaneID, bool) {
	switch c.Kind {
	case ReceiveMessagesProofCall:
		if c.Proof == nil {
			return bridgehub.EmptyLaneID, false
		}
		return c.Proof.Lane, true
	case ReceiveMessagesDeliveryProofCall:
		return c.DeliveryLane, true
	default:
		return bridgehub.EmptyLaneID, false
	}
}

// IsMessageDelivery returns true if [c] delivers messages of [pallet]
func (c *Call) IsMessageDelivery(pallet string) bool {
	return c.Kind == ReceiveMessagesProofCall && c.Pallet == pallet && c.Proof != nil
}

// ExpandCall returns the calls executed by [call]. A batch is flattened one
// level, nested batches are returned as is.
func ExpandCall(call Call) []Call {
	if call.Kind != BatchCall {
		return []Call{call}
	}
	return call.Calls
}
