// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package refund

import (
	"fmt"
	"math"
	"math/bits"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

var _ Extension = (*PriorityRefund)(nil)

// PriorityRefund boosts the priority of message delivery transactions with
// the number of delivered messages, and refunds the fee of successful
// relayer transactions of a single lane.
//
// A transaction is refundable if it is a message call for the lane,
// optionally batched after finality and parachain heads submissions.
type PriorityRefund struct {
	log             log.Logger
	pallet          string
	lane            bridgehub.LaneID
	boostPerMessage uint64
	ledger          RewardLedger
}

func NewPriorityRefund(
	log log.Logger,
	pallet string,
	lane bridgehub.LaneID,
	boostPerMessage uint64,
	ledger RewardLedger,
) *PriorityRefund {
	return &PriorityRefund{
		log:             log,
		pallet:          pallet,
		lane:            lane,
		boostPerMessage: boostPerMessage,
		ledger:          ledger,
	}
}

func (p *PriorityRefund) Validate(tx *Transaction) (Validity, error) {
	call, ok := p.refundableCall(tx)
	if !ok || call.Kind != ReceiveMessagesProofCall || call.MessagesCount < 2 {
		return Validity{}, nil
	}
	return Validity{
		Priority: boost(p.boostPerMessage, uint64(call.MessagesCount-1)),
	}, nil
}

func (p *PriorityRefund) PreDispatch(tx *Transaction) (*Pre, error) {
	pre := &Pre{
		Relayer: tx.Relayer,
	}
	calls := ExpandCall(tx.Call)
	for i := range calls {
		if lane, ok := calls[i].Lane(); ok {
			pre.Lanes = append(pre.Lanes, lane)
		}
	}
	if _, ok := p.refundableCall(tx); ok {
		pre.Refundable = true
		pre.Lane = p.lane
	}
	return pre, nil
}

func (p *PriorityRefund) PostDispatch(pre *Pre, info PostDispatchInfo, dispatchErr error) error {
	if pre == nil || !pre.Refundable {
		return nil
	}
	if dispatchErr != nil {
		p.log.Debug("not refunding relayer",
			log.Stringer("relayer", pre.Relayer),
			log.Stringer("lane", pre.Lane),
			log.UserString("reason", "call failed"),
			log.Err(dispatchErr),
		)
		return nil
	}
	if info.ActualFee == 0 {
		return nil
	}

	if err := p.ledger.RegisterReward(pre.Relayer, pre.Lane, info.ActualFee); err != nil {
		return fmt.Errorf("failed to register reward for relayer %s: %w", pre.Relayer, err)
	}
	p.log.Debug("refunded relayer",
		log.Stringer("relayer", pre.Relayer),
		log.Stringer("lane", pre.Lane),
		log.Uint64("fee", info.ActualFee),
	)
	return nil
}

// refundableCall returns the message call of [tx] if [tx] is refundable
func (p *PriorityRefund) refundableCall(tx *Transaction) (Call, bool) {
	var (
		calls   = ExpandCall(tx.Call)
		msgCall Call
		found   bool
	)
	for i, call := range calls {
		switch call.Kind {
		case SubmitFinalityProofCall, SubmitParachainHeadsCall:
		case ReceiveMessagesProofCall, ReceiveMessagesDeliveryProofCall:
			lane, ok := call.Lane()
			if !ok || call.Pallet != p.pallet || lane != p.lane || i != len(calls)-1 {
				return Call{}, false
			}
			msgCall = call
			found = true
		default:
			return Call{}, false
		}
	}
	return msgCall, found
}

// boost returns perMessage * messages, saturating at the maximal priority
func boost(perMessage, messages uint64) uint64 {
	hi, lo := bits.Mul64(perMessage, messages)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
