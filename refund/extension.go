// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package refund decides the validity and priority of relayer transactions
// and refunds relayers for successful deliveries.
package refund

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/bridgehub"
)

// Transaction is a signed relayer transaction
type Transaction struct {
	Relayer ids.ID
	Call    Call
	// Len is the encoded length of the transaction
	Len int
}

// Validity is the result of a successful transaction validation
type Validity struct {
	Priority uint64
}

// Pre is computed before dispatch and handed back after dispatch
type Pre struct {
	Relayer ids.ID
	// Lanes are the lanes delivered to by the transaction
	Lanes []bridgehub.LaneID
	// Refundable is true if the relayer should be refunded on success
	Refundable bool
	// Lane is the refunded lane when Refundable is set
	Lane bridgehub.LaneID
}

// PostDispatchInfo describes the outcome of a dispatched transaction
type PostDispatchInfo struct {
	// ActualFee is the fee paid by the relayer
	ActualFee uint64
}

// Extension validates relayer transactions and settles them after dispatch
type Extension interface {
	// Validate is called when a transaction enters the pool
	Validate(tx *Transaction) (Validity, error)
	// PreDispatch is called right before the transaction is executed
	PreDispatch(tx *Transaction) (*Pre, error)
	// PostDispatch is called after the transaction is executed. [pre] is nil
	// if PreDispatch wasn't called. [dispatchErr] is the error of the call.
	PostDispatch(pre *Pre, info PostDispatchInfo, dispatchErr error) error
}

// RewardLedger accumulates the rewards owed to relayers
type RewardLedger interface {
	RegisterReward(relayer ids.ID, lane bridgehub.LaneID, amount uint64) error
}

var _ Extension = NoOpExtension{}

// NoOpExtension accepts every transaction and never refunds
type NoOpExtension struct{}

func (NoOpExtension) Validate(*Transaction) (Validity, error) {
	return Validity{}, nil
}

func (NoOpExtension) PreDispatch(tx *Transaction) (*Pre, error) {
	return &Pre{Relayer: tx.Relayer}, nil
}

func (NoOpExtension) PostDispatch(*Pre, PostDispatchInfo, error) error {
	return nil
}
