// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package refund

import (
	"errors"
	"fmt"

	"github.com/luxfi/math/set"
	"github.com/luxfi/metric"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

var _ Extension = (*Adapter)(nil)

// Adapter rejects message delivery transactions that target lanes whose
// local outbound channel is inactive, then defers to the wrapped Extension.
type Adapter struct {
	log      log.Logger
	registry *bridgehub.Registry
	pallet   string
	inner    Extension

	stale metric.CounterVec // lane
}

// NewAdapter wraps [inner]. Only message calls of [pallet] are checked.
func NewAdapter(
	log log.Logger,
	registry *bridgehub.Registry,
	pallet string,
	inner Extension,
	registerer metric.Registerer,
	namespace string,
) (*Adapter, error) {
	a := &Adapter{
		log:      log,
		registry: registry,
		pallet:   pallet,
		inner:    inner,
		stale: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "stale_txs",
				Help:      "number of delivery transactions rejected because of an inactive channel (n)",
			},
			[]string{"lane"},
		),
	}
	return a, errors.Join()
}

func (a *Adapter) Validate(tx *Transaction) (Validity, error) {
	if err := a.verifyLanes(tx); err != nil {
		return Validity{}, err
	}
	return a.inner.Validate(tx)
}

// PreDispatch repeats the validation since channels may have become inactive
// since the transaction entered the pool
func (a *Adapter) PreDispatch(tx *Transaction) (*Pre, error) {
	if _, err := a.Validate(tx); err != nil {
		return nil, err
	}
	return a.inner.PreDispatch(tx)
}

func (a *Adapter) PostDispatch(pre *Pre, info PostDispatchInfo, dispatchErr error) error {
	return a.inner.PostDispatch(pre, info, dispatchErr)
}

// verifyLanes fails if any message delivery call of [tx] targets an inactive
// lane
func (a *Adapter) verifyLanes(tx *Transaction) error {
	calls := ExpandCall(tx.Call)
	checked := set.NewSet[bridgehub.LaneID](len(calls))
	for i := range calls {
		call := &calls[i]
		if !call.IsMessageDelivery(a.pallet) {
			continue
		}

		lane := call.Proof.Lane
		if checked.Contains(lane) {
			continue
		}
		checked.Add(lane)

		if !a.registry.IsChannelActive(lane) {
			a.stale.With(metric.Labels{"lane": lane.String()}).Inc()
			a.log.Debug("rejecting delivery transaction",
				log.Stringer("relayer", tx.Relayer),
				log.Stringer("lane", lane),
				log.UserString("reason", "channel inactive"),
			)
			return fmt.Errorf("%w: lane %s", bridgehub.ErrStaleTransaction, lane)
		}
	}
	return nil
}
