// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgetest

import (
	"sync"

	"github.com/luxfi/ids"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/refund"
)

var _ refund.RewardLedger = (*RewardLedger)(nil)

type rewardKey struct {
	relayer ids.ID
	lane    bridgehub.LaneID
}

// RewardLedger accumulates rewards in memory
type RewardLedger struct {
	lock    sync.Mutex
	rewards map[rewardKey]uint64
}

func (l *RewardLedger) RegisterReward(relayer ids.ID, lane bridgehub.LaneID, amount uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.rewards == nil {
		l.rewards = make(map[rewardKey]uint64)
	}
	l.rewards[rewardKey{relayer: relayer, lane: lane}] += amount
	return nil
}

// Reward returns the reward owed to [relayer] for [lane]
func (l *RewardLedger) Reward(relayer ids.ID, lane bridgehub.LaneID) uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.rewards[rewardKey{relayer: relayer, lane: lane}]
}
