// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import "github.com/luxfi/bridgehub"

var _ bridgehub.StatusProvider = (*StatusProvider)(nil)

// StatusProvider reports a channel as congested while it is suspended or
// holds at least threshold messages
type StatusProvider struct {
	channel   *Channel
	threshold int
}

// NewStatusProvider returns the status of [channel]. A non-positive
// [threshold] reports congestion only when the channel is full.
func NewStatusProvider(channel *Channel, threshold int) *StatusProvider {
	if threshold <= 0 {
		threshold = channel.MaxMessages()
	}
	return &StatusProvider{
		channel:   channel,
		threshold: threshold,
	}
}

func (s *StatusProvider) IsCongested() bool {
	return s.channel.IsSuspended() || s.channel.Len() >= s.threshold
}
