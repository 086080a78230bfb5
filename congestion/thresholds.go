// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"errors"
	"fmt"
)

const (
	// DefaultHighWatermark is the number of outstanding messages above which
	// a lane is considered congested
	DefaultHighWatermark = 8_192
	// DefaultLowWatermark is the number of outstanding messages at or below
	// which a congested lane is considered uncongested again
	DefaultLowWatermark = 1_024
)

var ErrInvalidThresholds = errors.New("low watermark must be below high watermark")

// Thresholds is the hysteresis band of a lane
type Thresholds struct {
	High uint64 `json:"high_watermark" yaml:"high_watermark"`
	Low  uint64 `json:"low_watermark" yaml:"low_watermark"`
}

// DefaultThresholds returns the default hysteresis band
func DefaultThresholds() Thresholds {
	return Thresholds{
		High: DefaultHighWatermark,
		Low:  DefaultLowWatermark,
	}
}

// Verify returns an error if the band is empty
func (t Thresholds) Verify() error {
	if t.Low >= t.High {
		return fmt.Errorf("%w: low %d, high %d", ErrInvalidThresholds, t.Low, t.High)
	}
	return nil
}

// Congested returns the congestion state of a lane with [outstanding]
// messages, given its previous state [prev].
//
// An uncongested lane becomes congested once outstanding exceeds High. A
// congested lane stays congested until outstanding drops to Low or below.
func (t Thresholds) Congested(prev bool, outstanding uint64) bool {
	if prev {
		return outstanding > t.Low
	}
	return outstanding > t.High
}
