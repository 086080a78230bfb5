// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgehub

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// LaneIDLen is the number of bytes in a LaneID
const LaneIDLen = 4

// EmptyLaneID is the zero lane. It is never a valid configured lane.
var EmptyLaneID = LaneID{}

// LaneID identifies an ordered message channel between two bridged chains.
//
// Lane identifiers are only unique within a single bridge instance; two
// bridges towards different chains may reuse the same value.
type LaneID [LaneIDLen]byte

// LaneIDFromUint32 returns the big-endian lane identifier of n
func LaneIDFromUint32(n uint32) LaneID {
	var lane LaneID
	binary.BigEndian.PutUint32(lane[:], n)
	return lane
}

// ParseLaneID parses a lane identifier from its hex representation. The
// "0x" prefix is optional.
func ParseLaneID(s string) (LaneID, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return EmptyLaneID, fmt.Errorf("invalid lane id %q: %w", s, err)
	}
	if len(raw) != LaneIDLen {
		return EmptyLaneID, fmt.Errorf("invalid lane id %q: expected %d bytes, got %d", s, LaneIDLen, len(raw))
	}

	var lane LaneID
	copy(lane[:], raw)
	return lane, nil
}

// Uint32 returns the big-endian numeric value of the lane
func (l LaneID) Uint32() uint32 {
	return binary.BigEndian.Uint32(l[:])
}

func (l LaneID) String() string {
	return "0x" + hex.EncodeToString(l[:])
}

func (l LaneID) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LaneID) UnmarshalText(text []byte) error {
	lane, err := ParseLaneID(string(text))
	if err != nil {
		return err
	}
	*l = lane
	return nil
}

// Location describes where outbound traffic on a lane originates from,
// relative to this chain.
type Location struct {
	// Parents is the number of hops up the consensus hierarchy
	Parents uint8 `json:"parents" yaml:"parents"`
	// Parachain is the sibling chain id below the parent. Zero means the
	// parent itself.
	Parachain uint32 `json:"parachain" yaml:"parachain"`
}

// SiblingParachain returns the location of a sibling parachain
func SiblingParachain(id uint32) Location {
	return Location{
		Parents:   1,
		Parachain: id,
	}
}

func (l Location) String() string {
	if l.Parachain == 0 {
		return fmt.Sprintf("(parents: %d, here)", l.Parents)
	}
	return fmt.Sprintf("(parents: %d, parachain: %d)", l.Parents, l.Parachain)
}

// SenderAndLane is the route followed by messages of a single sender. It is
// created once at configuration time and shared by value.
type SenderAndLane struct {
	Location Location
	Lane     LaneID
}

// NewSenderAndLane returns the route of [location] over [lane]
func NewSenderAndLane(location Location, lane LaneID) SenderAndLane {
	return SenderAndLane{
		Location: location,
		Lane:     lane,
	}
}

func (s SenderAndLane) String() string {
	return fmt.Sprintf("%s over lane %s", s.Location, s.Lane)
}
