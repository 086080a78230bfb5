// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package message defines the wire formats exchanged over bridge lanes.
package message

import (
	"errors"
	"fmt"
)

// Op is an opcode. Every encoded message starts with its Op.
type Op byte

// Types of messages carried by the bridge
const (
	// Inbound:
	MessagesProofOp Op = iota + 1
	// Signalling:
	ReportBridgeStatusOp
)

var (
	errUnknownOp  = errors.New("unknown op")
	errUnexpected = errors.New("unexpected op")
	errTooShort   = errors.New("data too short")
)

func (op Op) String() string {
	switch op {
	case MessagesProofOp:
		return "messages_proof"
	case ReportBridgeStatusOp:
		return "report_bridge_status"
	default:
		return "unknown"
	}
}

// ParseOp returns the op of an encoded message
func ParseOp(bytes []byte) (Op, error) {
	if len(bytes) == 0 {
		return 0, fmt.Errorf("%w: empty message", errTooShort)
	}
	op := Op(bytes[0])
	switch op {
	case MessagesProofOp, ReportBridgeStatusOp:
		return op, nil
	default:
		return 0, fmt.Errorf("%w: %d", errUnknownOp, bytes[0])
	}
}

func expectOp(bytes []byte, expected Op) error {
	op, err := ParseOp(bytes)
	if err != nil {
		return err
	}
	if op != expected {
		return fmt.Errorf("%w: expected %s, got %s", errUnexpected, expected, op)
	}
	return nil
}
