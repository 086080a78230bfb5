// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"fmt"

	"github.com/luxfi/ids"
)

const reportBridgeStatusLen = 1 + ids.IDLen + 1

// ReportBridgeStatus is sent back to the sender of a lane when the bridge
// becomes congested or uncongested, so that the sender can adjust its
// delivery fees or stop sending.
type ReportBridgeStatus struct {
	BridgeID    ids.ID
	IsCongested bool
}

// Bytes returns the encoded notice
func (r ReportBridgeStatus) Bytes() []byte {
	// Format: op(1) + bridgeID(32) + isCongested(1)
	buf := make([]byte, reportBridgeStatusLen)
	buf[0] = byte(ReportBridgeStatusOp)
	copy(buf[1:], r.BridgeID[:])
	if r.IsCongested {
		buf[reportBridgeStatusLen-1] = 1
	}
	return buf
}

// ParseReportBridgeStatus parses bytes to a bridge status notice
func ParseReportBridgeStatus(bytes []byte) (ReportBridgeStatus, error) {
	if err := expectOp(bytes, ReportBridgeStatusOp); err != nil {
		return ReportBridgeStatus{}, err
	}
	if len(bytes) != reportBridgeStatusLen {
		return ReportBridgeStatus{}, fmt.Errorf("invalid bridge status length: %d", len(bytes))
	}

	r := ReportBridgeStatus{}
	copy(r.BridgeID[:], bytes[1:1+ids.IDLen])
	switch bytes[reportBridgeStatusLen-1] {
	case 0:
	case 1:
		r.IsCongested = true
	default:
		return ReportBridgeStatus{}, fmt.Errorf("invalid congestion flag: %d", bytes[reportBridgeStatusLen-1])
	}
	return r, nil
}

// CongestionNotices returns the pair of notices a bridge sends when it
// becomes congested and uncongested respectively.
func CongestionNotices(bridgeID ids.ID) (congested []byte, uncongested []byte) {
	congested = ReportBridgeStatus{BridgeID: bridgeID, IsCongested: true}.Bytes()
	uncongested = ReportBridgeStatus{BridgeID: bridgeID, IsCongested: false}.Bytes()
	return congested, uncongested
}
