// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/bridgehub"
)

const messagesProofHeaderLen = 1 + ids.IDLen + bridgehub.LaneIDLen + 8 + 8 + 4

// Message is a single message received over a lane
type Message struct {
	Lane    bridgehub.LaneID
	Nonce   uint64
	Payload []byte
}

// MessagesProof proves that the messages [NoncesStart, NoncesEnd] were sent
// over Lane at the bridged chain header BridgedHeaderHash.
type MessagesProof struct {
	BridgedHeaderHash ids.ID
	StorageProof      [][]byte
	Lane              bridgehub.LaneID
	NoncesStart       uint64
	NoncesEnd         uint64
}

// MessagesCount returns the number of messages covered by the proof
func (p *MessagesProof) MessagesCount() uint64 {
	if p.NoncesEnd < p.NoncesStart {
		return 0
	}
	return p.NoncesEnd - p.NoncesStart + 1
}

// MarshalMessagesProof marshals a messages proof to bytes
func MarshalMessagesProof(p *MessagesProof) ([]byte, error) {
	// Format: op(1) + hash(32) + lane(4) + start(8) + end(8) + count(4) + [len(4) + node]...
	size := messagesProofHeaderLen
	for _, node := range p.StorageProof {
		size += 4 + len(node)
	}

	buf := make([]byte, size)
	buf[0] = byte(MessagesProofOp)
	offset := 1
	offset += copy(buf[offset:], p.BridgedHeaderHash[:])
	offset += copy(buf[offset:], p.Lane[:])
	binary.BigEndian.PutUint64(buf[offset:], p.NoncesStart)
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], p.NoncesEnd)
	offset += 8
	binary.BigEndian.PutUint32(buf[offset:], uint32(len(p.StorageProof)))
	offset += 4
	for _, node := range p.StorageProof {
		binary.BigEndian.PutUint32(buf[offset:], uint32(len(node)))
		copy(buf[offset+4:], node)
		offset += 4 + len(node)
	}
	return buf, nil
}

// ParseMessagesProof parses bytes to a messages proof
func ParseMessagesProof(bytes []byte) (*MessagesProof, error) {
	if err := expectOp(bytes, MessagesProofOp); err != nil {
		return nil, err
	}
	if len(bytes) < messagesProofHeaderLen {
		return nil, fmt.Errorf("%w: %d", errTooShort, len(bytes))
	}

	p := &MessagesProof{}
	offset := 1
	offset += copy(p.BridgedHeaderHash[:], bytes[offset:offset+ids.IDLen])
	offset += copy(p.Lane[:], bytes[offset:offset+bridgehub.LaneIDLen])
	p.NoncesStart = binary.BigEndian.Uint64(bytes[offset:])
	offset += 8
	p.NoncesEnd = binary.BigEndian.Uint64(bytes[offset:])
	offset += 8
	count := binary.BigEndian.Uint32(bytes[offset:])
	offset += 4

	// every node needs at least its length prefix
	if uint64(count)*4 > uint64(len(bytes)-offset) {
		return nil, fmt.Errorf("%w: %d storage proof nodes in %d bytes", errTooShort, count, len(bytes))
	}
	p.StorageProof = make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(bytes) < offset+4 {
			return nil, fmt.Errorf("%w: node %d length", errTooShort, i)
		}
		nodeLen := int(binary.BigEndian.Uint32(bytes[offset:]))
		offset += 4
		if len(bytes)-offset < nodeLen {
			return nil, fmt.Errorf("%w: node %d", errTooShort, i)
		}
		p.StorageProof = append(p.StorageProof, bytes[offset:offset+nodeLen])
		offset += nodeLen
	}
	if offset != len(bytes) {
		return nil, fmt.Errorf("%d trailing bytes after messages proof", len(bytes)-offset)
	}
	return p, nil
}
