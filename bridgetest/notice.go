// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridgetest

import (
	"context"
	"sync"
	"testing"

	"github.com/luxfi/bridgehub"
)

// Notice is a notice handed to a NoticeSender
type Notice struct {
	Destination bridgehub.Location
	Payload     []byte
}

// NoticeSender records every notice it is asked to send.
// Set SendNoticeF to customize behavior, or leave nil to record notices.
// Set CantSendNotice to true to fail on unexpected calls.
type NoticeSender struct {
	T *testing.T

	SendNoticeF func(context.Context, bridgehub.Location, []byte) error

	CantSendNotice bool

	lock    sync.Mutex
	notices []Notice
}

func (s *NoticeSender) SendNotice(ctx context.Context, destination bridgehub.Location, payload []byte) error {
	if s.SendNoticeF != nil {
		return s.SendNoticeF(ctx, destination, payload)
	}
	if s.CantSendNotice && s.T != nil {
		s.T.Fatal("unexpected SendNotice")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.notices = append(s.notices, Notice{
		Destination: destination,
		Payload:     payload,
	})
	return nil
}

// Notices returns the recorded notices in order
func (s *NoticeSender) Notices() []Notice {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]Notice(nil), s.notices...)
}
