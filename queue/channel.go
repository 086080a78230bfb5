// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package queue implements the local outbound channels towards sibling
// chains that messages received over the bridge are dispatched into.
package queue

import (
	"errors"
	"sync"
	"sync/atomic"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
)

var (
	ErrQueueFull     = errors.New("channel is full")
	ErrQueueClosed   = errors.New("channel is closed")
	ErrMessageTooBig = errors.New("message exceeds maximum size")
)

const (
	// DefaultMaxBytes is the default maximum number of queued bytes (10MB)
	DefaultMaxBytes = 10 * 1024 * 1024

	// DefaultMaxMessages is the default maximum number of queued messages
	DefaultMaxMessages = 1000

	// MaxMessageSize is the maximum size of a single message (2MB)
	MaxMessageSize = 2 * 1024 * 1024
)

// Channel is a bounded FIFO of messages towards a single destination.
//
// A channel may be suspended by its destination. A suspended channel still
// accepts messages but reports itself as congested.
type Channel struct {
	destination bridgehub.Location
	log         log.Logger

	mu sync.Mutex

	messages [][]byte
	head     int
	tail     int
	size     int

	maxBytes    int64
	maxMessages int
	byteSize    atomic.Int64

	notEmpty *sync.Cond
	notFull  *sync.Cond

	dropped   atomic.Uint64
	enqueued  atomic.Uint64
	dequeued  atomic.Uint64
	highWater atomic.Int64

	suspended atomic.Bool
	closed    atomic.Bool
}

// NewChannel returns an empty channel towards [destination]. Non-positive
// bounds are replaced by their defaults.
func NewChannel(destination bridgehub.Location, maxBytes int64, maxMessages int, log log.Logger) *Channel {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}

	c := &Channel{
		destination: destination,
		log:         log,
		messages:    make([][]byte, maxMessages),
		maxBytes:    maxBytes,
		maxMessages: maxMessages,
	}
	c.notEmpty = sync.NewCond(&c.mu)
	c.notFull = sync.NewCond(&c.mu)
	return c
}

// Destination returns the location messages of this channel are sent to
func (c *Channel) Destination() bridgehub.Location {
	return c.destination
}

// Enqueue appends [msg] to the channel, blocking until there is space
func (c *Channel) Enqueue(msg []byte) error {
	if c.closed.Load() {
		return ErrQueueClosed
	}
	if len(msg) > MaxMessageSize {
		c.dropped.Add(1)
		return ErrMessageTooBig
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.hasSpace(len(msg)) {
		if c.closed.Load() {
			return ErrQueueClosed
		}
		c.notFull.Wait()
	}
	if c.closed.Load() {
		return ErrQueueClosed
	}

	c.push(msg)
	return nil
}

// TryEnqueue appends [msg] to the channel if there is space
func (c *Channel) TryEnqueue(msg []byte) error {
	if c.closed.Load() {
		return ErrQueueClosed
	}
	if len(msg) > MaxMessageSize {
		c.dropped.Add(1)
		return ErrMessageTooBig
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasSpace(len(msg)) {
		c.dropped.Add(1)
		c.log.Debug("dropping message",
			log.Stringer("destination", c.destination),
			log.Int("size", c.size),
			log.UserString("reason", "channel full"),
		)
		return ErrQueueFull
	}

	c.push(msg)
	return nil
}

// Dequeue removes the oldest message, blocking until one is available
func (c *Channel) Dequeue() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.size == 0 && !c.closed.Load() {
		c.notEmpty.Wait()
	}
	if c.size == 0 {
		return nil, ErrQueueClosed
	}

	msg := c.pop()
	c.notFull.Signal()
	return msg, nil
}

// TryDequeue removes the oldest message if there is one
func (c *Channel) TryDequeue() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size == 0 {
		return nil, false
	}

	msg := c.pop()
	c.notFull.Signal()
	return msg, true
}

// DequeueBatch removes up to [n] of the oldest messages
func (c *Channel) DequeueBatch(n int) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size == 0 || n <= 0 {
		return nil
	}

	batch := make([][]byte, min(n, c.size))
	for i := range batch {
		batch[i] = c.pop()
	}
	c.notFull.Broadcast()
	return batch
}

// Len returns the number of queued messages
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

// MaxMessages returns the maximum number of queued messages
func (c *Channel) MaxMessages() int {
	return c.maxMessages
}

// ByteLen returns the number of queued bytes
func (c *Channel) ByteLen() int64 {
	return c.byteSize.Load()
}

// Suspend marks the channel as suspended by its destination
func (c *Channel) Suspend() {
	if !c.suspended.Swap(true) {
		c.log.Info("outbound channel suspended",
			log.Stringer("destination", c.destination),
		)
	}
}

// Resume clears a previous suspension
func (c *Channel) Resume() {
	if c.suspended.Swap(false) {
		c.log.Info("outbound channel resumed",
			log.Stringer("destination", c.destination),
		)
	}
}

func (c *Channel) IsSuspended() bool {
	return c.suspended.Load()
}

// Close drops every queued message and releases waiting goroutines
func (c *Channel) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.messages)
	c.head = 0
	c.tail = 0
	c.size = 0
	c.byteSize.Store(0)

	c.notEmpty.Broadcast()
	c.notFull.Broadcast()
}

// Stats returns channel statistics
func (c *Channel) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		ByteLen:   c.byteSize.Load(),
		Enqueued:  c.enqueued.Load(),
		Dequeued:  c.dequeued.Load(),
		Dropped:   c.dropped.Load(),
		HighWater: c.highWater.Load(),
	}
}

// Stats are the counters of a channel
type Stats struct {
	Len       int
	ByteLen   int64
	Enqueued  uint64
	Dequeued  uint64
	Dropped   uint64
	HighWater int64
}

// hasSpace assumes [c.mu] is held
func (c *Channel) hasSpace(msgSize int) bool {
	return c.size < c.maxMessages && c.byteSize.Load()+int64(msgSize) <= c.maxBytes
}

// push assumes [c.mu] is held and that the channel has space
func (c *Channel) push(msg []byte) {
	c.messages[c.tail] = msg
	c.tail = (c.tail + 1) % len(c.messages)
	c.size++

	newSize := c.byteSize.Add(int64(len(msg)))
	c.enqueued.Add(1)
	for {
		highWater := c.highWater.Load()
		if newSize <= highWater || c.highWater.CompareAndSwap(highWater, newSize) {
			break
		}
	}
	c.notEmpty.Signal()
}

// pop assumes [c.mu] is held and that the channel isn't empty
func (c *Channel) pop() []byte {
	msg := c.messages[c.head]
	c.messages[c.head] = nil
	c.head = (c.head + 1) % len(c.messages)
	c.size--

	c.byteSize.Add(-int64(len(msg)))
	c.dequeued.Add(1)
	return msg
}
