// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the declarative configuration of a bridge instance.
package config

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
	"gopkg.in/yaml.v3"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/congestion"
)

// Lane status kinds
const (
	// StatusNone tracks no local backpressure for the lane
	StatusNone = "none"
	// StatusAlwaysActive explicitly reports the lane as never congested
	StatusAlwaysActive = "always_active"
	// StatusQueue reports the depth of the local outbound queue
	StatusQueue = "queue"
)

const (
	// DefaultMaxOutboundPayloadSize is the maximal size of an exported
	// message (64KiB)
	DefaultMaxOutboundPayloadSize = 64 * 1024

	// DefaultPriorityBoostPerMessage is the priority added to a delivery
	// transaction for every message after the first one
	DefaultPriorityBoostPerMessage int64 = 182_044_444_444_444

	// DefaultInboundBurst is the number of proofs a lane may submit at once
	// when inbound rate limiting is enabled
	DefaultInboundBurst = 4

	// DefaultMessagesPallet is the messages pallet instance relayer calls
	// are checked against
	DefaultMessagesPallet = "bridge_messages"
)

var (
	errNoLanes          = errors.New("no lanes configured")
	errEmptyName        = errors.New("empty bridge name")
	errUnknownStatus    = errors.New("unknown lane status")
	errInvalidSender    = errors.New("invalid sender")
	errInvalidBridgeID  = errors.New("invalid bridge id")
	errNegativeValue    = errors.New("negative value")
	errUnknownExtension = errors.New("unsupported config file extension")
	errZeroBurst        = errors.New("inbound rate limit without burst")
	errInvalidHCLRoot   = errors.New("hcl document is not an object list")
)

// Config is the configuration of a single bridge instance
type Config struct {
	Name     string `json:"name" yaml:"name" hcl:"name"`
	BridgeID string `json:"bridge_id" yaml:"bridge_id" hcl:"bridge_id"`

	MessagesPallet          string `json:"messages_pallet" yaml:"messages_pallet" hcl:"messages_pallet"`
	MaxOutboundPayloadSize  int    `json:"max_outbound_payload_size" yaml:"max_outbound_payload_size" hcl:"max_outbound_payload_size"`
	PriorityBoostPerMessage int64  `json:"priority_boost_per_message" yaml:"priority_boost_per_message" hcl:"priority_boost_per_message"`
	// RefundLane is the lane whose relayers are refunded. Empty disables
	// refunds.
	RefundLane string `json:"refund_lane" yaml:"refund_lane" hcl:"refund_lane"`

	// InboundProofsPerSecond limits the proofs verified per lane. Zero
	// disables the limit.
	InboundProofsPerSecond float64 `json:"inbound_proofs_per_second" yaml:"inbound_proofs_per_second" hcl:"inbound_proofs_per_second"`
	InboundBurst           int     `json:"inbound_burst" yaml:"inbound_burst" hcl:"inbound_burst"`

	MetricsNamespace string `json:"metrics_namespace" yaml:"metrics_namespace" hcl:"metrics_namespace"`

	// Lanes are decoded separately from hcl documents, see decodeHCL
	Lanes []*Lane `json:"lanes" yaml:"lanes" hcl:"-"`
}

// Lane is the configuration of a single lane
type Lane struct {
	ID              string `json:"id" yaml:"id" hcl:"id"`
	SenderParents   int    `json:"sender_parents" yaml:"sender_parents" hcl:"sender_parents"`
	SenderParachain int64  `json:"sender_parachain" yaml:"sender_parachain" hcl:"sender_parachain"`

	// Unset watermarks fall back to the congestion defaults. Zero is a
	// valid low watermark.
	HighWatermark *int64 `json:"high_watermark" yaml:"high_watermark" hcl:"high_watermark"`
	LowWatermark  *int64 `json:"low_watermark" yaml:"low_watermark" hcl:"low_watermark"`
	// Notices enables congestion notices towards the sender
	Notices bool `json:"notices" yaml:"notices" hcl:"notices"`

	Status         string `json:"status" yaml:"status" hcl:"status"`
	QueueThreshold int    `json:"queue_threshold" yaml:"queue_threshold" hcl:"queue_threshold"`
	// QueueMaxMessages bounds the local channel built for a queue lane.
	// Zero uses queue.DefaultMaxMessages.
	QueueMaxMessages int `json:"queue_max_messages" yaml:"queue_max_messages" hcl:"queue_max_messages"`
}

// Default returns the default configuration. It has no lanes.
func Default() *Config {
	return &Config{
		MessagesPallet:          DefaultMessagesPallet,
		MaxOutboundPayloadSize:  DefaultMaxOutboundPayloadSize,
		PriorityBoostPerMessage: DefaultPriorityBoostPerMessage,
		InboundBurst:            DefaultInboundBurst,
	}
}

// Load reads the configuration file at [path] on top of the defaults.
//
// Supported file types: .json, .hcl, .yaml, .yml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error
	switch {
	case strings.HasSuffix(path, ".hcl"):
		unmarshalFunc = decodeHCL
	case strings.HasSuffix(path, ".json"):
		unmarshalFunc = json.Unmarshal
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		unmarshalFunc = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownExtension, path)
	}

	config := Default()
	if err := unmarshalFunc(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}

// decodeHCL decodes an hcl document into [v], which must be a *Config.
//
// hcl v1 merges repeated `lanes { ... }` blocks field by field when they are
// decoded into a slice of structs, so every lane block is decoded on its
// own. Both the block form and the list form `lanes = [{ ... }]` are
// accepted.
func decodeHCL(data []byte, v interface{}) error {
	config, ok := v.(*Config)
	if !ok {
		return fmt.Errorf("unexpected hcl target %T", v)
	}

	file, err := hcl.ParseBytes(data)
	if err != nil {
		return err
	}
	if err := hcl.DecodeObject(config, file); err != nil {
		return err
	}

	root, ok := file.Node.(*ast.ObjectList)
	if !ok {
		return errInvalidHCLRoot
	}
	var nodes []ast.Node
	for _, item := range root.Filter("lanes").Items {
		if list, ok := item.Val.(*ast.ListType); ok {
			nodes = append(nodes, list.List...)
			continue
		}
		nodes = append(nodes, item.Val)
	}

	config.Lanes = make([]*Lane, 0, len(nodes))
	for i, node := range nodes {
		lane := &Lane{}
		if err := hcl.DecodeObject(lane, node); err != nil {
			return fmt.Errorf("lane %d: %w", i, err)
		}
		config.Lanes = append(config.Lanes, lane)
	}
	return nil
}

// Validate returns every problem found in the configuration
func (c *Config) Validate() error {
	var errs error
	if c.Name == "" {
		errs = multierror.Append(errs, errEmptyName)
	}
	if _, err := c.ID(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.MaxOutboundPayloadSize < 0 {
		errs = multierror.Append(errs, fmt.Errorf("max outbound payload size: %w", errNegativeValue))
	}
	if c.PriorityBoostPerMessage < 0 {
		errs = multierror.Append(errs, fmt.Errorf("priority boost per message: %w", errNegativeValue))
	}
	if c.InboundProofsPerSecond < 0 || c.InboundBurst < 0 {
		errs = multierror.Append(errs, fmt.Errorf("inbound rate limit: %w", errNegativeValue))
	} else if c.InboundProofsPerSecond > 0 && c.InboundBurst == 0 {
		errs = multierror.Append(errs, errZeroBurst)
	}
	if c.RefundLane != "" {
		if _, err := bridgehub.ParseLaneID(c.RefundLane); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("refund lane: %w", err))
		}
	}

	if len(c.Lanes) == 0 {
		errs = multierror.Append(errs, errNoLanes)
	}
	for i, lane := range c.Lanes {
		if err := lane.Validate(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("lane %d: %w", i, err))
		}
	}
	return errs
}

// ID returns the bridge id. When none is configured it is derived from the
// bridge name.
func (c *Config) ID() (ids.ID, error) {
	if c.BridgeID == "" {
		return ids.ToID(hash.ComputeHash256([]byte(c.Name)))
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(c.BridgeID, "0x"))
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %w", errInvalidBridgeID, err)
	}
	id, err := ids.ToID(raw)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %w", errInvalidBridgeID, err)
	}
	return id, nil
}

// Validate returns every problem found in the lane configuration
func (l *Lane) Validate() error {
	var errs error
	if _, err := l.LaneID(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := l.Sender(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if isNegative(l.HighWatermark) || isNegative(l.LowWatermark) {
		errs = multierror.Append(errs, fmt.Errorf("watermarks: %w", errNegativeValue))
	} else if err := l.Thresholds().Verify(); err != nil {
		errs = multierror.Append(errs, err)
	}
	switch l.Status {
	case "", StatusNone, StatusAlwaysActive, StatusQueue:
	default:
		errs = multierror.Append(errs, fmt.Errorf("%w: %q", errUnknownStatus, l.Status))
	}
	if l.QueueThreshold < 0 || l.QueueMaxMessages < 0 {
		errs = multierror.Append(errs, fmt.Errorf("queue bounds: %w", errNegativeValue))
	}
	return errs
}

func (l *Lane) LaneID() (bridgehub.LaneID, error) {
	return bridgehub.ParseLaneID(l.ID)
}

// Sender returns the location of the sender of the lane
func (l *Lane) Sender() (bridgehub.Location, error) {
	if l.SenderParents < 0 || l.SenderParents > math.MaxUint8 {
		return bridgehub.Location{}, fmt.Errorf("%w: %d parents", errInvalidSender, l.SenderParents)
	}
	if l.SenderParachain < 0 || l.SenderParachain > math.MaxUint32 {
		return bridgehub.Location{}, fmt.Errorf("%w: parachain %d", errInvalidSender, l.SenderParachain)
	}
	return bridgehub.Location{
		Parents:   uint8(l.SenderParents),
		Parachain: uint32(l.SenderParachain),
	}, nil
}

// Route returns the route of the lane
func (l *Lane) Route() (bridgehub.SenderAndLane, error) {
	lane, err := l.LaneID()
	if err != nil {
		return bridgehub.SenderAndLane{}, err
	}
	sender, err := l.Sender()
	if err != nil {
		return bridgehub.SenderAndLane{}, err
	}
	return bridgehub.NewSenderAndLane(sender, lane), nil
}

// Thresholds returns the congestion thresholds of the lane. Unset
// watermarks fall back to the defaults.
func (l *Lane) Thresholds() congestion.Thresholds {
	thresholds := congestion.DefaultThresholds()
	if l.HighWatermark != nil {
		thresholds.High = uint64(*l.HighWatermark)
	}
	if l.LowWatermark != nil {
		thresholds.Low = uint64(*l.LowWatermark)
	}
	return thresholds
}

func isNegative(v *int64) bool {
	return v != nil && *v < 0
}
