// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hub assembles a bridge instance from its configuration.
package hub

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/luxfi/metric"

	log "github.com/luxfi/log"

	"github.com/luxfi/bridgehub"
	"github.com/luxfi/bridgehub/config"
	"github.com/luxfi/bridgehub/congestion"
	"github.com/luxfi/bridgehub/hauler"
	"github.com/luxfi/bridgehub/inbound"
	"github.com/luxfi/bridgehub/message"
	"github.com/luxfi/bridgehub/queue"
	"github.com/luxfi/bridgehub/refund"
)

var (
	errMissingTransport = errors.New("missing transport")
	errMissingVerifier  = errors.New("missing proof verifier")
	errMissingLedger    = errors.New("missing reward ledger")
	errMissingChannel   = errors.New("missing local channel")
	errDispatchRefused  = errors.New("dispatch refused lane")
)

// Deps are the external collaborators of a bridge
type Deps struct {
	Log        log.Logger
	Registerer metric.Registerer

	Transport hauler.Transport
	Verifier  inbound.ProofVerifier
	// Dispatcher executes inbound messages. Nil disables dispatch. A
	// Dispatcher that is also an inbound.MessageDispatch may refuse lanes.
	Dispatcher inbound.Dispatcher
	// Ledger is required when refunds are enabled
	Ledger refund.RewardLedger
	// Channels are the local outbound channels towards lane senders. A
	// channel is built for every queue lane whose sender has none.
	Channels []*queue.Channel
	// Notices sends congestion notices. Defaults to enqueueing them on
	// Channels.
	Notices congestion.NoticeSender
}

// Hub is a single bridge instance
type Hub struct {
	log      log.Logger
	name     string
	bridgeID ids.ID

	registry *bridgehub.Registry
	router   *queue.Router
	handlers []*congestion.LaneHandler
	notifier *congestion.Notifier

	exporter *hauler.Exporter
	delivery *hauler.DeliveryAdapter
	gate     *inbound.Gate
	dispatch inbound.MessageDispatch
	validity *refund.Adapter
}

// New validates [cfg] and builds the bridge it describes
func New(cfg *config.Config, deps Deps) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Transport == nil {
		return nil, errMissingTransport
	}
	if deps.Verifier == nil {
		return nil, errMissingVerifier
	}
	if deps.Log == nil {
		deps.Log = log.NewNoOpLogger()
	}
	if deps.Registerer == nil {
		deps.Registerer = metric.NewRegistry()
	}

	bridgeID, err := cfg.ID()
	if err != nil {
		return nil, err
	}
	channels, err := laneChannels(cfg, deps.Channels, deps.Log)
	if err != nil {
		return nil, err
	}
	router, err := queue.NewRouter(channels...)
	if err != nil {
		return nil, err
	}
	if deps.Notices == nil {
		deps.Notices = router
	}

	entries := make([]bridgehub.Entry, 0, len(cfg.Lanes))
	for _, lane := range cfg.Lanes {
		route, err := lane.Route()
		if err != nil {
			return nil, err
		}
		status, err := statusProvider(router, route, lane)
		if err != nil {
			return nil, err
		}
		entries = append(entries, bridgehub.Entry{
			Route:  route,
			Status: status,
		})
	}
	registry, err := bridgehub.NewRegistry(entries...)
	if err != nil {
		return nil, err
	}

	namespace := cfg.MetricsNamespace
	congestionMetrics, err := congestion.NewMetrics(deps.Registerer, namespace)
	if err != nil {
		return nil, err
	}

	congested, uncongested := message.CongestionNotices(bridgeID)
	handlers := make([]*congestion.LaneHandler, len(cfg.Lanes))
	notifierHandlers := make([]congestion.Handler, len(cfg.Lanes))
	for i, lane := range cfg.Lanes {
		var notices congestion.Notices
		if lane.Notices {
			notices = congestion.Notices{
				Congested:   congested,
				Uncongested: uncongested,
			}
		}
		handlers[i] = congestion.NewLaneHandler(
			deps.Log,
			entries[i].Route,
			lane.Thresholds(),
			notices,
			deps.Notices,
			congestionMetrics,
		)
		notifierHandlers[i] = handlers[i]
	}
	notifier := congestion.NewNotifier(deps.Log, notifierHandlers...)

	exporter, err := hauler.NewExporter(
		deps.Log,
		registry,
		deps.Transport,
		notifier,
		cfg.MaxOutboundPayloadSize,
		deps.Registerer,
		namespace,
	)
	if err != nil {
		return nil, err
	}
	delivery, err := hauler.NewDeliveryAdapter(deps.Log, notifier, deps.Registerer, namespace)
	if err != nil {
		return nil, err
	}
	verifier := deps.Verifier
	if cfg.InboundProofsPerSecond > 0 {
		verifier = inbound.NewThrottledVerifier(
			verifier,
			inbound.NewRateThrottler(cfg.InboundProofsPerSecond, cfg.InboundBurst, registry.Lanes()...),
			deps.Log,
		)
	}
	gate, err := inbound.NewGate(deps.Log, registry, verifier, deps.Registerer, namespace)
	if err != nil {
		return nil, err
	}

	var inner refund.Extension = refund.NoOpExtension{}
	if cfg.RefundLane != "" {
		if deps.Ledger == nil {
			return nil, errMissingLedger
		}
		refundLane, err := bridgehub.ParseLaneID(cfg.RefundLane)
		if err != nil {
			return nil, err
		}
		inner = refund.NewPriorityRefund(
			deps.Log,
			cfg.MessagesPallet,
			refundLane,
			uint64(cfg.PriorityBoostPerMessage),
			deps.Ledger,
		)
	}
	validity, err := refund.NewAdapter(deps.Log, registry, cfg.MessagesPallet, inner, deps.Registerer, namespace)
	if err != nil {
		return nil, err
	}

	h := &Hub{
		log:      deps.Log,
		name:     cfg.Name,
		bridgeID: bridgeID,
		registry: registry,
		router:   router,
		handlers: handlers,
		notifier: notifier,
		exporter: exporter,
		delivery: delivery,
		gate:     gate,
		validity: validity,
	}
	switch dispatcher := deps.Dispatcher.(type) {
	case nil:
	case inbound.MessageDispatch:
		h.dispatch = dispatcher
	default:
		h.dispatch = inbound.NewDispatch(dispatcher)
	}

	h.log.Info("initialized bridge",
		log.UserString("name", cfg.Name),
		log.Stringer("bridgeID", bridgeID),
		log.Int("lanes", registry.Len()),
	)
	return h, nil
}

// laneChannels returns [channels] plus a new channel towards the sender of
// every queue lane that has none
func laneChannels(cfg *config.Config, channels []*queue.Channel, logger log.Logger) ([]*queue.Channel, error) {
	destinations := set.NewSet[bridgehub.Location](len(channels))
	for _, channel := range channels {
		destinations.Add(channel.Destination())
	}

	result := append([]*queue.Channel(nil), channels...)
	for _, lane := range cfg.Lanes {
		if lane.Status != config.StatusQueue {
			continue
		}
		sender, err := lane.Sender()
		if err != nil {
			return nil, err
		}
		if destinations.Contains(sender) {
			continue
		}
		destinations.Add(sender)
		result = append(result, queue.NewChannel(sender, 0, lane.QueueMaxMessages, logger))
	}
	return result, nil
}

func statusProvider(router *queue.Router, route bridgehub.SenderAndLane, lane *config.Lane) (bridgehub.StatusProvider, error) {
	switch lane.Status {
	case config.StatusAlwaysActive:
		return bridgehub.AlwaysActive{}, nil
	case config.StatusQueue:
		channel, ok := router.Channel(route.Location)
		if !ok {
			return nil, fmt.Errorf("%w: towards %s", errMissingChannel, route.Location)
		}
		return queue.NewStatusProvider(channel, lane.QueueThreshold), nil
	default:
		return nil, nil
	}
}

// BridgeID returns the identifier carried by congestion notices
func (h *Hub) BridgeID() ids.ID {
	return h.bridgeID
}

// Registry returns the lanes of the bridge
func (h *Hub) Registry() *bridgehub.Registry {
	return h.registry
}

// Router returns the local outbound channels of the bridge
func (h *Hub) Router() *queue.Router {
	return h.router
}

// IsCongested returns the last congestion state signalled for [lane]
func (h *Hub) IsCongested(lane bridgehub.LaneID) bool {
	for _, handler := range h.handlers {
		if handler.Route().Lane == lane {
			return handler.IsCongested()
		}
	}
	return false
}

// Export sends [payload] from the sender of [route] over its lane
func (h *Hub) Export(ctx context.Context, route bridgehub.SenderAndLane, payload []byte) (ids.ID, error) {
	return h.exporter.Export(ctx, route, payload)
}

// ExportFrom sends [payload] over the lane of [sender]
func (h *Hub) ExportFrom(ctx context.Context, sender bridgehub.Location, payload []byte) (ids.ID, error) {
	return h.exporter.ExportFrom(ctx, sender, payload)
}

// OnMessagesDelivered must be called by the transport when messages of
// [lane] are confirmed
func (h *Hub) OnMessagesDelivered(ctx context.Context, lane bridgehub.LaneID, enqueued uint64) {
	h.delivery.OnMessagesDelivered(ctx, lane, enqueued)
}

// OnInboundBatch verifies a batch of messages received over [lane] and
// dispatches them if a dispatcher is configured. If the dispatcher refuses
// the lane the proven messages are returned with an error and nothing is
// dispatched.
func (h *Hub) OnInboundBatch(ctx context.Context, lane bridgehub.LaneID, proofBytes []byte, count uint32) (*inbound.ProvedMessages, []inbound.DispatchResult, error) {
	proved, err := h.gate.OnInboundBatch(ctx, lane, proofBytes, count)
	if err != nil {
		return nil, nil, err
	}
	if h.dispatch == nil {
		return proved, nil, nil
	}

	results, ok := inbound.DispatchAll(ctx, h.dispatch, proved)
	if !ok {
		h.log.Warn("dispatcher refused proven messages",
			log.Stringer("lane", proved.Lane),
			log.Int("messages", len(proved.Messages)),
		)
		return proved, nil, fmt.Errorf("%w: %s", errDispatchRefused, proved.Lane)
	}
	return proved, results, nil
}

// ValidateDeliveryTx decides whether a relayer transaction may enter the pool
func (h *Hub) ValidateDeliveryTx(tx *refund.Transaction) (refund.Validity, error) {
	return h.validity.Validate(tx)
}

// PreDispatch is called before a relayer transaction is executed
func (h *Hub) PreDispatch(tx *refund.Transaction) (*refund.Pre, error) {
	return h.validity.PreDispatch(tx)
}

// PostDispatch is called after a relayer transaction is executed
func (h *Hub) PostDispatch(pre *refund.Pre, info refund.PostDispatchInfo, dispatchErr error) error {
	return h.validity.PostDispatch(pre, info, dispatchErr)
}
