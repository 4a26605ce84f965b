package blockstore

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/chronoblock/tscore/internal/logging"
	"github.com/chronoblock/tscore/internal/queue"
)

// VolumeRotated is published whenever FileBlockStore advances to a new
// volume, letting a replica or coordinator process refresh its view of
// which generation now owns which volume slot.
type VolumeRotated struct {
	InstanceID uuid.UUID `json:"instance_id"`
	Volume     int       `json:"volume"`
	Generation uint32    `json:"generation"`
}

// BlockAppended is published on every successful append.
type BlockAppended struct {
	InstanceID uuid.UUID `json:"instance_id"`
	Addr       LogicAddr `json:"addr"`
}

// EventPublisher is the narrow interface FileBlockStore needs; QueuePublisher
// below adapts it onto the pluggable queue.Queue backends (NATS, Redis, or
// in-process), exactly like the teacher's own queue.NewQueue factory selects
// a transport for its own event types.
type EventPublisher interface {
	Publish(event any)
}

// eventKind tags a marshaled event so a subscriber on the other end of the
// queue knows which struct to unmarshal into; json.Marshal on its own loses
// that information once the event has been flattened to bytes.
type eventKind string

const (
	eventKindVolumeRotated eventKind = "volume_rotated"
	eventKindBlockAppended eventKind = "block_appended"
)

type eventEnvelope struct {
	Kind    eventKind       `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// QueuePublisher publishes blockstore lifecycle events onto a queue.Queue.
// Every event goes to the same fixed subject; the envelope's kind field,
// not the subject, tells subscribers which event type it carries.
type QueuePublisher struct {
	q       queue.Queue
	logger  *logging.Logger
	subject string
}

// NewQueuePublisher wraps q, publishing every event to subject. Publish
// errors are logged, not returned — lifecycle notifications are best-effort
// and must never block or fail a block store operation.
func NewQueuePublisher(q queue.Queue, subject string) *QueuePublisher {
	return &QueuePublisher{q: q, logger: logging.Global(), subject: subject}
}

func (p *QueuePublisher) Publish(event any) {
	var kind eventKind
	switch event.(type) {
	case VolumeRotated:
		kind = eventKindVolumeRotated
	case BlockAppended:
		kind = eventKindBlockAppended
	default:
		p.logger.Warn("events: unrecognized event type, dropping")
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("events: failed to marshal event", "error", err)
		return
	}
	envelope, err := json.Marshal(eventEnvelope{Kind: kind, Payload: payload})
	if err != nil {
		p.logger.Warn("events: failed to marshal envelope", "error", err)
		return
	}
	if err := p.q.Publish(context.Background(), p.subject, envelope); err != nil {
		p.logger.Warn("events: failed to publish event", "subject", p.subject, "error", err)
	}
}

// EventSubscriber consumes the envelopes QueuePublisher produces and
// dispatches each to the matching callback. Either callback may be nil, in
// which case events of that kind are silently dropped — a replica that only
// cares about rotations need not handle appends.
type EventSubscriber struct {
	q               queue.Queue
	logger          *logging.Logger
	OnVolumeRotated func(VolumeRotated)
	OnBlockAppended func(BlockAppended)
}

// NewEventSubscriber wraps q for consuming blockstore lifecycle events.
func NewEventSubscriber(q queue.Queue) *EventSubscriber {
	return &EventSubscriber{q: q, logger: logging.Global()}
}

// Subscribe starts consuming subject, dispatching each decoded event to its
// registered callback. It returns once the subscription is registered;
// delivery happens asynchronously on the queue's own consumer goroutine.
func (s *EventSubscriber) Subscribe(subject string) error {
	return s.q.Subscribe(subject, s.handle)
}

func (s *EventSubscriber) handle(data []byte) error {
	var envelope eventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		s.logger.Warn("events: failed to decode envelope", "error", err)
		return err
	}

	switch envelope.Kind {
	case eventKindVolumeRotated:
		var ev VolumeRotated
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		if s.OnVolumeRotated != nil {
			s.OnVolumeRotated(ev)
		}
	case eventKindBlockAppended:
		var ev BlockAppended
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		if s.OnBlockAppended != nil {
			s.OnBlockAppended(ev)
		}
	default:
		s.logger.Warn("events: unrecognized event kind", "kind", string(envelope.Kind))
	}
	return nil
}
