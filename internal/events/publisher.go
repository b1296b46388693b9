package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/bzhu9/BasicChat/internal/domain"
)

const (
	TypeMessageCreated      = "message.created"
	TypeConversationCreated = "conversation.created"
	TypeGroupChatCreated    = "group_chat.created"
)

// Event is the payload pushed to the realtime fan-out pipeline. Delivery to
// connected clients happens downstream of the topic.
type Event struct {
	Type     string          `json:"type"`
	RecordID string          `json:"record_id"`
	Message  *domain.Message `json:"message,omitempty"`
}

// Publisher writes chat events to Kafka. A nil Publisher is valid and drops
// everything; publish failures are logged and never fail the caller.
type Publisher struct {
	writer *kafka.Writer
	log    *zap.SugaredLogger
}

func NewPublisher(brokers []string, topic string, log *zap.SugaredLogger) *Publisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w, log: log}
}

func (p *Publisher) publish(ctx context.Context, ev Event) {
	if p == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorw("marshal event", "type", ev.Type, "err", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(ev.RecordID),
		Value: b,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Errorw("publish event", "type", ev.Type, "record_id", ev.RecordID, "err", err)
	}
}

func (p *Publisher) MessageCreated(ctx context.Context, recordID string, m domain.Message) {
	p.publish(ctx, Event{Type: TypeMessageCreated, RecordID: recordID, Message: &m})
}

func (p *Publisher) ConversationCreated(ctx context.Context, recordID string, m domain.Message) {
	p.publish(ctx, Event{Type: TypeConversationCreated, RecordID: recordID, Message: &m})
}

func (p *Publisher) GroupChatCreated(ctx context.Context, recordID string, m domain.Message) {
	p.publish(ctx, Event{Type: TypeGroupChatCreated, RecordID: recordID, Message: &m})
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
