package kafka

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/notifier/internal/domain"
)

// typeHeader — заголовок с типом события, чтобы фильтровать записи без разбора тела.
const typeHeader = "@type"

// Publisher — запись событий в топик. Ключ записи — aggregateId,
// поэтому все события одного агрегата попадают в одну партицию и читаются по порядку.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher — writer с подтверждением от всех реплик и хэш-балансировкой по ключу.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafkago.RequireAll,
		Balancer:     &kafkago.Hash{},
	}}
}

// Publish — события пишутся одной пачкой в порядке аргументов.
func (p *Publisher) Publish(ctx context.Context, events ...domain.Event) error {
	msgs := make([]kafkago.Message, 0, len(events))
	for _, ev := range events {
		raw, err := domain.EncodeEvent(ev)
		if err != nil {
			return fmt.Errorf("encode %s: %w", domain.Summary(ev), err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:     []byte(ev.Common().AggregateID.String()),
			Value:   raw,
			Headers: []kafkago.Header{{Key: typeHeader, Value: []byte(ev.Type())}},
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	return nil
}

// PublishTombstone — запись без значения для агрегата (удаление ключа в compacted-топике).
func (p *Publisher) PublishTombstone(ctx context.Context, aggregateID uuid.UUID) error {
	if err := p.writer.WriteMessages(ctx, kafkago.Message{Key: []byte(aggregateID.String())}); err != nil {
		return fmt.Errorf("write tombstone: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
