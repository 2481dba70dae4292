package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/kafka"
	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/pkg/metrics"
)

// Projection — модель чтения, в которую применяются события.
// Apply обязан быть идемпотентным: после сбоя запись будет прочитана повторно.
type Projection interface {
	Name() string
	Apply(ctx context.Context, ev domain.Event, meta domain.EventMetadata) error
}

// Projector — обработчик записей лога для одной проекции:
// декодирование конверта, валидация, применение к хранилищу.
type Projector struct {
	projection Projection
	validator  ports.EventValidator
	log        ports.Logger
}

// NewProjector — DI-конструктор.
func NewProjector(projection Projection, validator ports.EventValidator, log ports.Logger) *Projector {
	return &Projector{projection: projection, validator: validator, log: log}
}

// Handler — Projector как обработчик для kafka.Consumer.
// Ключ записи не используется: агрегат берётся из заголовка события.
func (p *Projector) Handler() kafka.Handler {
	return kafka.Decode[string, domain.Event](kafka.StringDecoder, domain.DecodeEvent, p.handle)
}

func (p *Projector) handle(ctx context.Context, rec *kafka.Record, _ string, ev domain.Event) error {
	p.log.Infof(ctx, "processing projection=%s %s %s", p.projection.Name(), rec.Coordinates(), domain.Summary(ev))
	return p.Apply(ctx, ev, domain.EventMetadata{
		Timestamp: rec.Timestamp,
		Partition: rec.Partition,
		Offset:    rec.Offset,
	})
}

// Apply — применить одно событие. Tombstone (ev == nil) пропускается.
// Любая ошибка возвращается вызывающему: запись остаётся незакоммиченной.
func (p *Projector) Apply(ctx context.Context, ev domain.Event, meta domain.EventMetadata) error {
	name := p.projection.Name()
	if ev == nil {
		p.log.Debugf(ctx, "tombstone skipped projection=%s", name)
		return nil
	}

	if err := p.validator.Validate(ctx, ev); err != nil {
		p.log.Warnf(ctx, "validation failed projection=%s %s err=%v", name, domain.Summary(ev), err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := p.projection.Apply(ctx, ev, meta); err != nil {
		p.log.Errorf(ctx, "apply failed projection=%s %s err=%v", name, domain.Summary(ev), err)
		return fmt.Errorf("apply %s to %s: %w", ev.Type(), name, err)
	}

	metrics.ProjectionEventsApplied.WithLabelValues(name, string(ev.Type())).Inc()
	p.log.Debugf(ctx, "event applied projection=%s %s", name, domain.Summary(ev))
	return nil
}
