package kafka

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/notifier/pkg/ctxmeta"
	"github.com/Gunvolt24/notifier/pkg/metrics"
)

const tracerName = "github.com/Gunvolt24/notifier/internal/kafka"

// processPartition — записи одной партиции строго по порядку.
// Первая ошибка обработчика останавливает партицию до конца пачки; остальные партиции не ждут.
func (c *Consumer) processPartition(ctx context.Context, b PartitionBatch) error {
	for _, rec := range b.Records {
		// Остановка проверяется между записями: текущая запись всегда доводится до конца.
		if err := ctx.Err(); err != nil {
			return err
		}
		metrics.KafkaRecordsConsumed.WithLabelValues(c.group).Inc()

		if err := c.handleRecord(ctx, rec); err != nil {
			metrics.KafkaRecordsFailed.WithLabelValues(c.group).Inc()
			c.retreat(ctx, rec, err)
			return nil
		}

		if err := c.commit(ctx, rec); err != nil {
			return err
		}
		c.retries.Reset(rec.TopicPartition())
		metrics.KafkaRecordsProcessed.WithLabelValues(c.group).Inc()
	}
	return nil
}

// handleRecord вызывает обработчик с таймаутом; отмена ctx не прерывает начатую обработку.
func (c *Consumer) handleRecord(ctx context.Context, rec *Record) (err error) {
	rctx := ctxmeta.WithRecord(ctx, rec.Topic, rec.Partition, rec.Offset)
	c.log.Debugf(rctx, "record polled group=%s %s", c.group, rec)

	hctx, cancel := context.WithTimeout(context.WithoutCancel(rctx), c.processTimeout)
	defer cancel()

	hctx, span := otel.Tracer(tracerName).Start(hctx, "kafka.process "+rec.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", rec.Topic),
			attribute.String("messaging.consumer.group.name", c.group),
			attribute.Int64("messaging.destination.partition.id", int64(rec.Partition)),
			attribute.Int64("messaging.kafka.offset", rec.Offset),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return c.handler.Handle(hctx, rec)
}

// commit фиксирует offset+1. При повторной обработке (перемотка) оффсет не откатывается назад.
// Коммит не зависит от отмены ctx: запись, доведённая до конца при остановке, должна быть зафиксирована.
func (c *Consumer) commit(ctx context.Context, rec *Record) error {
	tp := rec.TopicPartition()
	next := rec.Offset + 1

	c.mu.Lock()
	prev, ok := c.committed[tp]
	if floor, held := c.floor[tp]; held && (!ok || floor > prev) {
		prev, ok = floor, true
	}
	c.mu.Unlock()
	if ok && next <= prev {
		return nil
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.processTimeout)
	defer cancel()
	if err := c.client.Commit(cctx, tp, next); err != nil {
		c.log.Errorf(ctx, "commit failed group=%s partition=%s offset=%d: %v", c.group, tp, next, err)
		return fmt.Errorf("%w: partition=%s offset=%d: %w", ErrCommitFailed, tp, next, err)
	}

	c.mu.Lock()
	c.committed[tp] = next
	c.mu.Unlock()
	return nil
}

// holdCommitted — перед перемоткой запоминаем позицию как нижнюю границу коммита.
// В начале тика позиция партиции совпадает с зафиксированным оффсетом,
// поэтому повторно обработанные записи не откатят коммит назад.
func (c *Consumer) holdCommitted(tp TopicPartition, pos int64) {
	c.mu.Lock()
	if prev, ok := c.floor[tp]; !ok || prev < pos {
		c.floor[tp] = pos
	}
	c.mu.Unlock()
}

// retreat — ошибка обработки: возвращаем позицию на упавшую запись, ставим партицию на паузу
// и планируем снятие паузы через backoff.
func (c *Consumer) retreat(ctx context.Context, rec *Record, cause error) {
	tp := rec.TopicPartition()

	c.client.Seek(tp, rec.Offset)
	c.client.Pause(tp)
	c.states.set(tp, PartitionPaused)

	attempt := c.retries.Increment(tp)
	backoff := Backoff(attempt, c.maxBackoff)

	c.log.Warnf(ctx, "process failed group=%s partition=%s offset=%d attempt=%d backoff=%s: %v",
		c.group, tp, rec.Offset, attempt, backoff, cause)

	c.schedule(tp, backoff)
}

// schedule — таймер только кладёт партицию в очередь; с клиентом работает цикл.
func (c *Consumer) schedule(tp TopicPartition, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stop, ok := c.timers[tp]; ok {
		stop()
	}
	c.timers[tp] = c.after(d, func() { c.pending.Add(tp) })
}

// forget — партиция отозвана: счётчики, таймер и зафиксированный оффсет больше не нужны.
// Пауза снимается сразу, чтобы при повторном назначении партиция не осталась замороженной.
func (c *Consumer) forget(tp TopicPartition) {
	c.retries.Forget(tp)
	c.pending.Remove(tp)
	c.client.Resume(tp)

	c.mu.Lock()
	if stop, ok := c.timers[tp]; ok {
		stop()
		delete(c.timers, tp)
	}
	delete(c.committed, tp)
	delete(c.floor, tp)
	c.mu.Unlock()
}
