package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// Handler — обработчик записи. Должен быть идемпотентным: запись может прийти повторно.
type Handler interface {
	Handle(ctx context.Context, rec *Record) error
}

// HandlerFunc — адаптер функции к Handler.
type HandlerFunc func(ctx context.Context, rec *Record) error

func (f HandlerFunc) Handle(ctx context.Context, rec *Record) error { return f(ctx, rec) }

// afterFunc — планировщик таймеров backoff; возвращает функцию отмены.
type afterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Consumer — движок потребления: poll → обработка по партициям → commit,
// пауза и backoff при ошибках, плановые перемотки и реакция на ребалансировку.
type Consumer struct {
	client         logClient
	handler        Handler
	log            ports.Logger
	topic          string
	group          string
	brokers        []string
	pollTimeout    time.Duration
	processTimeout time.Duration
	maxBackoff     time.Duration

	retries *retryTracker
	pending *pendingResume
	replay  *replayDriver
	bridge  *assignmentBridge
	states  *partitionStates

	after afterFunc
	now   func() time.Time

	mu        sync.Mutex
	committed map[TopicPartition]int64 // зафиксировано этим процессом
	floor     map[TopicPartition]int64 // позиция до плановой перемотки
	timers    map[TopicPartition]func() bool

	closeOnce sync.Once
}

// NewConsumer — конструктор поверх franz-go клиента. Оффсеты коммитятся только вручную.
func NewConsumer(cfg *ConsumerConfig, handler Handler, log ports.Logger) (*Consumer, error) {
	fc, err := newFranzClient(cfg, log)
	if err != nil {
		return nil, err
	}
	c := newConsumer(fc, cfg, handler, log)
	fc.setListener(c.bridge)
	return c, nil
}

func newConsumer(client logClient, cfg *ConsumerConfig, handler Handler, log ports.Logger) *Consumer {
	// Параметры по умолчанию (если не заданы в конфиге)
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = time.Second
	}
	processTimeout := cfg.ProcessTimeout
	if processTimeout <= 0 {
		processTimeout = 30 * time.Second
	}
	schedule := cfg.Leaps
	if schedule.IsBigLeap == nil && schedule.IsSmallLeap == nil {
		schedule = NewLeapSchedule(false, DefaultBigLeap, DefaultSmallLeap)
	}

	c := &Consumer{
		client:         client,
		handler:        handler,
		log:            log,
		topic:          cfg.Topic,
		group:          cfg.GroupID,
		brokers:        cfg.Brokers,
		pollTimeout:    pollTimeout,
		processTimeout: processTimeout,
		maxBackoff:     cfg.MaxBackoff,
		retries:        newRetryTracker(cfg.GroupID),
		pending:        newPendingResume(),
		states:         newPartitionStates(),
		after:          realAfterFunc,
		now:            time.Now,
		committed:      make(map[TopicPartition]int64),
		floor:          make(map[TopicPartition]int64),
		timers:         make(map[TopicPartition]func() bool),
	}
	c.replay = &replayDriver{
		client:   client,
		group:    cfg.GroupID,
		schedule: schedule,
		enabled:  cfg.ReplayPeriodically,
		log:      log,
		rewound:  c.holdCommitted,
	}
	c.bridge = &assignmentBridge{
		client:          client,
		group:           cfg.GroupID,
		seekToBeginning: cfg.SeekToBeginning,
		onAssigned:      cfg.OnAssigned,
		onRevoked:       cfg.OnRevoked,
		forget:          c.forget,
		states:          c.states,
		log:             log,
	}
	return c
}

// Run — основной цикл. Каждый тик:
// 1) плановая перемотка (если включена);
// 2) снятие паузы с партиций, у которых истёк backoff;
// 3) poll с ограниченным ожиданием;
// 4) обработка записей по партициям в порядке оффсетов.
// Ошибки обработчика не завершают цикл; ошибки poll и commit — завершают.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v replay=%t seek_to_beginning=%t",
		c.topic, c.group, c.brokers, c.replay.enabled, c.bridge.seekToBeginning)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.tick(ctx); err != nil {
			return err
		}
	}
}

func (c *Consumer) tick(ctx context.Context) error {
	c.replay.replayWhenLeap(ctx, c.now())

	if tps := c.pending.Drain(); len(tps) > 0 {
		c.client.Resume(tps...)
		for _, tp := range tps {
			c.states.set(tp, PartitionActive)
		}
		c.log.Debugf(ctx, "partitions resumed group=%s partitions=%v", c.group, sortedPartitions(tps))
	}

	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	batches, err := c.client.Poll(pollCtx)
	cancel()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Errorf(ctx, "unrecoverable error during poll group=%s: %v", c.group, err)
		return fmt.Errorf("%w: %w", ErrPollFailed, err)
	}
	defer c.client.AllowRebalance()

	if len(batches) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.KafkaPollBody.WithLabelValues(c.group).Observe(time.Since(start).Seconds())
	}()

	for _, b := range batches {
		if err := c.processPartition(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// Close — останавливает таймеры и закрывает клиент. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		for tp, stop := range c.timers {
			stop()
			delete(c.timers, tp)
		}
		c.mu.Unlock()
		retErr = c.client.Close()
	})
	return retErr
}

// Status — назначенные партиции, их состояние и текущие попытки.
func (c *Consumer) Status() ports.ConsumerStatus {
	states := c.states.snapshot()
	tps := make([]TopicPartition, 0, len(states))
	for tp := range states {
		tps = append(tps, tp)
	}

	st := ports.ConsumerStatus{Group: c.group, Topic: c.topic, Partitions: make([]ports.PartitionStatus, 0, len(tps))}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tp := range sortedPartitions(tps) {
		ps := ports.PartitionStatus{
			Topic:     tp.Topic,
			Partition: tp.Partition,
			State:     states[tp].String(),
			Attempts:  c.retries.Attempts(tp),
		}
		if off, ok := c.committed[tp]; ok {
			ps.Committed = &off
		}
		st.Partitions = append(st.Partitions, ps)
	}
	return st
}
