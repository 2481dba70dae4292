package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"

	"github.com/Gunvolt24/notifier/internal/ports"
)

// franzClient — logClient поверх franz-go.
// Позиции партиций отслеживаются здесь: клиент franz-go не отдаёт текущую позицию выборки.
type franzClient struct {
	cl             *kgo.Client
	adm            *kadm.Client
	topic          string
	maxPollRecords int
	log            ports.Logger

	mu        sync.Mutex
	listener  rebalanceListener
	assigned  map[TopicPartition]struct{}
	positions map[TopicPartition]int64
	paused    map[TopicPartition]struct{}
	// staged — перемотки, запрошенные во время назначения; применяются к оффсетам старта.
	staged map[TopicPartition]int64
}

var _ logClient = (*franzClient)(nil)

func newFranzClient(cfg *ConsumerConfig, log ports.Logger) (*franzClient, error) {
	props, err := parseProperties(cfg.Properties)
	if err != nil {
		return nil, err
	}

	fc := &franzClient{
		topic:          cfg.Topic,
		maxPollRecords: props.MaxPollRecords,
		log:            log,
		assigned:       make(map[TopicPartition]struct{}),
		positions:      make(map[TopicPartition]int64),
		paused:         make(map[TopicPartition]struct{}),
	}

	opts := append(cfg.clientOptions(props),
		kgo.AdjustFetchOffsetsFn(fc.adjustOffsets),
		kgo.OnPartitionsRevoked(fc.onRevoked),
		kgo.OnPartitionsLost(fc.onRevoked),
	)

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka: new client: %w", err)
	}
	fc.cl = cl
	fc.adm = kadm.NewClient(cl)
	return fc, nil
}

func (c *franzClient) setListener(l rebalanceListener) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

func (c *franzClient) currentListener() rebalanceListener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listener
}

// adjustOffsets — вызывается franz-go после получения закоммиченных оффсетов новых партиций,
// до начала выборки. Здесь работает мост назначения: отчёт о end-оффсетах и перемотка в начало.
func (c *franzClient) adjustOffsets(ctx context.Context, offsets map[string]map[int32]kgo.Offset) (map[string]map[int32]kgo.Offset, error) {
	var tps []TopicPartition

	c.mu.Lock()
	for topic, parts := range offsets {
		for p, o := range parts {
			tp := TopicPartition{Topic: topic, Partition: p}
			tps = append(tps, tp)
			c.assigned[tp] = struct{}{}
			if eo := o.EpochOffset(); eo.Offset >= 0 {
				c.positions[tp] = eo.Offset
			}
		}
	}
	c.staged = make(map[TopicPartition]int64)
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener.partitionsAssigned(ctx, tps)
	}

	c.mu.Lock()
	for tp, off := range c.staged {
		if parts, ok := offsets[tp.Topic]; ok {
			parts[tp.Partition] = kgo.NewOffset().At(off)
			c.positions[tp] = off
		}
	}
	c.staged = nil
	c.mu.Unlock()

	return offsets, nil
}

func (c *franzClient) onRevoked(ctx context.Context, _ *kgo.Client, lost map[string][]int32) {
	var tps []TopicPartition

	c.mu.Lock()
	for topic, parts := range lost {
		for _, p := range parts {
			tp := TopicPartition{Topic: topic, Partition: p}
			tps = append(tps, tp)
			delete(c.assigned, tp)
			delete(c.positions, tp)
		}
	}
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener.partitionsRevoked(ctx, tps)
	}
}

func (c *franzClient) Poll(ctx context.Context) ([]PartitionBatch, error) {
	var fetches kgo.Fetches
	if c.maxPollRecords > 0 {
		fetches = c.cl.PollRecords(ctx, c.maxPollRecords)
	} else {
		fetches = c.cl.PollFetches(ctx)
	}

	if fetches.IsClientClosed() {
		return nil, ErrClosed
	}
	for _, fe := range fetches.Errors() {
		var dataLoss *kgo.ErrDataLoss
		switch {
		case errors.Is(fe.Err, context.DeadlineExceeded), errors.Is(fe.Err, context.Canceled):
			continue
		case errors.As(fe.Err, &dataLoss):
			c.log.Warnf(ctx, "kafka data loss topic=%s partition=%d: %v", fe.Topic, fe.Partition, fe.Err)
			continue
		default:
			return nil, fmt.Errorf("fetch topic=%s partition=%d: %w", fe.Topic, fe.Partition, fe.Err)
		}
	}

	var (
		batches []PartitionBatch
		reseek  map[string]map[int32]kgo.EpochOffset
	)

	c.mu.Lock()
	fetches.EachPartition(func(p kgo.FetchTopicPartition) {
		if len(p.Records) == 0 {
			return
		}
		tp := TopicPartition{Topic: p.Topic, Partition: p.Partition}

		// Данные, выбранные до паузы, не отдаём; позицию возвращаем туда, где партиция встала.
		if _, isPaused := c.paused[tp]; isPaused {
			if pos, ok := c.positions[tp]; ok {
				if reseek == nil {
					reseek = make(map[string]map[int32]kgo.EpochOffset)
				}
				if reseek[tp.Topic] == nil {
					reseek[tp.Topic] = make(map[int32]kgo.EpochOffset)
				}
				reseek[tp.Topic][tp.Partition] = kgo.EpochOffset{Epoch: -1, Offset: pos}
			}
			return
		}

		b := PartitionBatch{Partition: tp, Records: make([]*Record, 0, len(p.Records))}
		for _, r := range p.Records {
			b.Records = append(b.Records, fromKgo(r))
		}
		c.positions[tp] = p.Records[len(p.Records)-1].Offset + 1
		batches = append(batches, b)
	})
	c.mu.Unlock()

	if len(reseek) > 0 {
		c.cl.SetOffsets(reseek)
	}
	return batches, nil
}

func fromKgo(r *kgo.Record) *Record {
	rec := &Record{
		Topic:     r.Topic,
		Partition: r.Partition,
		Offset:    r.Offset,
		Timestamp: r.Timestamp,
		Key:       r.Key,
		Value:     r.Value,
	}
	if len(r.Headers) > 0 {
		rec.Headers = make([]Header, 0, len(r.Headers))
		for _, h := range r.Headers {
			rec.Headers = append(rec.Headers, Header{Key: h.Key, Value: h.Value})
		}
	}
	return rec
}

// Commit — синхронный коммит одного оффсета с проверкой кода ошибки партиции.
func (c *franzClient) Commit(ctx context.Context, tp TopicPartition, offset int64) error {
	offsets := map[string]map[int32]kgo.EpochOffset{
		tp.Topic: {tp.Partition: {Epoch: -1, Offset: offset}},
	}

	var commitErr error
	c.cl.CommitOffsetsSync(ctx, offsets, func(_ *kgo.Client, _ *kmsg.OffsetCommitRequest, resp *kmsg.OffsetCommitResponse, err error) {
		if err != nil {
			commitErr = err
			return
		}
		for _, t := range resp.Topics {
			for _, p := range t.Partitions {
				if err := kerr.ErrorForCode(p.ErrorCode); err != nil {
					commitErr = fmt.Errorf("topic=%s partition=%d: %w", t.Topic, p.Partition, err)
					return
				}
			}
		}
	})
	return commitErr
}

func (c *franzClient) Seek(tp TopicPartition, offset int64) {
	c.mu.Lock()
	c.positions[tp] = offset
	c.mu.Unlock()
	c.cl.SetOffsets(map[string]map[int32]kgo.EpochOffset{
		tp.Topic: {tp.Partition: {Epoch: -1, Offset: offset}},
	})
}

func (c *franzClient) Pause(tps ...TopicPartition) {
	if len(tps) == 0 {
		return
	}
	c.mu.Lock()
	for _, tp := range tps {
		c.paused[tp] = struct{}{}
	}
	c.mu.Unlock()
	c.cl.PauseFetchPartitions(toTopicMap(tps))
}

func (c *franzClient) Resume(tps ...TopicPartition) {
	if len(tps) == 0 {
		return
	}
	c.mu.Lock()
	for _, tp := range tps {
		delete(c.paused, tp)
	}
	c.mu.Unlock()
	c.cl.ResumeFetchPartitions(toTopicMap(tps))
}

func (c *franzClient) Assignment() []TopicPartition {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TopicPartition, 0, len(c.assigned))
	for tp := range c.assigned {
		out = append(out, tp)
	}
	return sortedPartitions(out)
}

func (c *franzClient) Position(tp TopicPartition) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.positions[tp]
	return pos, ok
}

func (c *franzClient) BeginningOffsets(ctx context.Context, tps []TopicPartition) (map[TopicPartition]int64, error) {
	listed, err := c.adm.ListStartOffsets(ctx, topicsOf(tps)...)
	if err != nil {
		return nil, err
	}
	return lookupOffsets(listed, tps)
}

func (c *franzClient) EndOffsets(ctx context.Context, tps []TopicPartition) (map[TopicPartition]int64, error) {
	listed, err := c.adm.ListEndOffsets(ctx, topicsOf(tps)...)
	if err != nil {
		return nil, err
	}
	return lookupOffsets(listed, tps)
}

// SeekToBeginning — во время назначения перемотка откладывается до возврата оффсетов старта,
// в остальное время выполняется сразу.
func (c *franzClient) SeekToBeginning(ctx context.Context, tps []TopicPartition) error {
	begin, err := c.BeginningOffsets(ctx, tps)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.staged != nil {
		for tp, off := range begin {
			c.staged[tp] = off
		}
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	for tp, off := range begin {
		c.Seek(tp, off)
	}
	return nil
}

func (c *franzClient) AllowRebalance() { c.cl.AllowRebalance() }

func (c *franzClient) Close() error {
	c.cl.CloseAllowingRebalance()
	return nil
}

func toTopicMap(tps []TopicPartition) map[string][]int32 {
	m := make(map[string][]int32, 1)
	for _, tp := range tps {
		m[tp.Topic] = append(m[tp.Topic], tp.Partition)
	}
	return m
}

func topicsOf(tps []TopicPartition) []string {
	seen := make(map[string]struct{}, 1)
	var out []string
	for _, tp := range tps {
		if _, ok := seen[tp.Topic]; ok {
			continue
		}
		seen[tp.Topic] = struct{}{}
		out = append(out, tp.Topic)
	}
	return out
}

func lookupOffsets(listed kadm.ListedOffsets, tps []TopicPartition) (map[TopicPartition]int64, error) {
	out := make(map[TopicPartition]int64, len(tps))
	for _, tp := range tps {
		lo, ok := listed.Lookup(tp.Topic, tp.Partition)
		if !ok {
			return nil, fmt.Errorf("no listed offset for %s", tp)
		}
		if lo.Err != nil {
			return nil, fmt.Errorf("list offset %s: %w", tp, lo.Err)
		}
		out[tp] = lo.Offset
	}
	return out, nil
}
