package kafka

import (
	"context"
	"errors"
	"sync"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

type commitCall struct {
	tp     TopicPartition
	offset int64
}

// fakeLog — лог в памяти с позициями, паузой и перемоткой, как у настоящего клиента.
// Poll отдаёт всё от позиции до конца и сдвигает позицию в конец.
type fakeLog struct {
	mu        sync.Mutex
	earliest  map[TopicPartition]int64
	records   map[TopicPartition][]*Record
	assigned  []TopicPartition
	positions map[TopicPartition]int64
	paused    map[TopicPartition]bool

	commits []commitCall
	seeks   []commitCall
	polls   int
	allowed int
	closed  bool

	unboundedCommits int // коммиты без дедлайна

	pollErr   error
	commitErr error
	beginErr  error
	endErr    error
}

var _ logClient = (*fakeLog)(nil)

func newFakeLog() *fakeLog {
	return &fakeLog{
		earliest:  make(map[TopicPartition]int64),
		records:   make(map[TopicPartition][]*Record),
		positions: make(map[TopicPartition]int64),
		paused:    make(map[TopicPartition]bool),
	}
}

// addPartition — партиция, в которой самый ранний доступный оффсет = earliest.
func (f *fakeLog) addPartition(tp TopicPartition, earliest int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.earliest[tp] = earliest
	f.assigned = append(f.assigned, tp)
	f.positions[tp] = earliest
}

// produce — дописывает записи со значениями values.
func (f *fakeLog) produce(tp TopicPartition, values ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range values {
		off := f.earliest[tp] + int64(len(f.records[tp]))
		f.records[tp] = append(f.records[tp], &Record{
			Topic:     tp.Topic,
			Partition: tp.Partition,
			Offset:    off,
			Timestamp: time.Unix(1_700_000_000+off, 0),
			Key:       []byte("k"),
			Value:     []byte(v),
		})
	}
}

func (f *fakeLog) end(tp TopicPartition) int64 {
	return f.earliest[tp] + int64(len(f.records[tp]))
}

func (f *fakeLog) Poll(_ context.Context) ([]PartitionBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	if f.closed {
		return nil, ErrClosed
	}

	var out []PartitionBatch
	for _, tp := range sortedPartitions(f.assigned) {
		if f.paused[tp] {
			continue
		}
		pos := f.positions[tp]
		end := f.end(tp)
		if pos >= end {
			continue
		}
		start := pos - f.earliest[tp]
		if start < 0 {
			start = 0
		}
		recs := append([]*Record(nil), f.records[tp][start:]...)
		f.positions[tp] = end
		out = append(out, PartitionBatch{Partition: tp, Records: recs})
	}
	return out, nil
}

// Commit, как настоящий клиент, не коммитит под отменённым контекстом.
func (f *fakeLog) Commit(ctx context.Context, tp TopicPartition, offset int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return f.commitErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); !ok {
		f.unboundedCommits++
	}
	f.commits = append(f.commits, commitCall{tp: tp, offset: offset})
	return nil
}

func (f *fakeLog) Seek(tp TopicPartition, offset int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions[tp] = offset
	f.seeks = append(f.seeks, commitCall{tp: tp, offset: offset})
}

func (f *fakeLog) Pause(tps ...TopicPartition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tp := range tps {
		f.paused[tp] = true
	}
}

func (f *fakeLog) Resume(tps ...TopicPartition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tp := range tps {
		delete(f.paused, tp)
	}
}

func (f *fakeLog) Assignment() []TopicPartition {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TopicPartition(nil), f.assigned...)
}

func (f *fakeLog) Position(tp TopicPartition) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pos, ok := f.positions[tp]
	return pos, ok
}

func (f *fakeLog) BeginningOffsets(_ context.Context, tps []TopicPartition) (map[TopicPartition]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	out := make(map[TopicPartition]int64, len(tps))
	for _, tp := range tps {
		out[tp] = f.earliest[tp]
	}
	return out, nil
}

func (f *fakeLog) EndOffsets(_ context.Context, tps []TopicPartition) (map[TopicPartition]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.endErr != nil {
		return nil, f.endErr
	}
	out := make(map[TopicPartition]int64, len(tps))
	for _, tp := range tps {
		out[tp] = f.end(tp)
	}
	return out, nil
}

func (f *fakeLog) SeekToBeginning(_ context.Context, tps []TopicPartition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tp := range tps {
		f.positions[tp] = f.earliest[tp]
		f.seeks = append(f.seeks, commitCall{tp: tp, offset: f.earliest[tp]})
	}
	return nil
}

func (f *fakeLog) AllowRebalance() {
	f.mu.Lock()
	f.allowed++
	f.mu.Unlock()
}

func (f *fakeLog) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("already closed")
	}
	f.closed = true
	return nil
}

func (f *fakeLog) commitOffsets(tp TopicPartition) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, c := range f.commits {
		if c.tp == tp {
			out = append(out, c.offset)
		}
	}
	return out
}

func (f *fakeLog) isPaused(tp TopicPartition) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused[tp]
}

// fakeTimers — ручной планировщик backoff-таймеров.
type fakeTimers struct {
	mu    sync.Mutex
	items []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (ft *fakeTimers) after(d time.Duration, fn func()) func() bool {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{delay: d, fn: fn}
	ft.items = append(ft.items, t)
	return func() bool {
		ft.mu.Lock()
		defer ft.mu.Unlock()
		was := !t.stopped && !t.fired
		t.stopped = true
		return was
	}
}

// fireAll — срабатывают все ожидающие таймеры.
func (ft *fakeTimers) fireAll() {
	ft.mu.Lock()
	var due []*fakeTimer
	for _, t := range ft.items {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	ft.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func (ft *fakeTimers) delays() []time.Duration {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	out := make([]time.Duration, 0, len(ft.items))
	for _, t := range ft.items {
		out = append(out, t.delay)
	}
	return out
}

func (ft *fakeTimers) pending() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	n := 0
	for _, t := range ft.items {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// middayNow — 12:30: ни одна плановая перемотка не срабатывает.
func middayNow() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }

func newTestConsumer(fl *fakeLog, cfg *ConsumerConfig, h Handler) (*Consumer, *fakeTimers) {
	if cfg.GroupID == "" {
		cfg.GroupID = "g-test"
	}
	if cfg.Topic == "" {
		cfg.Topic = "events"
	}
	c := newConsumer(fl, cfg, h, nopLogger{})
	timers := &fakeTimers{}
	c.after = timers.after
	c.now = middayNow
	return c, timers
}

// scriptedHandler — запоминает вызовы; fail решает, упасть ли на данной записи.
type scriptedHandler struct {
	mu    sync.Mutex
	calls []commitCall
	fail  func(rec *Record, nth int) error
}

func (h *scriptedHandler) Handle(_ context.Context, rec *Record) error {
	h.mu.Lock()
	nth := 0
	for _, c := range h.calls {
		if c.tp == rec.TopicPartition() && c.offset == rec.Offset {
			nth++
		}
	}
	h.calls = append(h.calls, commitCall{tp: rec.TopicPartition(), offset: rec.Offset})
	h.mu.Unlock()

	if h.fail != nil {
		return h.fail(rec, nth)
	}
	return nil
}

func (h *scriptedHandler) offsets(tp TopicPartition) []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []int64
	for _, c := range h.calls {
		if c.tp == tp {
			out = append(out, c.offset)
		}
	}
	return out
}
