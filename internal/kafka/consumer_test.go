package kafka

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

var p0 = TopicPartition{Topic: "events", Partition: 0}
var p1 = TopicPartition{Topic: "events", Partition: 1}

func tickOK(t *testing.T, c *Consumer) {
	t.Helper()
	if err := c.tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
}

func failOn(offset int64, times int) func(rec *Record, nth int) error {
	return func(rec *Record, nth int) error {
		if rec.Offset == offset && nth < times {
			return errors.New("projection unavailable")
		}
		return nil
	}
}

// Записи партиции обрабатываются по порядку, после каждой коммитится offset+1.
func TestTick_ProcessesInOrder_CommitsNext(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "a", "b", "c", "d")

	h := &scriptedHandler{}
	c, _ := newTestConsumer(fl, &ConsumerConfig{}, h)

	tickOK(t, c)

	if got := h.offsets(p0); !slices.Equal(got, []int64{0, 1, 2, 3}) {
		t.Fatalf("handled offsets: %v", got)
	}
	if got := fl.commitOffsets(p0); !slices.Equal(got, []int64{1, 2, 3, 4}) {
		t.Fatalf("committed offsets: %v", got)
	}
	if fl.allowed != 1 {
		t.Fatalf("AllowRebalance: want 1 call, got %d", fl.allowed)
	}
}

// Запись на оффсете 42 падает дважды: паузы 2s и 4s, коммит 43 только после успеха.
func TestTick_RetryWithBackoff_ThenCommit(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 42)
	fl.produce(p0, "payload")

	h := &scriptedHandler{fail: failOn(42, 2)}
	c, timers := newTestConsumer(fl, &ConsumerConfig{}, h)
	c.bridge.partitionsAssigned(context.Background(), []TopicPartition{p0})

	tickOK(t, c)
	if !fl.isPaused(p0) || c.states.get(p0) != PartitionPaused {
		t.Fatalf("partition must be paused after failure")
	}
	if pos, _ := fl.Position(p0); pos != 42 {
		t.Fatalf("position must be rewound to 42, got %d", pos)
	}

	// пока таймер не сработал, партиция не выбирается
	tickOK(t, c)
	if n := len(h.offsets(p0)); n != 1 {
		t.Fatalf("handler called while paused: %d calls", n)
	}

	timers.fireAll()
	tickOK(t, c)
	timers.fireAll()
	tickOK(t, c)

	if got := timers.delays(); !slices.Equal(got, []time.Duration{2 * time.Second, 4 * time.Second}) {
		t.Fatalf("backoff delays: %v", got)
	}
	if got := h.offsets(p0); !slices.Equal(got, []int64{42, 42, 42}) {
		t.Fatalf("handled offsets: %v", got)
	}
	if got := fl.commitOffsets(p0); !slices.Equal(got, []int64{43}) {
		t.Fatalf("committed offsets: %v", got)
	}
	if got := c.retries.Attempts(p0); got != 0 {
		t.Fatalf("attempts after success: %d", got)
	}
	if c.states.get(p0) != PartitionActive {
		t.Fatalf("partition must be active, got %s", c.states.get(p0))
	}
}

// Успех на любой записи сбрасывает счётчик: следующая ошибка снова ждёт 2s.
func TestTick_SuccessResetsAttempts(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "a", "b")

	h := &scriptedHandler{fail: func(rec *Record, nth int) error {
		if (rec.Offset == 0 && nth == 0) || (rec.Offset == 1 && nth == 0) {
			return errors.New("boom")
		}
		return nil
	}}
	c, timers := newTestConsumer(fl, &ConsumerConfig{}, h)

	tickOK(t, c)
	timers.fireAll()
	tickOK(t, c)

	if got := timers.delays(); !slices.Equal(got, []time.Duration{2 * time.Second, 2 * time.Second}) {
		t.Fatalf("backoff delays: %v", got)
	}
	if got := fl.commitOffsets(p0); !slices.Equal(got, []int64{1}) {
		t.Fatalf("committed offsets: %v", got)
	}
}

// Запись, упавшая k раз, вызывается k+1 раз и коммитится один раз.
func TestTick_AtLeastOnce(t *testing.T) {
	const k = 5

	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "x")

	h := &scriptedHandler{fail: failOn(0, k)}
	c, timers := newTestConsumer(fl, &ConsumerConfig{}, h)

	for range k + 1 {
		tickOK(t, c)
		timers.fireAll()
	}

	if n := len(h.offsets(p0)); n != k+1 {
		t.Fatalf("invocations: want %d, got %d", k+1, n)
	}
	if got := fl.commitOffsets(p0); !slices.Equal(got, []int64{1}) {
		t.Fatalf("committed offsets: %v", got)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second, 32 * time.Second}
	if got := timers.delays(); !slices.Equal(got, want) {
		t.Fatalf("backoff delays: %v", got)
	}
}

// Ошибка в одной партиции не мешает другой в том же тике.
func TestTick_PartitionIsolation(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.addPartition(p1, 0)
	fl.produce(p0, "bad", "next")
	fl.produce(p1, "a", "b")

	h := &scriptedHandler{fail: func(rec *Record, _ int) error {
		if rec.TopicPartition() == p0 && rec.Offset == 0 {
			return errors.New("boom")
		}
		return nil
	}}
	c, _ := newTestConsumer(fl, &ConsumerConfig{}, h)

	tickOK(t, c)

	if got := h.offsets(p0); !slices.Equal(got, []int64{0}) {
		t.Fatalf("p0: rest of batch must be abandoned, got %v", got)
	}
	if got := fl.commitOffsets(p0); len(got) != 0 {
		t.Fatalf("p0: nothing must be committed, got %v", got)
	}
	if got := fl.commitOffsets(p1); !slices.Equal(got, []int64{1, 2}) {
		t.Fatalf("p1 committed: %v", got)
	}
	if fl.isPaused(p1) {
		t.Fatalf("p1 must not be paused")
	}
}

// Паника обработчика — обычная ошибка обработки.
func TestTick_HandlerPanic_Retreats(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "x")

	c, timers := newTestConsumer(fl, &ConsumerConfig{}, HandlerFunc(func(context.Context, *Record) error {
		panic("nil map")
	}))

	tickOK(t, c)

	if !fl.isPaused(p0) || timers.pending() != 1 {
		t.Fatalf("panic must pause partition and schedule resume")
	}
}

// Обработчик получает таймаут, но не отмену внешнего контекста.
func TestHandleRecord_DetachedFromCancel(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "a", "b")

	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	c, _ := newTestConsumer(fl, &ConsumerConfig{ProcessTimeout: time.Minute}, HandlerFunc(func(hctx context.Context, _ *Record) error {
		calls++
		cancel()
		if hctx.Err() != nil {
			t.Errorf("handler ctx canceled together with loop ctx")
		}
		if _, ok := hctx.Deadline(); !ok {
			t.Errorf("handler ctx must carry a deadline")
		}
		return nil
	}))

	err := c.tick(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	// первая запись доведена и зафиксирована, вторая не начата
	if calls != 1 {
		t.Fatalf("handler calls: %d", calls)
	}
	if got := fl.commitOffsets(p0); !slices.Equal(got, []int64{1}) {
		t.Fatalf("committed offsets: %v", got)
	}
	if fl.unboundedCommits != 0 {
		t.Fatalf("commit must run with a deadline")
	}
}

func TestTick_HandlerTimeout_Retreats(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "slow")

	c, _ := newTestConsumer(fl, &ConsumerConfig{ProcessTimeout: 10 * time.Millisecond}, HandlerFunc(func(ctx context.Context, _ *Record) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	tickOK(t, c)

	if !fl.isPaused(p0) {
		t.Fatalf("timed out record must pause partition")
	}
	if got := c.retries.Attempts(p0); got != 1 {
		t.Fatalf("attempts: %d", got)
	}
}

func TestTick_PollError_Fatal(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	broker := errors.New("broker unreachable")
	fl.pollErr = broker

	c, _ := newTestConsumer(fl, &ConsumerConfig{}, &scriptedHandler{})

	err := c.Run(context.Background())
	if !errors.Is(err, ErrPollFailed) || !errors.Is(err, broker) {
		t.Fatalf("want ErrPollFailed wrapping cause, got %v", err)
	}
	if fl.polls != 1 {
		t.Fatalf("loop must stop on first poll error, polls=%d", fl.polls)
	}
}

func TestTick_CommitError_Fatal(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "a")
	fl.commitErr = errors.New("coordinator not available")

	c, _ := newTestConsumer(fl, &ConsumerConfig{}, &scriptedHandler{})

	err := c.tick(context.Background())
	if !errors.Is(err, ErrCommitFailed) {
		t.Fatalf("want ErrCommitFailed, got %v", err)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)

	c, _ := newTestConsumer(fl, &ConsumerConfig{PollTimeout: time.Millisecond}, &scriptedHandler{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// Перемотка не откатывает коммит: повторно обработанные записи ничего не коммитят.
func TestReplay_DoesNotMoveCommitBackwards(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "0", "1", "2", "3", "4")

	h := &scriptedHandler{}
	c, _ := newTestConsumer(fl, &ConsumerConfig{ReplayPeriodically: true}, h)

	tickOK(t, c)
	commitsBefore := fl.commitOffsets(p0)

	// 13:00 в non-prod — малая перемотка на 100, ограничена началом лога
	c.now = func() time.Time { return time.Date(2026, 3, 1, 13, 0, 5, 0, time.UTC) }
	tickOK(t, c)

	if got := h.offsets(p0); !slices.Equal(got, []int64{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}) {
		t.Fatalf("replayed offsets: %v", got)
	}
	if got := fl.commitOffsets(p0); !slices.Equal(got, commitsBefore) {
		t.Fatalf("replay must not commit again: before=%v after=%v", commitsBefore, got)
	}

	// новая запись в ту же минуту: перемотки нет, коммит идёт дальше
	fl.produce(p0, "5")
	tickOK(t, c)
	if got := h.offsets(p0); got[len(got)-1] != 5 || len(got) != 11 {
		t.Fatalf("offsets after replay: %v", got)
	}
	if got := fl.commitOffsets(p0); got[len(got)-1] != 6 {
		t.Fatalf("last commit: %v", got)
	}
}

// После перезапуска зафиксированного оффсета в памяти нет: нижней границей служит позиция.
func TestReplay_AfterRestart_HoldsCommitFloor(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "0", "1", "2")
	fl.Seek(p0, 3)

	h := &scriptedHandler{}
	c, _ := newTestConsumer(fl, &ConsumerConfig{ReplayPeriodically: true}, h)
	c.now = func() time.Time { return time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC) }

	tickOK(t, c)

	if got := h.offsets(p0); !slices.Equal(got, []int64{0, 1, 2}) {
		t.Fatalf("replayed offsets: %v", got)
	}
	if got := fl.commitOffsets(p0); len(got) != 0 {
		t.Fatalf("commit below floor: %v", got)
	}
	// нижняя граница не выдаётся за зафиксированный оффсет
	c.bridge.partitionsAssigned(context.Background(), []TopicPartition{p0})
	if st := c.Status(); len(st.Partitions) != 1 || st.Partitions[0].Committed != nil {
		t.Fatalf("status must not report floor as committed: %+v", st.Partitions)
	}
}

// Пауза, backoff и снятие паузы по таймеру через очередь тика.
func TestSchedule_ResumeGoesThroughPending(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "x")

	c, timers := newTestConsumer(fl, &ConsumerConfig{}, &scriptedHandler{fail: failOn(0, 1)})
	tickOK(t, c)

	timers.fireAll()
	// таймер сам клиент не трогает
	if !fl.isPaused(p0) {
		t.Fatalf("timer must not resume the client directly")
	}
	if got := c.pending.Drain(); !slices.Equal(got, []TopicPartition{p0}) {
		t.Fatalf("pending: %v", got)
	}
}

func TestForget_OnRevoke(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "x")

	var revoked []TopicPartition
	cfg := &ConsumerConfig{OnRevoked: func(_ context.Context, tps []TopicPartition) { revoked = tps }}
	c, timers := newTestConsumer(fl, cfg, &scriptedHandler{fail: failOn(0, 100)})
	c.bridge.partitionsAssigned(context.Background(), []TopicPartition{p0})

	tickOK(t, c)
	if timers.pending() != 1 || c.retries.Attempts(p0) != 1 {
		t.Fatalf("precondition: one failure with a scheduled resume")
	}

	c.bridge.partitionsRevoked(context.Background(), []TopicPartition{p0})

	if timers.pending() != 0 {
		t.Fatalf("resume timer must be stopped")
	}
	if c.retries.Attempts(p0) != 0 || fl.isPaused(p0) {
		t.Fatalf("retry state must be forgotten")
	}
	if !slices.Equal(revoked, []TopicPartition{p0}) {
		t.Fatalf("OnRevoked: %v", revoked)
	}
	if st := c.Status(); len(st.Partitions) != 0 {
		t.Fatalf("status must not list revoked partition: %+v", st)
	}
}

func TestClose_StopsTimers(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.produce(p0, "x")

	c, timers := newTestConsumer(fl, &ConsumerConfig{}, &scriptedHandler{fail: failOn(0, 1)})
	tickOK(t, c)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if timers.pending() != 0 || !fl.closed {
		t.Fatalf("Close must stop timers and close client")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestStatus_ReportsPartitions(t *testing.T) {
	fl := newFakeLog()
	fl.addPartition(p0, 0)
	fl.addPartition(p1, 0)
	fl.produce(p0, "a")
	fl.produce(p1, "b")

	c, _ := newTestConsumer(fl, &ConsumerConfig{GroupID: "inbox"}, &scriptedHandler{fail: func(rec *Record, _ int) error {
		if rec.Partition == 1 {
			return errors.New("boom")
		}
		return nil
	}})
	c.bridge.partitionsAssigned(context.Background(), []TopicPartition{p1, p0})
	tickOK(t, c)

	st := c.Status()
	if st.Group != "inbox" || st.Topic != "events" || len(st.Partitions) != 2 {
		t.Fatalf("status: %+v", st)
	}
	first, second := st.Partitions[0], st.Partitions[1]
	if first.Partition != 0 || first.State != "active" || first.Committed == nil || *first.Committed != 1 {
		t.Fatalf("p0 status: %+v", first)
	}
	if second.Partition != 1 || second.State != "paused" || second.Attempts != 1 || second.Committed != nil {
		t.Fatalf("p1 status: %+v", second)
	}
}
