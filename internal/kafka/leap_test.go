package kafka

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Gunvolt24/notifier/pkg/metrics"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestLeapSchedule_Decide(t *testing.T) {
	t.Parallel()

	prod := NewLeapSchedule(true, 0, 0)
	dev := NewLeapSchedule(false, 5000, 50)

	tests := []struct {
		name     string
		s        LeapSchedule
		now      time.Time
		wantKind LeapKind
		wantLeap int64
	}{
		{"prod 05:00 big", prod, at(5, 0), LeapBig, DefaultBigLeap},
		{"prod 06:00 small", prod, at(6, 0), LeapSmall, DefaultSmallLeap},
		{"prod 04:00 small", prod, at(4, 0), LeapSmall, DefaultSmallLeap},
		{"prod 05:01 none", prod, at(5, 1), LeapNone, 0},
		{"dev 04:00 big", dev, at(4, 0), LeapBig, 5000},
		{"dev 03:00 small", dev, at(3, 0), LeapSmall, 50},
		{"dev 04:30 none", dev, at(4, 30), LeapNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kind, leap := tt.s.Decide(tt.now)
			if kind != tt.wantKind || leap != tt.wantLeap {
				t.Fatalf("Decide(%s)=(%s,%d), want (%s,%d)", tt.now.Format("15:04"), kind, leap, tt.wantKind, tt.wantLeap)
			}
		})
	}
}

// Если оба предиката истинны, выигрывает большая перемотка.
func TestLeapSchedule_BigWins(t *testing.T) {
	t.Parallel()

	s := LeapSchedule{
		IsBigLeap:   func(time.Time) bool { return true },
		IsSmallLeap: func(time.Time) bool { return true },
		BigLeap:     7,
		SmallLeap:   3,
	}
	if kind, leap := s.Decide(time.Now()); kind != LeapBig || leap != 7 {
		t.Fatalf("got (%s,%d)", kind, leap)
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempt int64
		max     time.Duration
		want    time.Duration
	}{
		{0, 0, time.Second},
		{1, 0, 2 * time.Second},
		{2, 0, 4 * time.Second},
		{3, 0, 8 * time.Second},
		{10, 0, 1024 * time.Second},
		{33, 0, time.Second << 33},
		{34, 0, time.Duration(math.MaxInt64)},
		{1000, 0, time.Duration(math.MaxInt64)},
		{10, time.Minute, time.Minute},
		{1000, 5 * time.Minute, 5 * time.Minute},
		{1, time.Minute, 2 * time.Second},
		{-1, 0, time.Second},
	}

	for _, tt := range tests {
		if got := Backoff(tt.attempt, tt.max); got != tt.want {
			t.Fatalf("Backoff(%d,%s)=%s, want %s", tt.attempt, tt.max, got, tt.want)
		}
	}
}

func TestRetryTracker(t *testing.T) {
	t.Parallel()

	rt := newRetryTracker("g-retry")
	tp := TopicPartition{Topic: "t", Partition: 7}

	rt.Reset(tp) // ещё нет счётчика
	if rt.Increment(tp) != 1 || rt.Increment(tp) != 2 {
		t.Fatalf("increment sequence broken")
	}
	if got := testutil.ToFloat64(metrics.KafkaRetriesPerPartition.WithLabelValues("g-retry", partitionLabel(tp))); got != 2 {
		t.Fatalf("retry gauge: %v", got)
	}
	rt.Reset(tp)
	if rt.Attempts(tp) != 0 {
		t.Fatalf("reset did not zero attempts")
	}
	rt.Increment(tp)
	rt.Forget(tp)
	if _, ok := rt.counters[tp]; ok {
		t.Fatalf("forgotten partition still tracked")
	}
	if metrics.KafkaRetriesPerPartition.DeleteLabelValues("g-retry", partitionLabel(tp)) {
		t.Fatalf("gauge series must be removed on Forget")
	}
}

func replayFixture(beginErr error) (*fakeLog, *replayDriver, *[]commitCall) {
	fl := newFakeLog()
	fl.beginErr = beginErr
	var held []commitCall
	r := &replayDriver{
		client:   fl,
		group:    "g-replay",
		schedule: NewLeapSchedule(false, 1000, 100),
		enabled:  true,
		log:      nopLogger{},
		rewound:  func(tp TopicPartition, from int64) { held = append(held, commitCall{tp: tp, offset: from}) },
	}
	return fl, r, &held
}

// Цель перемотки ограничена самым ранним оффсетом.
func TestReplay_ClampsToEarliest(t *testing.T) {
	fl, r, held := replayFixture(nil)
	fl.addPartition(p0, 10)
	fl.addPartition(p1, 0)
	fl.Seek(p0, 50)
	fl.Seek(p1, 500)
	fl.seeks = nil

	r.replayWhenLeap(context.Background(), at(13, 0))

	want := []commitCall{{tp: p0, offset: 10}, {tp: p1, offset: 400}}
	if !slices.Equal(fl.seeks, want) {
		t.Fatalf("seeks: %v", fl.seeks)
	}
	if !slices.Equal(*held, []commitCall{{tp: p0, offset: 50}, {tp: p1, offset: 500}}) {
		t.Fatalf("rewound callbacks: %v", *held)
	}
}

func TestReplay_OncePerMinute(t *testing.T) {
	fl, r, _ := replayFixture(nil)
	fl.addPartition(p0, 0)
	fl.Seek(p0, 5000)
	fl.seeks = nil

	r.replayWhenLeap(context.Background(), at(12, 0))
	r.replayWhenLeap(context.Background(), at(12, 0).Add(30*time.Second))

	if !slices.Equal(fl.seeks, []commitCall{{tp: p0, offset: 4000}}) {
		t.Fatalf("seeks: %v", fl.seeks)
	}
}

// Позиция на самом раннем оффсете: перематывать некуда.
func TestReplay_NothingBelowEarliest(t *testing.T) {
	fl, r, held := replayFixture(nil)
	fl.addPartition(p0, 20)
	fl.seeks = nil

	r.replayWhenLeap(context.Background(), at(13, 0))

	if len(fl.seeks) != 0 || len(*held) != 0 {
		t.Fatalf("unexpected rewind: %v", fl.seeks)
	}
}

func TestReplay_DisabledOrNoLeap(t *testing.T) {
	fl, r, _ := replayFixture(nil)
	fl.addPartition(p0, 0)
	fl.Seek(p0, 300)
	fl.seeks = nil

	r.replayWhenLeap(context.Background(), at(13, 15))
	r.enabled = false
	r.replayWhenLeap(context.Background(), at(14, 0))

	if len(fl.seeks) != 0 {
		t.Fatalf("unexpected seeks: %v", fl.seeks)
	}
}

// Ошибка запроса ранних оффсетов пропускает тик; в ту же минуту пробуем снова.
func TestReplay_BeginningOffsetsError_Skips(t *testing.T) {
	fl, r, _ := replayFixture(errors.New("metadata timeout"))
	fl.addPartition(p0, 0)
	fl.Seek(p0, 300)
	fl.seeks = nil

	r.replayWhenLeap(context.Background(), at(13, 0))
	if len(fl.seeks) != 0 {
		t.Fatalf("seek despite error: %v", fl.seeks)
	}

	fl.beginErr = nil
	r.replayWhenLeap(context.Background(), at(13, 0).Add(time.Second))
	if !slices.Equal(fl.seeks, []commitCall{{tp: p0, offset: 200}}) {
		t.Fatalf("seeks after recovery: %v", fl.seeks)
	}
}
