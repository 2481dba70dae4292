package kafka

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/notifier/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// baseBackoff — задержка при attempt = 0; реальная задержка = baseBackoff * 2^attempt.
const baseBackoff = time.Second

// maxBackoffShift — самый большой сдвиг, при котором baseBackoff<<shift ещё помещается в int64.
const maxBackoffShift = 33

// retryTracker — счётчики попыток по партициям.
// Счётчик создаётся лениво при первой ошибке и живёт до отзыва партиции.
type retryTracker struct {
	group    string
	mu       sync.RWMutex
	counters map[TopicPartition]*atomic.Int64
}

func newRetryTracker(group string) *retryTracker {
	return &retryTracker{
		group:    group,
		counters: make(map[TopicPartition]*atomic.Int64),
	}
}

func (t *retryTracker) counter(tp TopicPartition) *atomic.Int64 {
	t.mu.RLock()
	c, ok := t.counters[tp]
	t.mu.RUnlock()
	if ok {
		return c
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok = t.counters[tp]; !ok {
		c = new(atomic.Int64)
		t.counters[tp] = c
	}
	return c
}

// Increment — ошибка блокирующей записи; возвращает новый номер попытки.
func (t *retryTracker) Increment(tp TopicPartition) int64 {
	n := t.counter(tp).Add(1)
	t.gauge(tp).Set(float64(n))
	return n
}

// Reset — успешная обработка любой записи партиции.
func (t *retryTracker) Reset(tp TopicPartition) {
	t.mu.RLock()
	c, ok := t.counters[tp]
	t.mu.RUnlock()
	if !ok {
		return
	}
	if c.Swap(0) != 0 {
		t.gauge(tp).Set(0)
	}
}

// Attempts — текущее число неудачных попыток подряд.
func (t *retryTracker) Attempts(tp TopicPartition) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if c, ok := t.counters[tp]; ok {
		return c.Load()
	}
	return 0
}

// Forget — партиция отозвана: убираем счётчик и серию метрики.
func (t *retryTracker) Forget(tp TopicPartition) {
	t.mu.Lock()
	delete(t.counters, tp)
	t.mu.Unlock()
	metrics.KafkaRetriesPerPartition.DeleteLabelValues(t.group, partitionLabel(tp))
}

func (t *retryTracker) gauge(tp TopicPartition) prometheus.Gauge {
	return metrics.KafkaRetriesPerPartition.WithLabelValues(t.group, partitionLabel(tp))
}

func partitionLabel(tp TopicPartition) string {
	return strconv.FormatInt(int64(tp.Partition), 10)
}

// Backoff — задержка перед возобновлением партиции: 1s * 2^attempt.
// maxDelay > 0 ограничивает задержку сверху; без ограничения рост насыщается на MaxInt64.
func Backoff(attempt int64, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	d := time.Duration(math.MaxInt64)
	if attempt <= maxBackoffShift {
		d = baseBackoff << attempt
	}

	if maxDelay > 0 && d > maxDelay {
		return maxDelay
	}
	return d
}


