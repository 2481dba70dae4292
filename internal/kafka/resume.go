package kafka

import "sync"

// pendingResume — множество партиций, паузу которых пора снять.
// Пишут таймеры backoff, читает (и очищает) цикл раз за тик.
type pendingResume struct {
	mu  sync.Mutex
	set map[TopicPartition]struct{}
}

func newPendingResume() *pendingResume {
	return &pendingResume{set: make(map[TopicPartition]struct{})}
}

func (q *pendingResume) Add(tp TopicPartition) {
	q.mu.Lock()
	q.set[tp] = struct{}{}
	q.mu.Unlock()
}

// Remove — партиция отозвана до срабатывания таймера.
func (q *pendingResume) Remove(tp TopicPartition) {
	q.mu.Lock()
	delete(q.set, tp)
	q.mu.Unlock()
}

// Drain — забрать всё накопленное без блокировки.
func (q *pendingResume) Drain() []TopicPartition {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.set) == 0 {
		return nil
	}
	out := make([]TopicPartition, 0, len(q.set))
	for tp := range q.set {
		out = append(out, tp)
	}
	clear(q.set)
	return out
}
