package kafka

import (
	"context"
	"slices"
	"sync"

	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/pkg/metrics"
)

// AssignedFunc — партиция назначена; lastOffset = endOffset-1 на момент назначения (до перемотки).
type AssignedFunc func(ctx context.Context, tp TopicPartition, lastOffset int64)

// RevokedFunc — партиции отозваны или потеряны.
type RevokedFunc func(ctx context.Context, tps []TopicPartition)

// PartitionState — состояние партиции с точки зрения движка.
type PartitionState int

const (
	PartitionUnassigned PartitionState = iota
	PartitionActive
	PartitionPaused
)

func (s PartitionState) String() string {
	switch s {
	case PartitionActive:
		return "active"
	case PartitionPaused:
		return "paused"
	default:
		return "unassigned"
	}
}

// partitionStates — Unassigned → Active ⇄ Paused → Unassigned.
type partitionStates struct {
	mu    sync.RWMutex
	state map[TopicPartition]PartitionState
}

func newPartitionStates() *partitionStates {
	return &partitionStates{state: make(map[TopicPartition]PartitionState)}
}

func (s *partitionStates) assign(tp TopicPartition) {
	s.mu.Lock()
	if _, ok := s.state[tp]; !ok {
		s.state[tp] = PartitionActive
	}
	s.mu.Unlock()
}

// set — переход Active ⇄ Paused; для неназначенной партиции игнорируется.
func (s *partitionStates) set(tp TopicPartition, st PartitionState) {
	s.mu.Lock()
	if _, ok := s.state[tp]; ok {
		s.state[tp] = st
	}
	s.mu.Unlock()
}

func (s *partitionStates) revoke(tp TopicPartition) {
	s.mu.Lock()
	delete(s.state, tp)
	s.mu.Unlock()
}

func (s *partitionStates) get(tp TopicPartition) PartitionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state[tp]
}

func (s *partitionStates) snapshot() map[TopicPartition]PartitionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[TopicPartition]PartitionState, len(s.state))
	for tp, st := range s.state {
		out[tp] = st
	}
	return out
}

// assignmentBridge — реакция на ребалансировку группы.
type assignmentBridge struct {
	client          logClient
	group           string
	seekToBeginning bool
	onAssigned      AssignedFunc
	onRevoked       RevokedFunc
	// forget — очистка состояния движка по отозванной партиции.
	forget func(tp TopicPartition)
	states *partitionStates
	log    ports.Logger
}

var _ rebalanceListener = (*assignmentBridge)(nil)

// partitionsAssigned — сначала сообщаем (партиция, endOffset-1), затем, если нужно, перематываем в начало.
// Ошибка запроса end-оффсетов не мешает перемотке.
func (b *assignmentBridge) partitionsAssigned(ctx context.Context, tps []TopicPartition) {
	if len(tps) == 0 {
		return
	}
	tps = sortedPartitions(tps)

	for _, tp := range tps {
		b.states.assign(tp)
	}

	ends, err := b.client.EndOffsets(ctx, tps)
	if err != nil {
		b.log.Warnf(ctx, "end offsets lookup failed group=%s partitions=%v: %v", b.group, tps, err)
	} else {
		for _, tp := range tps {
			end, ok := ends[tp]
			if !ok {
				continue
			}
			b.log.Infof(ctx, "partition assigned group=%s partition=%s last_offset=%d", b.group, tp, end-1)
			if b.onAssigned != nil {
				b.onAssigned(ctx, tp, end-1)
			}
		}
	}

	if !b.seekToBeginning {
		return
	}
	if err := b.client.SeekToBeginning(ctx, tps); err != nil {
		b.log.Errorf(ctx, "seek to beginning failed group=%s partitions=%v: %v", b.group, tps, err)
		return
	}
	metrics.KafkaPartitionRewinds.WithLabelValues(b.group, "beginning").Add(float64(len(tps)))
	b.log.Infof(ctx, "partitions rewound to beginning group=%s partitions=%v", b.group, tps)
}

// partitionsRevoked — сообщаем о потерянных партициях и забываем их состояние.
func (b *assignmentBridge) partitionsRevoked(ctx context.Context, tps []TopicPartition) {
	if len(tps) == 0 {
		return
	}
	tps = sortedPartitions(tps)

	for _, tp := range tps {
		b.states.revoke(tp)
		if b.forget != nil {
			b.forget(tp)
		}
	}
	b.log.Infof(ctx, "partitions revoked group=%s partitions=%v", b.group, tps)
	if b.onRevoked != nil {
		b.onRevoked(ctx, tps)
	}
}

func sortedPartitions(tps []TopicPartition) []TopicPartition {
	out := slices.Clone(tps)
	slices.SortFunc(out, func(a, b TopicPartition) int {
		if a.Topic != b.Topic {
			if a.Topic < b.Topic {
				return -1
			}
			return 1
		}
		return int(a.Partition) - int(b.Partition)
	})
	return out
}
