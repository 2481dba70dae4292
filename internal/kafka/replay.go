package kafka

import (
	"context"
	"time"

	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/pkg/metrics"
)

// replayDriver — плановая перемотка здоровых партиций назад,
// чтобы переприменить недавнее окно событий к идемпотентным проекциям.
type replayDriver struct {
	client   logClient
	group    string
	schedule LeapSchedule
	enabled  bool
	log      ports.Logger
	// rewound — вызывается перед перемоткой с позицией, с которой уходим назад.
	rewound func(tp TopicPartition, from int64)
	// lastMinute — минута последней перемотки; внутри одной минуты перематываем один раз.
	lastMinute time.Time
}

// replayWhenLeap — вызывается в начале каждого тика из горутины цикла.
// Каждая назначенная партиция перематывается не более одного раза и не ниже самого раннего оффсета.
func (r *replayDriver) replayWhenLeap(ctx context.Context, now time.Time) {
	if !r.enabled {
		return
	}

	kind, leap := r.schedule.Decide(now)
	if kind == LeapNone || leap <= 0 {
		return
	}

	minute := now.Truncate(time.Minute)
	if minute.Equal(r.lastMinute) {
		return
	}

	tps := r.client.Assignment()
	if len(tps) == 0 {
		return
	}

	earliest, err := r.client.BeginningOffsets(ctx, tps)
	if err != nil {
		r.log.Warnf(ctx, "replay skipped group=%s kind=%s: beginning offsets: %v", r.group, kind, err)
		return
	}
	r.lastMinute = minute

	for _, tp := range sortedPartitions(tps) {
		pos, ok := r.client.Position(tp)
		if !ok {
			continue
		}
		target := max(pos-leap, earliest[tp])
		if target >= pos {
			continue
		}
		if r.rewound != nil {
			r.rewound(tp, pos)
		}
		r.client.Seek(tp, target)
		metrics.KafkaPartitionRewinds.WithLabelValues(r.group, kind.String()).Inc()
		r.log.Infof(ctx, "partition rewound group=%s partition=%s kind=%s from=%d to=%d", r.group, tp, kind, pos, target)
	}
}
