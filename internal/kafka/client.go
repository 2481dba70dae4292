package kafka

import (
	"context"
	"errors"
)

var (
	// ErrPollFailed — транспортная/протокольная ошибка при чтении лога. Фатальна для цикла.
	ErrPollFailed = errors.New("kafka: poll failed")
	// ErrCommitFailed — не удалось зафиксировать оффсет. Обрабатывается как ErrPollFailed.
	ErrCommitFailed = errors.New("kafka: commit failed")
	// ErrClosed — клиент закрыт.
	ErrClosed = errors.New("kafka: client closed")
)

// logClient — минимальный контракт над клиентом лога,
// чтобы движок можно было гонять на фейке и моках в тестах.
// Все методы, меняющие состояние выборки (Poll, Seek, Pause, Resume, Commit),
// вызываются только из горутины цикла.
type logClient interface {
	// Poll — ограниченное по времени ожидание очередной пачки записей.
	Poll(ctx context.Context) ([]PartitionBatch, error)
	// Commit — синхронная фиксация следующего к чтению оффсета партиции.
	Commit(ctx context.Context, tp TopicPartition, offset int64) error
	// Seek — следующая выборка партиции начнётся с offset.
	Seek(tp TopicPartition, offset int64)
	Pause(tps ...TopicPartition)
	Resume(tps ...TopicPartition)
	// Assignment — партиции, которыми клиент владеет сейчас.
	Assignment() []TopicPartition
	// Position — следующий оффсет к выборке, если он известен.
	Position(tp TopicPartition) (int64, bool)
	// BeginningOffsets — самые ранние доступные оффсеты партиций.
	BeginningOffsets(ctx context.Context, tps []TopicPartition) (map[TopicPartition]int64, error)
	// EndOffsets — оффсеты, следующие за последней записью партиций.
	EndOffsets(ctx context.Context, tps []TopicPartition) (map[TopicPartition]int64, error)
	// SeekToBeginning — перемотка партиций к самому раннему оффсету.
	SeekToBeginning(ctx context.Context, tps []TopicPartition) error
	// AllowRebalance — разрешает отложенную ребалансировку между тиками.
	AllowRebalance()
	Close() error
}

// rebalanceListener — получатель уведомлений о смене владения партициями.
type rebalanceListener interface {
	partitionsAssigned(ctx context.Context, tps []TopicPartition)
	partitionsRevoked(ctx context.Context, tps []TopicPartition)
}
