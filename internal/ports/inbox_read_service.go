package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/domain"
)

// InboxReadService — чтение входящих.
type InboxReadService interface {
	NotificationsForUser(ctx context.Context, q domain.InboxQuery) ([]domain.Notification, error)
	// OrgNumberForNotification — ("", nil), если уведомления нет.
	OrgNumberForNotification(ctx context.Context, id uuid.UUID) (string, error)
}

// PartitionStatus — снимок состояния партиции консьюмера.
type PartitionStatus struct {
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	State     string `json:"state"`
	Attempts  int64  `json:"attempts"`
	// Committed — оффсет, зафиксированный этим процессом; nil, если коммитов ещё не было.
	Committed *int64 `json:"committed,omitempty"`
}

// ConsumerStatus — снимок назначенных партиций одного консьюмера.
type ConsumerStatus struct {
	Group      string            `json:"group"`
	Topic      string            `json:"topic"`
	Partitions []PartitionStatus `json:"partitions"`
}

// ConsumerStatusProvider — диагностика консьюмеров для HTTP.
type ConsumerStatusProvider interface {
	ConsumerStatuses() []ConsumerStatus
}
