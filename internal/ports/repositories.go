package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/domain"
)

// Все операции записи идемпотентны: повторное применение того же события ничего не меняет.

// InboxRepository — хранилище входящих.
type InboxRepository interface {
	InsertNotification(ctx context.Context, n *domain.Notification, recipients domain.Recipients) error
	MarkClicked(ctx context.Context, notificationID uuid.UUID, userID string) error
	SetState(ctx context.Context, notificationID uuid.UUID, state domain.TaskState) error
	Delete(ctx context.Context, notificationID uuid.UUID) error

	ListForUser(ctx context.Context, q domain.InboxQuery) ([]domain.Notification, error)
	// OrgNumberFor — ("", false, nil), если уведомления нет.
	OrgNumberFor(ctx context.Context, notificationID uuid.UUID) (string, bool, error)
}

// StatisticsRepository — факты для аналитики.
type StatisticsRepository interface {
	RecordNotification(ctx context.Context, n *domain.Notification, recipients domain.Recipients) error
	RecordClick(ctx context.Context, notificationID uuid.UUID, userHash string, at time.Time) error
	MarkCompleted(ctx context.Context, notificationID uuid.UUID, at time.Time) error
	MarkExpired(ctx context.Context, notificationID uuid.UUID, at time.Time) error
	MarkDeleted(ctx context.Context, notificationID uuid.UUID, at time.Time, hard bool) error
	// RecordExternal — errorCode пустой для успешной доставки.
	RecordExternal(ctx context.Context, notificationID uuid.UUID, channel string, ok bool, errorCode string, at time.Time) error
	RecordCase(ctx context.Context, c domain.CaseCreated) error

	NotificationStats(ctx context.Context) ([]domain.NotificationStat, error)
	CompletedAgeStats(ctx context.Context) ([]domain.CompletedAgeStat, error)
	ExternalStats(ctx context.Context) ([]domain.ExternalStat, error)
	CaseStats(ctx context.Context) ([]domain.CaseStat, error)
}

// ExportRecipient — получатель без персональных данных.
type ExportRecipient struct {
	Kind      string
	OrgNumber string
	Hash      string
}

// ExportRepository — данные для выгрузки (аудит событий и сводка по уведомлениям).
type ExportRepository interface {
	SaveAggregateEvent(ctx context.Context, ev domain.Event, payload []byte, meta domain.EventMetadata) error
	SaveNotification(ctx context.Context, n *domain.Notification, recipients []ExportRecipient) error
	SaveCase(ctx context.Context, caseID uuid.UUID, producerID, tag, title string, createdAt time.Time) error
	UpdateCaseStatus(ctx context.Context, caseID uuid.UUID, status string, at time.Time) error
}
