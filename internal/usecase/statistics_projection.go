package usecase

import (
	"context"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// StatisticsProjection — факты для аналитики. Идентификатор пользователя хранится только хэшем.
type StatisticsProjection struct {
	repo ports.StatisticsRepository
}

func NewStatisticsProjection(repo ports.StatisticsRepository) *StatisticsProjection {
	return &StatisticsProjection{repo: repo}
}

func (*StatisticsProjection) Name() string { return "statistics" }

func (p *StatisticsProjection) Apply(ctx context.Context, ev domain.Event, meta domain.EventMetadata) error {
	switch e := ev.(type) {
	case domain.NotificationCreated:
		return p.repo.RecordNotification(ctx, domain.NewNotification(e), e.Recipients)
	case domain.TaskCreated:
		return p.repo.RecordNotification(ctx, domain.NewTask(e), e.Recipients)
	case domain.UserClicked:
		// у клика нет собственного времени: берём время записи
		return p.repo.RecordClick(ctx, e.AggregateID, pseudonym(e.UserID), meta.Timestamp)
	case domain.TaskCompleted:
		return p.repo.MarkCompleted(ctx, e.AggregateID, e.CompletedAt)
	case domain.TaskExpired:
		return p.repo.MarkExpired(ctx, e.AggregateID, e.ExpiredAt)
	case domain.SoftDeleted:
		return p.repo.MarkDeleted(ctx, e.AggregateID, e.DeletedAt, false)
	case domain.HardDeleted:
		return p.repo.MarkDeleted(ctx, e.AggregateID, e.DeletedAt, true)
	case domain.ExternalNotificationSucceeded:
		return p.repo.RecordExternal(ctx, e.NotificationID, e.Channel, true, "", meta.Timestamp)
	case domain.ExternalNotificationFailed:
		return p.repo.RecordExternal(ctx, e.NotificationID, e.Channel, false, e.ErrorCode, meta.Timestamp)
	case domain.CaseCreated:
		return p.repo.RecordCase(ctx, e)
	default:
		return nil
	}
}
