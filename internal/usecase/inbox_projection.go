package usecase

import (
	"context"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// InboxProjection — входящие пользователей: уведомления, получатели, клики, состояние задач.
type InboxProjection struct {
	repo  ports.InboxRepository
	cache ports.OrgCache
	log   ports.Logger
}

func NewInboxProjection(repo ports.InboxRepository, cache ports.OrgCache, log ports.Logger) *InboxProjection {
	return &InboxProjection{repo: repo, cache: cache, log: log}
}

func (*InboxProjection) Name() string { return "inbox" }

func (p *InboxProjection) Apply(ctx context.Context, ev domain.Event, _ domain.EventMetadata) error {
	switch e := ev.(type) {
	case domain.NotificationCreated:
		return p.insert(ctx, domain.NewNotification(e), e.Recipients)
	case domain.TaskCreated:
		return p.insert(ctx, domain.NewTask(e), e.Recipients)
	case domain.TaskCompleted:
		return p.repo.SetState(ctx, e.AggregateID, domain.StateCompleted)
	case domain.TaskExpired:
		return p.repo.SetState(ctx, e.AggregateID, domain.StateExpired)
	case domain.UserClicked:
		return p.repo.MarkClicked(ctx, e.AggregateID, e.UserID)
	case domain.SoftDeleted:
		return p.delete(ctx, e.Common())
	case domain.HardDeleted:
		return p.delete(ctx, e.Common())
	default:
		// внешние оповещения и дела во входящих не отображаются
		return nil
	}
}

func (p *InboxProjection) insert(ctx context.Context, n *domain.Notification, recipients domain.Recipients) error {
	if err := p.repo.InsertNotification(ctx, n, recipients); err != nil {
		return err
	}
	if err := p.cache.Set(ctx, n.ID, n.OrgNumber); err != nil {
		p.log.Warnf(ctx, "cache.Set failed notification_id=%s err=%v", n.ID, err)
	}
	return nil
}

func (p *InboxProjection) delete(ctx context.Context, h domain.EventHeader) error {
	if err := p.repo.Delete(ctx, h.AggregateID); err != nil {
		return err
	}
	p.cache.Delete(ctx, h.AggregateID)
	return nil
}
