package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// Проверка, что InboxService удовлетворяет интерфейсу InboxReadService.
var _ ports.InboxReadService = (*InboxService)(nil)

// InboxService — чтение входящих (без знаний о транспорте).
type InboxService struct {
	repo  ports.InboxRepository
	cache ports.OrgCache
	log   ports.Logger
}

// NewInboxService — DI-конструктор.
func NewInboxService(repo ports.InboxRepository, cache ports.OrgCache, log ports.Logger) *InboxService {
	return &InboxService{repo: repo, cache: cache, log: log}
}

// NotificationsForUser — проксирование в репозиторий (лимит уже ограничен на верхнем уровне).
func (s *InboxService) NotificationsForUser(ctx context.Context, q domain.InboxQuery) ([]domain.Notification, error) {
	start := time.Now()
	list, err := s.repo.ListForUser(ctx, q)
	if err != nil {
		s.log.Errorf(ctx, "repo.ListForUser failed access=%d err=%v", len(q.Access), err)
		return nil, err
	}
	s.log.Infof(ctx, "inbox read count=%d access=%d took=%s", len(list), len(q.Access), time.Since(start))
	return list, nil
}

// OrgNumberForNotification — сначала кэш, при промахе БД с записью в кэш.
// Возвращает ("", nil), если уведомления нет.
func (s *InboxService) OrgNumberForNotification(ctx context.Context, id uuid.UUID) (string, error) {
	if org, found := s.cache.Get(ctx, id); found {
		s.log.Debugf(ctx, "cache hit notification_id=%s", id)
		return org, nil
	}
	s.log.Debugf(ctx, "cache miss notification_id=%s", id)

	org, found, err := s.repo.OrgNumberFor(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.OrgNumberFor failed notification_id=%s err=%v", id, err)
		return "", err
	}
	if !found {
		return "", nil
	}

	if setErr := s.cache.Set(ctx, id, org); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed notification_id=%s err=%v", id, setErr)
	}
	return org, nil
}
