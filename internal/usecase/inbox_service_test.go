package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports/mocks"
	"github.com/Gunvolt24/notifier/internal/usecase"
)

func TestOrgNumber_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInboxRepository(ctrl)
	cache := mocks.NewMockOrgCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), aggregateID).Return(org, true)

	got, err := usecase.NewInboxService(repo, cache, noopLogger{}).OrgNumberForNotification(context.Background(), aggregateID)
	if err != nil || got != org {
		t.Fatalf("expected hit, got err=%v org=%q", err, got)
	}
}

func TestOrgNumber_CacheMiss_FetchAndCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInboxRepository(ctrl)
	cache := mocks.NewMockOrgCache(ctrl)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), aggregateID).Return("", false),
		repo.EXPECT().OrgNumberFor(gomock.Any(), aggregateID).Return(org, true, nil),
		cache.EXPECT().Set(gomock.Any(), aggregateID, org).Return(nil),
	)

	got, err := usecase.NewInboxService(repo, cache, noopLogger{}).OrgNumberForNotification(context.Background(), aggregateID)
	if err != nil || got != org {
		t.Fatalf("expected miss+fetch, got err=%v org=%q", err, got)
	}
}

func TestOrgNumber_NotFound_NotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInboxRepository(ctrl)
	cache := mocks.NewMockOrgCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), aggregateID).Return("", false)
	repo.EXPECT().OrgNumberFor(gomock.Any(), aggregateID).Return("", false, nil)

	got, err := usecase.NewInboxService(repo, cache, noopLogger{}).OrgNumberForNotification(context.Background(), aggregateID)
	if err != nil || got != "" {
		t.Fatalf("expected empty result, got err=%v org=%q", err, got)
	}
}

func TestOrgNumber_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInboxRepository(ctrl)
	cache := mocks.NewMockOrgCache(ctrl)

	db := errors.New("db down")
	cache.EXPECT().Get(gomock.Any(), aggregateID).Return("", false)
	repo.EXPECT().OrgNumberFor(gomock.Any(), aggregateID).Return("", false, db)

	if _, err := usecase.NewInboxService(repo, cache, noopLogger{}).OrgNumberForNotification(context.Background(), aggregateID); !errors.Is(err, db) {
		t.Fatalf("want db error, got %v", err)
	}
}

func TestNotificationsForUser_Proxies(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInboxRepository(ctrl)
	cache := mocks.NewMockOrgCache(ctrl)

	q := domain.InboxQuery{UserID: leader, Limit: 10}
	want := []domain.Notification{{ID: aggregateID, OrgNumber: org}}
	repo.EXPECT().ListForUser(gomock.Any(), q).Return(want, nil)

	got, err := usecase.NewInboxService(repo, cache, noopLogger{}).NotificationsForUser(context.Background(), q)
	if err != nil || len(got) != 1 || got[0].ID != aggregateID {
		t.Fatalf("unexpected result err=%v list=%+v", err, got)
	}
}
