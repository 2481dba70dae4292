package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/internal/ports/mocks"
	"github.com/Gunvolt24/notifier/internal/usecase"
)

func TestExportProjection_Notification_AuditAndHashedRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExportRepository(ctrl)

	ev := notificationCreated()
	gomock.InOrder(
		repo.EXPECT().SaveAggregateEvent(gomock.Any(), ev, gomock.Any(), meta).
			DoAndReturn(func(_ context.Context, _ domain.Event, payload []byte, _ domain.EventMetadata) error {
				var probe map[string]any
				if err := json.Unmarshal(payload, &probe); err != nil || probe["@type"] != "NotificationCreated" {
					t.Fatalf("payload must be the event envelope, got %s", payload)
				}
				return nil
			}),
		repo.EXPECT().SaveNotification(gomock.Any(), domain.NewNotification(ev), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *domain.Notification, rs []ports.ExportRecipient) error {
				if len(rs) != 2 {
					t.Fatalf("recipients=%d, want 2", len(rs))
				}
				if rs[0].Kind != domain.RecipientLeader || rs[1].Kind != domain.RecipientAltinn {
					t.Fatalf("unexpected kinds %+v", rs)
				}
				for _, r := range rs {
					if r.OrgNumber != org || len(r.Hash) != 64 {
						t.Fatalf("unexpected recipient %+v", r)
					}
				}
				if rs[0].Hash == rs[1].Hash {
					t.Fatalf("different recipients must have different hashes")
				}
				return nil
			}),
	)

	if err := usecase.NewExportProjection(repo).Apply(context.Background(), ev, meta); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestExportProjection_Cases(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExportRepository(ctrl)
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().SaveAggregateEvent(gomock.Any(), gomock.Any(), gomock.Any(), meta).Return(nil).Times(3)
	repo.EXPECT().SaveCase(gomock.Any(), aggregateID, "fager", "sak", "Søknad", now).Return(nil)
	repo.EXPECT().UpdateCaseStatus(gomock.Any(), aggregateID, "MOTTATT", now).Return(nil)

	p := usecase.NewExportProjection(repo)
	events := []domain.Event{
		domain.CaseCreated{EventHeader: header(), Tag: "sak", Title: "Søknad", CreatedAt: now},
		domain.CaseStatusChanged{EventHeader: header(), Status: "MOTTATT", ChangedAt: now},
		// только аудит
		domain.UserClicked{EventHeader: header(), UserID: leader},
	}
	for _, ev := range events {
		if err := p.Apply(context.Background(), ev, meta); err != nil {
			t.Fatalf("%s: %v", ev.Type(), err)
		}
	}
}

func TestExportProjection_AuditError_StopsApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExportRepository(ctrl)

	db := errors.New("db down")
	repo.EXPECT().SaveAggregateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(db)

	err := usecase.NewExportProjection(repo).Apply(context.Background(), notificationCreated(), meta)
	if !errors.Is(err, db) {
		t.Fatalf("want db error, got %v", err)
	}
}
