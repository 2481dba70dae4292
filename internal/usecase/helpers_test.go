package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const (
	org    = "910825526"
	leader = "01017012345"
)

var (
	aggregateID = uuid.MustParse("6f1c3a52-9f0e-4b8e-8d0a-0c9d7f1f2a11")
	createdAt   = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	meta        = domain.EventMetadata{Timestamp: createdAt.Add(time.Minute), Partition: 1, Offset: 42}
)

func header() domain.EventHeader {
	return domain.EventHeader{
		EventID:     uuid.MustParse("0d7e6b8a-4c55-4f0c-9b1e-3f6f0f3e9a01"),
		AggregateID: aggregateID,
		ProducerID:  "fager",
		SourceApp:   "test-app",
		OrgNumber:   org,
	}
}

func notificationCreated() domain.NotificationCreated {
	return domain.NotificationCreated{
		EventHeader: header(),
		Tag:         "tag",
		ExternalID:  "ext-1",
		Recipients: domain.Recipients{
			domain.LeaderRecipient{OrgNumber: org, LeaderID: leader, EmployeeID: "02028012345"},
			domain.AltinnRecipient{OrgNumber: org, ServiceCode: "5216", ServiceEdition: "1"},
		},
		Text:      "text",
		Link:      "https://example.org/1",
		CreatedAt: createdAt,
	}
}

func taskCreated() domain.TaskCreated {
	deadline := createdAt.Add(24 * time.Hour)
	return domain.TaskCreated{
		EventHeader: header(),
		Tag:         "task",
		ExternalID:  "ext-2",
		Recipients:  domain.Recipients{domain.AltinnRecipient{OrgNumber: org, ServiceCode: "5216", ServiceEdition: "1"}},
		Text:        "task",
		Link:        "https://example.org/2",
		CreatedAt:   createdAt,
		Deadline:    &deadline,
	}
}
