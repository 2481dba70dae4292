//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/domain"
)

const (
	TestOrg      = "910825526"
	TestLeader   = "01017012345"
	TestEmployee = "02028012345"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

func header(aggregateID uuid.UUID) domain.EventHeader {
	return domain.EventHeader{
		EventID:     uuid.New(),
		AggregateID: aggregateID,
		ProducerID:  "fager",
		SourceApp:   "itest",
		OrgNumber:   TestOrg,
	}
}

// MakeNotification — валидное уведомление для руководителя TestLeader.
func MakeNotification(opts ...func(*domain.NotificationCreated)) domain.NotificationCreated {
	ev := domain.NotificationCreated{
		EventHeader: header(uuid.New()),
		Tag:         "tag-" + UniqSuffix(),
		ExternalID:  "ext-" + UniqSuffix(),
		Recipients: domain.Recipients{
			domain.LeaderRecipient{OrgNumber: TestOrg, LeaderID: TestLeader, EmployeeID: TestEmployee},
		},
		Text:      "Ny melding",
		Link:      "https://example.org/" + UniqSuffix(),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, fn := range opts {
		fn(&ev)
	}
	return ev
}

// MakeTask — валидная задача для сервиса Altinn 5216:1 организации TestOrg.
func MakeTask(opts ...func(*domain.TaskCreated)) domain.TaskCreated {
	deadline := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Millisecond)
	ev := domain.TaskCreated{
		EventHeader: header(uuid.New()),
		Tag:         "task-" + UniqSuffix(),
		ExternalID:  "ext-" + UniqSuffix(),
		Recipients: domain.Recipients{
			domain.AltinnRecipient{OrgNumber: TestOrg, ServiceCode: "5216", ServiceEdition: "1"},
		},
		Text:      "Fyll ut skjema",
		Link:      "https://example.org/" + UniqSuffix(),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Deadline:  &deadline,
	}
	for _, fn := range opts {
		fn(&ev)
	}
	return ev
}

// Clicked — клик руководителя по агрегату.
func Clicked(aggregateID uuid.UUID, userID string) domain.UserClicked {
	return domain.UserClicked{EventHeader: header(aggregateID), UserID: userID}
}

func Completed(aggregateID uuid.UUID) domain.TaskCompleted {
	return domain.TaskCompleted{EventHeader: header(aggregateID), CompletedAt: time.Now().UTC()}
}

func HardDeleted(aggregateID uuid.UUID) domain.HardDeleted {
	return domain.HardDeleted{EventHeader: header(aggregateID), DeletedAt: time.Now().UTC()}
}

// WithCreatedAt — переопределить время создания уведомления.
func WithCreatedAt(at time.Time) func(*domain.NotificationCreated) {
	return func(ev *domain.NotificationCreated) { ev.CreatedAt = at }
}

// MakeCase — дело для сервиса Altinn 5216:1 организации TestOrg.
func MakeCase(opts ...func(*domain.CaseCreated)) domain.CaseCreated {
	ev := domain.CaseCreated{
		EventHeader: header(uuid.New()),
		Tag:         "case-" + UniqSuffix(),
		ExternalID:  "ext-" + UniqSuffix(),
		Title:       "Søknad",
		Link:        "https://example.org/" + UniqSuffix(),
		Recipients: domain.Recipients{
			domain.AltinnRecipient{OrgNumber: TestOrg, ServiceCode: "5216", ServiceEdition: "1"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, fn := range opts {
		fn(&ev)
	}
	return ev
}
