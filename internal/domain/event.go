package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType — дискриминатор события в конверте ("@type").
type EventType string

const (
	TypeNotificationCreated           EventType = "NotificationCreated"
	TypeTaskCreated                   EventType = "TaskCreated"
	TypeTaskCompleted                 EventType = "TaskCompleted"
	TypeTaskExpired                   EventType = "TaskExpired"
	TypeUserClicked                   EventType = "UserClicked"
	TypeSoftDeleted                   EventType = "SoftDeleted"
	TypeHardDeleted                   EventType = "HardDeleted"
	TypeExternalNotificationSucceeded EventType = "ExternalNotificationSucceeded"
	TypeExternalNotificationFailed    EventType = "ExternalNotificationFailed"
	TypeCaseCreated                   EventType = "CaseCreated"
	TypeCaseStatusChanged             EventType = "CaseStatusChanged"
)

// EventHeader — общие поля всех событий.
type EventHeader struct {
	EventID     uuid.UUID `json:"eventId"`
	AggregateID uuid.UUID `json:"aggregateId"` // id уведомления, задачи или дела
	ProducerID  string    `json:"producerId"`
	SourceApp   string    `json:"sourceApp"`
	OrgNumber   string    `json:"orgNumber"` // организация-получатель
}

func (h EventHeader) Common() EventHeader { return h }

// Event — событие лога. Набор реализаций закрыт: только типы этого пакета.
type Event interface {
	Type() EventType
	Common() EventHeader
	sealed()
}

// EventMetadata — координаты записи, из которой прочитано событие.
type EventMetadata struct {
	Timestamp time.Time
	Partition int32
	Offset    int64
}

// NotificationCreated — создано информационное уведомление.
type NotificationCreated struct {
	EventHeader
	Tag        string     `json:"tag"`
	ExternalID string     `json:"externalId"`
	Recipients Recipients `json:"recipients"`
	Text       string     `json:"text"`
	Link       string     `json:"link"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TaskCreated — создана задача, которую получатель должен выполнить.
type TaskCreated struct {
	EventHeader
	Tag        string     `json:"tag"`
	ExternalID string     `json:"externalId"`
	Recipients Recipients `json:"recipients"`
	Text       string     `json:"text"`
	Link       string     `json:"link"`
	CreatedAt  time.Time  `json:"createdAt"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

type TaskCompleted struct {
	EventHeader
	CompletedAt time.Time `json:"completedAt"`
}

type TaskExpired struct {
	EventHeader
	Deadline  time.Time `json:"deadline"`
	ExpiredAt time.Time `json:"expiredAt"`
}

// UserClicked — пользователь открыл уведомление.
type UserClicked struct {
	EventHeader
	UserID string `json:"userId"`
}

type SoftDeleted struct {
	EventHeader
	DeletedAt time.Time `json:"deletedAt"`
}

type HardDeleted struct {
	EventHeader
	DeletedAt time.Time `json:"deletedAt"`
}

// ExternalNotificationSucceeded — внешнее оповещение (sms/e-mail) доставлено.
type ExternalNotificationSucceeded struct {
	EventHeader
	NotificationID uuid.UUID `json:"notificationId"`
	Channel        string    `json:"channel"`
}

type ExternalNotificationFailed struct {
	EventHeader
	NotificationID uuid.UUID `json:"notificationId"`
	Channel        string    `json:"channel"`
	ErrorCode      string    `json:"errorCode"`
	Message        string    `json:"message"`
}

// CaseCreated — создано дело, к которому привязываются уведомления.
type CaseCreated struct {
	EventHeader
	Tag        string     `json:"tag"`
	ExternalID string     `json:"externalId"`
	Title      string     `json:"title"`
	Link       string     `json:"link"`
	Recipients Recipients `json:"recipients"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CaseStatusChanged struct {
	EventHeader
	Status    string    `json:"status"`
	Comment   string    `json:"comment,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

func (NotificationCreated) Type() EventType { return TypeNotificationCreated }
func (TaskCreated) Type() EventType { return TypeTaskCreated }
func (TaskCompleted) Type() EventType { return TypeTaskCompleted }
func (TaskExpired) Type() EventType { return TypeTaskExpired }
func (UserClicked) Type() EventType { return TypeUserClicked }
func (SoftDeleted) Type() EventType { return TypeSoftDeleted }
func (HardDeleted) Type() EventType { return TypeHardDeleted }
func (ExternalNotificationSucceeded) Type() EventType { return TypeExternalNotificationSucceeded }
func (ExternalNotificationFailed) Type() EventType { return TypeExternalNotificationFailed }
func (CaseCreated) Type() EventType { return TypeCaseCreated }
func (CaseStatusChanged) Type() EventType { return TypeCaseStatusChanged }

func (NotificationCreated) sealed() {}
func (TaskCreated) sealed() {}
func (TaskCompleted) sealed() {}
func (TaskExpired) sealed() {}
func (UserClicked) sealed() {}
func (SoftDeleted) sealed() {}
func (HardDeleted) sealed() {}
func (ExternalNotificationSucceeded) sealed() {}
func (ExternalNotificationFailed) sealed() {}
func (CaseCreated) sealed() {}
func (CaseStatusChanged) sealed() {}

// Summary — короткое описание события для логов (без персональных данных).
func Summary(ev Event) string {
	if ev == nil {
		return "Tombstone"
	}
	h := ev.Common()
	return "type=" + string(ev.Type()) +
		" event_id=" + h.EventID.String() +
		" aggregate_id=" + h.AggregateID.String() +
		" producer=" + h.ProducerID +
		" source_app=" + h.SourceApp
}
