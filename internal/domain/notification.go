package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind — вид записи во входящих.
type NotificationKind string

const (
	KindNotification NotificationKind = "notification"
	KindTask         NotificationKind = "task"
)

// TaskState — состояние задачи; у информационных уведомлений всегда NEW.
type TaskState string

const (
	StateNew       TaskState = "NEW"
	StateCompleted TaskState = "COMPLETED"
	StateExpired   TaskState = "EXPIRED"
)

// InboxLimit — сколько записей максимум отдаёт чтение входящих.
const InboxLimit = 200

// Notification — запись во входящих пользователя.
type Notification struct {
	ID         uuid.UUID        `json:"id"`
	Kind       NotificationKind `json:"kind"`
	ProducerID string           `json:"producerId"`
	Tag        string           `json:"tag"`
	ExternalID string           `json:"externalId"`
	OrgNumber  string           `json:"orgNumber"`
	Text       string           `json:"text"`
	Link       string           `json:"link"`
	State      TaskState        `json:"state"`
	CreatedAt  time.Time        `json:"createdAt"`
	Deadline   *time.Time       `json:"deadline,omitempty"`
	Clicked    bool             `json:"clicked"`
}

// AltinnAccess — доступ пользователя к сервису организации.
type AltinnAccess struct {
	OrgNumber      string
	ServiceCode    string
	ServiceEdition string
}

// InboxQuery — чей входящий ящик читаем.
type InboxQuery struct {
	UserID string         // идентификатор пользователя (руководитель или клик)
	Access []AltinnAccess // доступы пользователя
	Limit  int
	Offset int
}

// StatDimensions — разрез статистики уведомлений.
type StatDimensions struct {
	ProducerID    string
	Tag           string
	RecipientKind string
	Kind          NotificationKind
}

// NotificationStat — счётчики уведомлений одного разреза.
type NotificationStat struct {
	StatDimensions
	Total       int64
	Clicked     int64 // уведомлений, открытых хотя бы одним пользователем
	Clicks      int64 // пар уведомление/пользователь
	Expired     int64 // задач с истёкшим сроком, которые так и не выполнены
	UniqueTexts int64
}

// CompletedAgeStat — выполненные задачи по корзинам возраста (от создания до выполнения):
// 0-1H, 1H-1D, 1D-3D, 3D-1W, 1W-2W, 2W-4W, 4W-infinity.
type CompletedAgeStat struct {
	StatDimensions
	Clicked bool
	Bucket  string
	Count   int64
}

// ExternalStat — исходы внешних оповещений.
type ExternalStat struct {
	ProducerID string
	Tag        string
	Channel    string
	Status     string // succeeded | failed
	ErrorCode  string
	Count      int64
}

// CaseStat — число дел в разрезе.
type CaseStat struct {
	ProducerID    string
	Tag           string
	RecipientKind string
	Count         int64
}

// NewNotification — запись во входящих для информационного уведомления.
func NewNotification(ev NotificationCreated) *Notification {
	return &Notification{
		ID:         ev.AggregateID,
		Kind:       KindNotification,
		ProducerID: ev.ProducerID,
		Tag:        ev.Tag,
		ExternalID: ev.ExternalID,
		OrgNumber:  ev.OrgNumber,
		Text:       ev.Text,
		Link:       ev.Link,
		State:      StateNew,
		CreatedAt:  ev.CreatedAt,
	}
}

// NewTask — запись во входящих для задачи; начальное состояние NEW.
func NewTask(ev TaskCreated) *Notification {
	return &Notification{
		ID:         ev.AggregateID,
		Kind:       KindTask,
		ProducerID: ev.ProducerID,
		Tag:        ev.Tag,
		ExternalID: ev.ExternalID,
		OrgNumber:  ev.OrgNumber,
		Text:       ev.Text,
		Link:       ev.Link,
		State:      StateNew,
		CreatedAt:  ev.CreatedAt,
		Deadline:   ev.Deadline,
	}
}
