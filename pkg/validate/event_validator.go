package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// Проверка, что EventValidator удовлетворяет интерфейсу EventValidator.
var _ ports.EventValidator = (*EventValidator)(nil)

// ErrInvalidEvent — базовая (sentinel error) ошибка валидации.
var ErrInvalidEvent = errors.New("event validation failed")

var (
	reOrgNumber = regexp.MustCompile(`^\d{9}$`)
	rePersonID  = regexp.MustCompile(`^\d{11}$`)
)

// Каналы внешних оповещений.
var externalChannels = map[string]struct{}{"sms": {}, "email": {}}

// maxTextLen — предел длины текста уведомления.
const maxTextLen = 300

// EventValidator — структура для валидации событий лога.
type EventValidator struct{}

// NewEventValidator — конструктор EventValidator.
// Возвращает ErrInvalidEvent (с обёрнутой причиной) при любой проблеме.
func NewEventValidator() *EventValidator { return &EventValidator{} }

// Validate — проверяет заголовок и поля конкретного типа события.
func (v *EventValidator) Validate(_ context.Context, ev domain.Event) error {
	if ev == nil {
		return fmt.Errorf("%w: событие не может быть nil", ErrInvalidEvent)
	}
	if err := v.validateHeader(ev.Common()); err != nil {
		return err
	}

	switch e := ev.(type) {
	case domain.NotificationCreated:
		if err := v.validateRecipients(e.Recipients); err != nil {
			return err
		}
		if err := v.validateContent(e.Tag, e.Text, e.Link); err != nil {
			return err
		}
		return requireTime("createdAt", e.CreatedAt.IsZero())
	case domain.TaskCreated:
		if err := v.validateRecipients(e.Recipients); err != nil {
			return err
		}
		if err := v.validateContent(e.Tag, e.Text, e.Link); err != nil {
			return err
		}
		if err := requireTime("createdAt", e.CreatedAt.IsZero()); err != nil {
			return err
		}
		if e.Deadline != nil && e.Deadline.Before(e.CreatedAt) {
			return fmt.Errorf("%w: deadline раньше createdAt", ErrInvalidEvent)
		}
		return nil
	case domain.TaskCompleted:
		return requireTime("completedAt", e.CompletedAt.IsZero())
	case domain.TaskExpired:
		return requireTime("expiredAt", e.ExpiredAt.IsZero())
	case domain.UserClicked:
		if !rePersonID.MatchString(e.UserID) {
			return fmt.Errorf("%w: userId должен состоять из 11 цифр", ErrInvalidEvent)
		}
		return nil
	case domain.SoftDeleted:
		return requireTime("deletedAt", e.DeletedAt.IsZero())
	case domain.HardDeleted:
		return requireTime("deletedAt", e.DeletedAt.IsZero())
	case domain.ExternalNotificationSucceeded:
		return v.validateExternal(e.NotificationID, e.Channel)
	case domain.ExternalNotificationFailed:
		return v.validateExternal(e.NotificationID, e.Channel)
	case domain.CaseCreated:
		if err := v.validateRecipients(e.Recipients); err != nil {
			return err
		}
		if e.Title == "" {
			return fmt.Errorf("%w: title обязателен", ErrInvalidEvent)
		}
		if err := validateLink(e.Link); err != nil {
			return err
		}
		return requireTime("createdAt", e.CreatedAt.IsZero())
	case domain.CaseStatusChanged:
		if e.Status == "" {
			return fmt.Errorf("%w: status обязателен", ErrInvalidEvent)
		}
		return requireTime("changedAt", e.ChangedAt.IsZero())
	default:
		return fmt.Errorf("%w: неизвестный тип события %T", ErrInvalidEvent, ev)
	}
}

// validateHeader — общие поля всех событий.
func (v *EventValidator) validateHeader(h domain.EventHeader) error {
	if h.EventID == uuid.Nil {
		return fmt.Errorf("%w: eventId обязателен", ErrInvalidEvent)
	}
	if h.AggregateID == uuid.Nil {
		return fmt.Errorf("%w: aggregateId обязателен", ErrInvalidEvent)
	}
	if h.ProducerID == "" {
		return fmt.Errorf("%w: producerId обязателен", ErrInvalidEvent)
	}
	if !reOrgNumber.MatchString(h.OrgNumber) {
		return fmt.Errorf("%w: orgNumber должен состоять из 9 цифр", ErrInvalidEvent)
	}
	return nil
}

// Валидация получателей
func (v *EventValidator) validateRecipients(rs domain.Recipients) error {
	if len(rs) == 0 {
		return fmt.Errorf("%w: recipients не должен быть пустым", ErrInvalidEvent)
	}

	for i, r := range rs {
		if !reOrgNumber.MatchString(r.Org()) {
			return fmt.Errorf("%w: recipients[%d].orgNumber должен состоять из 9 цифр", ErrInvalidEvent, i)
		}
		switch rr := r.(type) {
		case domain.AltinnRecipient:
			if rr.ServiceCode == "" || rr.ServiceEdition == "" {
				return fmt.Errorf("%w: recipients[%d] требует serviceCode и serviceEdition", ErrInvalidEvent, i)
			}
		case domain.LeaderRecipient:
			if !rePersonID.MatchString(rr.LeaderID) || !rePersonID.MatchString(rr.EmployeeID) {
				return fmt.Errorf("%w: recipients[%d] leaderId и employeeId должны состоять из 11 цифр", ErrInvalidEvent, i)
			}
		}
	}
	return nil
}

// Валидация содержимого уведомления
func (v *EventValidator) validateContent(tag, text, link string) error {
	if tag == "" {
		return fmt.Errorf("%w: tag обязателен", ErrInvalidEvent)
	}
	if text == "" {
		return fmt.Errorf("%w: text обязателен", ErrInvalidEvent)
	}
	if len([]rune(text)) > maxTextLen {
		return fmt.Errorf("%w: text длиннее %d символов", ErrInvalidEvent, maxTextLen)
	}
	return validateLink(link)
}

// Валидация внешнего оповещения
func (v *EventValidator) validateExternal(id uuid.UUID, channel string) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: notificationId обязателен", ErrInvalidEvent)
	}
	if _, ok := externalChannels[channel]; !ok {
		return fmt.Errorf("%w: channel должен быть sms или email", ErrInvalidEvent)
	}
	return nil
}

func validateLink(link string) error {
	if link == "" {
		return fmt.Errorf("%w: link обязателен", ErrInvalidEvent)
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: link некорректен", ErrInvalidEvent)
	}
	return nil
}

func requireTime(field string, zero bool) error {
	if zero {
		return fmt.Errorf("%w: %s обязателен", ErrInvalidEvent, field)
	}
	return nil
}
