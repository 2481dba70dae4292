package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEvent — в конверте неизвестный или пустой "@type".
var ErrUnknownEvent = errors.New("unknown event type")

// EncodeEvent — JSON-конверт: поля события плюс "@type".
func EncodeEvent(ev Event) ([]byte, error) {
	if ev == nil {
		return nil, errors.New("encode event: nil event")
	}
	return withType(string(ev.Type()), ev)
}

// DecodeEvent — разбор конверта в конкретный тип события (значение, не указатель).
func DecodeEvent(raw []byte) (Event, error) {
	var probe struct {
		Type EventType `json:"@type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	switch probe.Type {
	case TypeNotificationCreated:
		return decodeAs[NotificationCreated](raw)
	case TypeTaskCreated:
		return decodeAs[TaskCreated](raw)
	case TypeTaskCompleted:
		return decodeAs[TaskCompleted](raw)
	case TypeTaskExpired:
		return decodeAs[TaskExpired](raw)
	case TypeUserClicked:
		return decodeAs[UserClicked](raw)
	case TypeSoftDeleted:
		return decodeAs[SoftDeleted](raw)
	case TypeHardDeleted:
		return decodeAs[HardDeleted](raw)
	case TypeExternalNotificationSucceeded:
		return decodeAs[ExternalNotificationSucceeded](raw)
	case TypeExternalNotificationFailed:
		return decodeAs[ExternalNotificationFailed](raw)
	case TypeCaseCreated:
		return decodeAs[CaseCreated](raw)
	case TypeCaseStatusChanged:
		return decodeAs[CaseStatusChanged](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, probe.Type)
	}
}

func decodeAs[T Event](raw []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ev.Type(), err)
	}
	return ev, nil
}

// withType — сериализует v и добавляет "@type" первым полем объекта.
func withType(typ string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("%s: not a JSON object", typ)
	}
	tag, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.Grow(len(body) + len(tag) + 10)
	b.WriteString(`{"@type":`)
	b.Write(tag)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 0 && rest[0] != '}' {
		b.WriteByte(',')
	}
	b.Write(body[1:])
	return b.Bytes(), nil
}
