// Пакет ctxmeta — нейтральный слой для работы с метаданными запроса,
// которые прокидываются через context.Context: request_id, trace/span активного спана
// и координаты обрабатываемой записи лога.
// Идея: HTTP-слой и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемые типы — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// RecordCoords — координаты записи лога, которая сейчас обрабатывается.
type RecordCoords struct {
	Topic     string
	Partition int32
	Offset    int64
}

const keyRecord ctxKey = "kafka_record"

// WithRecord кладёт координаты записи в контекст (для логов обработчика).
func WithRecord(ctx context.Context, topic string, partition int32, offset int64) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, keyRecord, RecordCoords{Topic: topic, Partition: partition, Offset: offset})
}

// RecordFromContext достаёт координаты записи из контекста.
func RecordFromContext(ctx context.Context) (RecordCoords, bool) {
	if ctx == nil {
		return RecordCoords{}, false
	}
	rc, ok := ctx.Value(keyRecord).(RecordCoords)
	return rc, ok
}
