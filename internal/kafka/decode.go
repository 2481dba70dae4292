package kafka

import (
	"context"
	"encoding/json"
	"fmt"
)

// Decoder — стратегия декодирования ключа или значения записи.
type Decoder[T any] func(raw []byte) (T, error)

// BytesDecoder — без преобразования.
func BytesDecoder(raw []byte) ([]byte, error) { return raw, nil }

// StringDecoder — UTF-8 строка.
func StringDecoder(raw []byte) (string, error) { return string(raw), nil }

// JSONDecoder — декодер JSON в T.
func JSONDecoder[T any]() Decoder[T] {
	return func(raw []byte) (T, error) {
		var v T
		err := json.Unmarshal(raw, &v)
		return v, err
	}
}

// Decode — адаптер типизированного обработчика к Handler.
// Для tombstone-записи значение не декодируется и передаётся нулевым.
// Ошибка декодирования возвращается как ошибка обработки (запись будет повторена).
func Decode[K, V any](keys Decoder[K], values Decoder[V], fn func(ctx context.Context, rec *Record, key K, value V) error) Handler {
	return HandlerFunc(func(ctx context.Context, rec *Record) error {
		var (
			key   K
			value V
			err   error
		)
		if rec.Key != nil {
			if key, err = keys(rec.Key); err != nil {
				return fmt.Errorf("decode key: %w", err)
			}
		}
		if !rec.Tombstone() {
			if value, err = values(rec.Value); err != nil {
				return fmt.Errorf("decode value: %w", err)
			}
		}
		return fn(ctx, rec, key, value)
	})
}
