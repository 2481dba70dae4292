package ports

import "context"

// MessageConsumer — долгоживущий читатель лога.
// Run блокируется до отмены ctx (возвращает ctx.Err()) или фатальной ошибки клиента.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
