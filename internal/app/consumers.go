package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/notifier/internal/ports"
)

// ProjectionConsumer — консьюмер одной проекции с диагностикой партиций.
type ProjectionConsumer interface {
	ports.MessageConsumer
	Status() ports.ConsumerStatus
}

// Проверка, что Consumers удовлетворяет интерфейсам.
var (
	_ ports.MessageConsumer        = (*Consumers)(nil)
	_ ports.ConsumerStatusProvider = (*Consumers)(nil)
)

// Consumers — консьюмеры всех включённых проекций как один MessageConsumer.
// Фатальная ошибка одного останавливает остальные.
type Consumers struct {
	list []ProjectionConsumer
}

func NewConsumers(list ...ProjectionConsumer) *Consumers {
	return &Consumers{list: list}
}

// Run — без консьюмеров просто ждёт отмены контекста.
func (s *Consumers) Run(ctx context.Context) error {
	if len(s.list) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range s.list {
		g.Go(func() error { return c.Run(gctx) })
	}
	return g.Wait()
}

// Close — закрывает всех; ошибки объединяются.
func (s *Consumers) Close() error {
	var errs []error
	for _, c := range s.list {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Consumers) ConsumerStatuses() []ports.ConsumerStatus {
	out := make([]ports.ConsumerStatus, 0, len(s.list))
	for _, c := range s.list {
		out = append(out, c.Status())
	}
	return out
}
