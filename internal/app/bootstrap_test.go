package app_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/notifier/internal/app"
	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/internal/ports/mocks"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковый консьюмер: ждёт отмены контекста или сразу возвращает runErr
type fakeConsumer struct {
	group      string
	runErr     error
	runCalls   int32
	closeCalls int32
}

func (f *fakeConsumer) Run(ctx context.Context) error {
	atomic.AddInt32(&f.runCalls, 1)
	if f.runErr != nil {
		return f.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeConsumer) Close() error {
	atomic.AddInt32(&f.closeCalls, 1)
	return nil
}

func (f *fakeConsumer) Status() ports.ConsumerStatus {
	return ports.ConsumerStatus{Group: f.group, Topic: "fager"}
}

func newServer() *http.Server {
	// HTTP-сервер на случайном свободном порту
	return &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
}

func TestAppRun_GracefulShutdown(t *testing.T) {
	fc := &fakeConsumer{group: "inbox"}
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    newServer(),
		KafkaConsumer: app.NewConsumers(fc),
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fc.runCalls) == 0 {
		t.Fatalf("consumer.Run should be called")
	}
	if atomic.LoadInt32(&fc.closeCalls) == 0 {
		t.Fatalf("consumer.Close should be called")
	}
}

func TestAppRun_FatalConsumerErrorStopsApp(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := mocks.NewMockMessageConsumer(ctrl)

	fatal := errors.New("commit failed")
	gomock.InOrder(
		consumer.EXPECT().Run(gomock.Any()).Return(fatal),
		consumer.EXPECT().Close().Return(nil),
	)

	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    newServer(),
		KafkaConsumer: consumer,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Run(ctx); !errors.Is(err, fatal) {
		t.Fatalf("want %v, got %v", fatal, err)
	}
	if ctx.Err() != nil {
		t.Fatalf("Run should return before the context deadline")
	}
}

func TestConsumers_RunStopsAllOnFatalError(t *testing.T) {
	fatal := errors.New("poll failed")
	healthy := &fakeConsumer{group: "inbox"}
	broken := &fakeConsumer{group: "statistics", runErr: fatal}

	set := app.NewConsumers(healthy, broken)

	done := make(chan error, 1)
	go func() { done <- set.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, fatal) {
			t.Fatalf("want %v, got %v", fatal, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after a fatal error")
	}
	if atomic.LoadInt32(&healthy.runCalls) != 1 {
		t.Fatalf("healthy consumer should be started")
	}
}

func TestConsumers_EmptyWaitsForContext(t *testing.T) {
	set := app.NewConsumers()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := set.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if err := set.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := set.ConsumerStatuses(); len(got) != 0 {
		t.Fatalf("want no statuses, got %v", got)
	}
}

func TestConsumers_StatusesAndClose(t *testing.T) {
	a := &fakeConsumer{group: "inbox"}
	b := &fakeConsumer{group: "export"}
	set := app.NewConsumers(a, b)

	got := set.ConsumerStatuses()
	if len(got) != 2 || got[0].Group != "inbox" || got[1].Group != "export" {
		t.Fatalf("unexpected statuses: %+v", got)
	}

	if err := set.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if atomic.LoadInt32(&a.closeCalls) != 1 || atomic.LoadInt32(&b.closeCalls) != 1 {
		t.Fatalf("every consumer should be closed")
	}
}
