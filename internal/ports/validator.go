package ports

import (
	"context"

	"github.com/Gunvolt24/notifier/internal/domain"
)

type EventValidator interface {
	Validate(ctx context.Context, ev domain.Event) error
}
