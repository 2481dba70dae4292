package validate

import (
	"context"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// ValidateEventFromJSON — разбор конверта события и валидация.
func ValidateEventFromJSON(ctx context.Context, validator ports.EventValidator, raw []byte) (domain.Event, error) {
	ev, err := domain.DecodeEvent(raw)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
