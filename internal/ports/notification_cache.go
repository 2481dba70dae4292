package ports

import (
	"context"

	"github.com/google/uuid"
)

// OrgCache — кэш "уведомление → организация".
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1).
type OrgCache interface {
	// Get — (orgNumber, true) при попадании, ("", false) при промахе/истечении.
	Get(ctx context.Context, notificationID uuid.UUID) (string, bool)

	// Set — сохранить/обновить значение.
	Set(ctx context.Context, notificationID uuid.UUID, orgNumber string) error

	// Delete — уведомление удалено.
	Delete(ctx context.Context, notificationID uuid.UUID)
}
