package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// Проверка, что ExportRepository удовлетворяет интерфейсу ExportRepository.
var _ ports.ExportRepository = (*ExportRepository)(nil)

// ExportRepository — аудит событий и обезличенная сводка для выгрузки.
type ExportRepository struct {
	pool *pgxpool.Pool
}

func NewExportRepository(pool *pgxpool.Pool) *ExportRepository { return &ExportRepository{pool: pool} }

// SaveAggregateEvent — одна строка на событие (ключ — eventId) с координатами записи.
func (r *ExportRepository) SaveAggregateEvent(ctx context.Context, ev domain.Event, payload []byte, meta domain.EventMetadata) error {
	if ev == nil {
		return errors.New("event is required")
	}
	h := ev.Common()
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO aggregate_event (
			event_id, aggregate_id, event_type, producer_id, source_app, org_number, payload,
			kafka_timestamp, kafka_partition, kafka_offset
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_id) DO NOTHING
	`,
		h.EventID, h.AggregateID, string(ev.Type()), h.ProducerID, h.SourceApp, h.OrgNumber, payload,
		meta.Timestamp, meta.Partition, meta.Offset,
	); err != nil {
		return fmt.Errorf("insert aggregate event: %w", err)
	}
	return nil
}

// SaveNotification — уведомление и хэши получателей одной транзакцией.
func (r *ExportRepository) SaveNotification(ctx context.Context, n *domain.Notification, recipients []ports.ExportRecipient) error {
	if n == nil || n.ID == uuid.Nil {
		return errors.New("notification is empty or id is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if _, err = tx.Exec(ctx, `
		INSERT INTO export_notification (notification_id, kind, producer_id, tag, org_number, created_at, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (notification_id) DO NOTHING
	`, n.ID, n.Kind, n.ProducerID, n.Tag, n.OrgNumber, n.CreatedAt, n.Deadline); err != nil {
		return fmt.Errorf("insert export notification: %w", err)
	}

	if len(recipients) > 0 {
		batch := &pgx.Batch{}
		for _, rcp := range recipients {
			batch.Queue(`
				INSERT INTO export_recipient (notification_id, kind, org_number, hash)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT DO NOTHING
			`, n.ID, rcp.Kind, rcp.OrgNumber, rcp.Hash)
		}
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert export recipients: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ExportRepository) SaveCase(ctx context.Context, caseID uuid.UUID, producerID, tag, title string, createdAt time.Time) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO export_case (case_id, producer_id, tag, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (case_id) DO NOTHING
	`, caseID, producerID, tag, title, createdAt); err != nil {
		return fmt.Errorf("insert export case: %w", err)
	}
	return nil
}

// UpdateCaseStatus — статус дела; более ранняя смена не перекрывает более позднюю.
func (r *ExportRepository) UpdateCaseStatus(ctx context.Context, caseID uuid.UUID, status string, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE export_case SET status = $2, status_changed_at = $3
		WHERE case_id = $1 AND (status_changed_at IS NULL OR status_changed_at <= $3)
	`, caseID, status, at); err != nil {
		return fmt.Errorf("update case status: %w", err)
	}
	return nil
}
