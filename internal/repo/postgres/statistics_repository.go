package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// Проверка, что StatisticsRepository удовлетворяет интерфейсу StatisticsRepository.
var _ ports.StatisticsRepository = (*StatisticsRepository)(nil)

// StatisticsRepository — факты об уведомлениях для аналитики.
// Удаление уведомления только отмечается: факт остаётся.
type StatisticsRepository struct {
	pool *pgxpool.Pool
}

func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{pool: pool}
}

// recipientKind — altinn, leader или mixed, если в списке оба вида.
func recipientKind(recipients domain.Recipients) string {
	kind := ""
	for _, r := range recipients {
		switch {
		case kind == "":
			kind = r.Kind()
		case kind != r.Kind():
			return "mixed"
		}
	}
	if kind == "" {
		return "none"
	}
	return kind
}

// RecordNotification — факт создания; текст хранится только хэшем (для подсчёта уникальных текстов).
func (r *StatisticsRepository) RecordNotification(ctx context.Context, n *domain.Notification, recipients domain.Recipients) error {
	if n == nil || n.ID == uuid.Nil {
		return errors.New("notification is empty or id is required")
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO stat_notification (
			notification_id, kind, producer_id, tag, org_number, recipient_kind, recipient_count, created_at, deadline, text_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, md5($10))
		ON CONFLICT (notification_id) DO NOTHING
	`,
		n.ID, n.Kind, n.ProducerID, n.Tag, n.OrgNumber, recipientKind(recipients), len(recipients), n.CreatedAt, n.Deadline, n.Text,
	); err != nil {
		return fmt.Errorf("insert stat notification: %w", err)
	}
	return nil
}

// RecordClick — первый клик пользователя; повторные клики не считаются.
func (r *StatisticsRepository) RecordClick(ctx context.Context, notificationID uuid.UUID, userHash string, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO stat_click (notification_id, user_hash, clicked_at) VALUES ($1, $2, $3)
		ON CONFLICT (notification_id, user_hash) DO NOTHING
	`, notificationID, userHash, at); err != nil {
		return fmt.Errorf("insert stat click: %w", err)
	}
	return nil
}

// MarkCompleted — выполненная задача больше не считается просроченной.
func (r *StatisticsRepository) MarkCompleted(ctx context.Context, notificationID uuid.UUID, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE stat_notification
		SET completed_at = COALESCE(completed_at, $2),
		    expired_at = NULL
		WHERE notification_id = $1
	`, notificationID, at); err != nil {
		return fmt.Errorf("update completed_at: %w", err)
	}
	return nil
}

// MarkExpired — уже выполненную задачу не трогаем.
func (r *StatisticsRepository) MarkExpired(ctx context.Context, notificationID uuid.UUID, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE stat_notification
		SET expired_at = COALESCE(expired_at, $2)
		WHERE notification_id = $1 AND completed_at IS NULL
	`, notificationID, at); err != nil {
		return fmt.Errorf("update expired_at: %w", err)
	}
	return nil
}

// MarkDeleted — мягкое удаление отмечается и у уведомления, и у дела с тем же id.
func (r *StatisticsRepository) MarkDeleted(ctx context.Context, notificationID uuid.UUID, at time.Time, hard bool) error {
	if hard {
		return r.stamp(ctx, "stat_notification", "notification_id", "hard_deleted_at", notificationID, at)
	}
	if err := r.stamp(ctx, "stat_notification", "notification_id", "soft_deleted_at", notificationID, at); err != nil {
		return err
	}
	return r.stamp(ctx, "stat_case", "case_id", "soft_deleted_at", notificationID, at)
}

// stamp — первая отметка времени выигрывает; table/key/column — только константы этого файла.
func (r *StatisticsRepository) stamp(ctx context.Context, table, key, column string, id uuid.UUID, at time.Time) error {
	sql := fmt.Sprintf(`UPDATE %[1]s SET %[3]s = COALESCE(%[3]s, $2) WHERE %[2]s = $1`, table, key, column)
	if _, err := r.pool.Exec(ctx, sql, id, at); err != nil {
		return fmt.Errorf("update %s.%s: %w", table, column, err)
	}
	return nil
}

// RecordExternal — исход внешнего оповещения; более позднее событие по каналу перекрывает раннее.
func (r *StatisticsRepository) RecordExternal(ctx context.Context, notificationID uuid.UUID, channel string, ok bool, errorCode string, at time.Time) error {
	if ok {
		errorCode = ""
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO stat_external (notification_id, channel, ok, error_code, at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (notification_id, channel) DO UPDATE SET
			ok = EXCLUDED.ok,
			error_code = EXCLUDED.error_code,
			at = EXCLUDED.at
		WHERE stat_external.at <= EXCLUDED.at
	`, notificationID, channel, ok, errorCode, at); err != nil {
		return fmt.Errorf("upsert stat external: %w", err)
	}
	return nil
}

func (r *StatisticsRepository) RecordCase(ctx context.Context, c domain.CaseCreated) error {
	if c.AggregateID == uuid.Nil {
		return errors.New("case id is required")
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO stat_case (case_id, producer_id, tag, recipient_kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (case_id) DO NOTHING
	`, c.AggregateID, c.ProducerID, c.Tag, recipientKind(c.Recipients), c.CreatedAt); err != nil {
		return fmt.Errorf("insert stat case: %w", err)
	}
	return nil
}

// NotificationStats — количество, открытия, клики, просроченные задачи и уникальные тексты
// в разрезе продюсер/тег/вид получателя/тип.
func (r *StatisticsRepository) NotificationStats(ctx context.Context) ([]domain.NotificationStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.producer_id, n.tag, n.recipient_kind, n.kind,
		       count(*),
		       count(*) FILTER (WHERE c.clicks > 0),
		       COALESCE(sum(c.clicks), 0)::bigint,
		       count(*) FILTER (WHERE n.expired_at IS NOT NULL),
		       count(DISTINCT n.text_hash)
		FROM stat_notification n
		LEFT JOIN (
			SELECT notification_id, count(*) AS clicks FROM stat_click GROUP BY notification_id
		) c ON c.notification_id = n.notification_id
		GROUP BY n.producer_id, n.tag, n.recipient_kind, n.kind
		ORDER BY n.producer_id, n.tag, n.recipient_kind, n.kind
	`)
	if err != nil {
		return nil, fmt.Errorf("select notification stats: %w", err)
	}
	defer rows.Close()

	var out []domain.NotificationStat
	for rows.Next() {
		var s domain.NotificationStat
		if err := rows.Scan(&s.ProducerID, &s.Tag, &s.RecipientKind, &s.Kind,
			&s.Total, &s.Clicked, &s.Clicks, &s.Expired, &s.UniqueTexts); err != nil {
			return nil, fmt.Errorf("scan notification stat: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notification stats rows: %w", err)
	}
	return out, nil
}

// CompletedAgeStats — выполненные задачи по корзинам времени от создания до выполнения.
func (r *StatisticsRepository) CompletedAgeStats(ctx context.Context) ([]domain.CompletedAgeStat, error) {
	rows, err := r.pool.Query(ctx, `
		WITH age AS (
			SELECT n.producer_id, n.tag, n.recipient_kind, n.kind,
			       EXISTS (SELECT 1 FROM stat_click c WHERE c.notification_id = n.notification_id) AS clicked,
			       n.completed_at - n.created_at AS age
			FROM stat_notification n
			WHERE n.completed_at IS NOT NULL
		)
		SELECT producer_id, tag, recipient_kind, kind, clicked,
		       CASE
		           WHEN age < interval '1 hour'  THEN '0-1H'
		           WHEN age < interval '1 day'   THEN '1H-1D'
		           WHEN age < interval '3 days'  THEN '1D-3D'
		           WHEN age < interval '1 week'  THEN '3D-1W'
		           WHEN age < interval '2 weeks' THEN '1W-2W'
		           WHEN age < interval '4 weeks' THEN '2W-4W'
		           ELSE '4W-infinity'
		       END AS bucket,
		       count(*)
		FROM age
		GROUP BY 1, 2, 3, 4, 5, 6
		ORDER BY 1, 2, 3, 4, 5, 6
	`)
	if err != nil {
		return nil, fmt.Errorf("select completed age stats: %w", err)
	}
	defer rows.Close()

	var out []domain.CompletedAgeStat
	for rows.Next() {
		var s domain.CompletedAgeStat
		if err := rows.Scan(&s.ProducerID, &s.Tag, &s.RecipientKind, &s.Kind, &s.Clicked, &s.Bucket, &s.Count); err != nil {
			return nil, fmt.Errorf("scan completed age stat: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completed age stats rows: %w", err)
	}
	return out, nil
}

// ExternalStats — исходы внешних оповещений по продюсеру, тегу, каналу и коду ошибки.
func (r *StatisticsRepository) ExternalStats(ctx context.Context) ([]domain.ExternalStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.producer_id, n.tag, e.channel,
		       CASE WHEN e.ok THEN 'succeeded' ELSE 'failed' END,
		       e.error_code,
		       count(*)
		FROM stat_external e
		JOIN stat_notification n ON n.notification_id = e.notification_id
		GROUP BY 1, 2, 3, 4, 5
		ORDER BY 1, 2, 3, 4, 5
	`)
	if err != nil {
		return nil, fmt.Errorf("select external stats: %w", err)
	}
	defer rows.Close()

	var out []domain.ExternalStat
	for rows.Next() {
		var s domain.ExternalStat
		if err := rows.Scan(&s.ProducerID, &s.Tag, &s.Channel, &s.Status, &s.ErrorCode, &s.Count); err != nil {
			return nil, fmt.Errorf("scan external stat: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("external stats rows: %w", err)
	}
	return out, nil
}

func (r *StatisticsRepository) CaseStats(ctx context.Context) ([]domain.CaseStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT producer_id, tag, recipient_kind, count(*)
		FROM stat_case
		GROUP BY producer_id, tag, recipient_kind
		ORDER BY producer_id, tag, recipient_kind
	`)
	if err != nil {
		return nil, fmt.Errorf("select case stats: %w", err)
	}
	defer rows.Close()

	var out []domain.CaseStat
	for rows.Next() {
		var s domain.CaseStat
		if err := rows.Scan(&s.ProducerID, &s.Tag, &s.RecipientKind, &s.Count); err != nil {
			return nil, fmt.Errorf("scan case stat: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("case stats rows: %w", err)
	}
	return out, nil
}
