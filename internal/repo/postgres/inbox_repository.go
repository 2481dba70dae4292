package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// Проверка, что InboxRepository удовлетворяет интерфейсу InboxRepository.
var _ ports.InboxRepository = (*InboxRepository)(nil)

// InboxRepository — входящие пользователей на Postgres (pgxpool).
type InboxRepository struct {
	pool *pgxpool.Pool
}

// NewInboxRepository - конструктор InboxRepository.
func NewInboxRepository(pool *pgxpool.Pool) *InboxRepository { return &InboxRepository{pool: pool} }

// InsertNotification — уведомление и его получатели одной транзакцией.
// Повторная вставка того же уведомления ничего не меняет.
func (r *InboxRepository) InsertNotification(ctx context.Context, n *domain.Notification, recipients domain.Recipients) error {
	if n == nil || n.ID == uuid.Nil {
		return errors.New("notification is empty or id is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if _, err = tx.Exec(ctx, `
		INSERT INTO notification (
			id, kind, producer_id, tag, external_id, org_number, text, link, state, created_at, deadline
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`,
		n.ID, n.Kind, n.ProducerID, n.Tag, n.ExternalID, n.OrgNumber, n.Text, n.Link, n.State, n.CreatedAt, n.Deadline,
	); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	if err = insertRecipients(ctx, tx, n.ID, recipients); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insertRecipients — по одному INSERT на получателя, отправленных одним pgx.Batch.
func insertRecipients(ctx context.Context, tx pgx.Tx, id uuid.UUID, recipients domain.Recipients) error {
	if len(recipients) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rcp := range recipients {
		switch rr := rcp.(type) {
		case domain.LeaderRecipient:
			batch.Queue(`
				INSERT INTO recipient_leader (notification_id, org_number, leader_id, employee_id)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT DO NOTHING
			`, id, rr.OrgNumber, rr.LeaderID, rr.EmployeeID)
		case domain.AltinnRecipient:
			batch.Queue(`
				INSERT INTO recipient_altinn (notification_id, org_number, service_code, service_edition)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT DO NOTHING
			`, id, rr.OrgNumber, rr.ServiceCode, rr.ServiceEdition)
		default:
			return fmt.Errorf("unsupported recipient %T", rcp)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert recipients: %w", err)
	}
	return nil
}

// MarkClicked — пользователь открыл уведомление.
func (r *InboxRepository) MarkClicked(ctx context.Context, notificationID uuid.UUID, userID string) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO user_click (notification_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, notificationID, userID); err != nil {
		return fmt.Errorf("insert click: %w", err)
	}
	return nil
}

// SetState — смена состояния задачи. Для отсутствующего уведомления ничего не делает.
func (r *InboxRepository) SetState(ctx context.Context, notificationID uuid.UUID, state domain.TaskState) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE notification SET state = $2 WHERE id = $1 AND state <> $2
	`, notificationID, state); err != nil {
		return fmt.Errorf("update state: %w", err)
	}
	return nil
}

// Delete — уведомление, его получатели (каскадом) и клики.
func (r *InboxRepository) Delete(ctx context.Context, notificationID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if _, err = tx.Exec(ctx, `DELETE FROM notification WHERE id = $1`, notificationID); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM user_click WHERE notification_id = $1`, notificationID); err != nil {
		return fmt.Errorf("delete clicks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListForUser — уведомления, где пользователь руководитель-получатель
// или у него есть доступ Altinn к сервису организации. Новые сверху.
func (r *InboxRepository) ListForUser(ctx context.Context, q domain.InboxQuery) ([]domain.Notification, error) {
	limit := q.Limit
	if limit <= 0 || limit > domain.InboxLimit {
		limit = domain.InboxLimit
	}
	offset := max(q.Offset, 0)

	orgs := make([]string, 0, len(q.Access))
	codes := make([]string, 0, len(q.Access))
	editions := make([]string, 0, len(q.Access))
	for _, a := range q.Access {
		orgs = append(orgs, a.OrgNumber)
		codes = append(codes, a.ServiceCode)
		editions = append(editions, a.ServiceEdition)
	}

	rows, err := r.pool.Query(ctx, `
		WITH access AS (
			SELECT * FROM unnest($2::text[], $3::text[], $4::text[]) AS a(org_number, service_code, service_edition)
		), mine AS (
			SELECT notification_id FROM recipient_leader WHERE leader_id = $1
			UNION
			SELECT ra.notification_id
			FROM recipient_altinn ra
			JOIN access a USING (org_number, service_code, service_edition)
		)
		SELECT
			n.id, n.kind, n.producer_id, n.tag, n.external_id, n.org_number, n.text, n.link,
			n.state, n.created_at, n.deadline,
			EXISTS (SELECT 1 FROM user_click c WHERE c.notification_id = n.id AND c.user_id = $1) AS clicked
		FROM notification n
		WHERE n.id IN (SELECT notification_id FROM mine)
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $5 OFFSET $6
	`, q.UserID, orgs, codes, editions, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select inbox: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Notification, 0, min(limit, 32))
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.Kind, &n.ProducerID, &n.Tag, &n.ExternalID, &n.OrgNumber, &n.Text, &n.Link,
			&n.State, &n.CreatedAt, &n.Deadline, &n.Clicked,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inbox rows: %w", err)
	}
	return out, nil
}

// OrgNumberFor — организация уведомления. Если не нашли, возвращает ("", false, nil).
func (r *InboxRepository) OrgNumberFor(ctx context.Context, notificationID uuid.UUID) (string, bool, error) {
	var org string
	err := r.pool.QueryRow(ctx, `SELECT org_number FROM notification WHERE id = $1 LIMIT 1`, notificationID).Scan(&org)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select org number: %w", err)
	}
	return org, true, nil
}

// rollback — при уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
func rollback(ctx context.Context, tx pgx.Tx) {
	if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		_ = rbErr
	}
}
