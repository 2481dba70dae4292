package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// ExportProjection — аудит всех событий и обезличенная сводка для выгрузки.
type ExportProjection struct {
	repo ports.ExportRepository
}

func NewExportProjection(repo ports.ExportRepository) *ExportProjection {
	return &ExportProjection{repo: repo}
}

func (*ExportProjection) Name() string { return "export" }

func (p *ExportProjection) Apply(ctx context.Context, ev domain.Event, meta domain.EventMetadata) error {
	payload, err := domain.EncodeEvent(ev)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := p.repo.SaveAggregateEvent(ctx, ev, payload, meta); err != nil {
		return err
	}

	switch e := ev.(type) {
	case domain.NotificationCreated:
		return p.repo.SaveNotification(ctx, domain.NewNotification(e), exportRecipients(e.Recipients))
	case domain.TaskCreated:
		return p.repo.SaveNotification(ctx, domain.NewTask(e), exportRecipients(e.Recipients))
	case domain.CaseCreated:
		return p.repo.SaveCase(ctx, e.AggregateID, e.ProducerID, e.Tag, e.Title, e.CreatedAt)
	case domain.CaseStatusChanged:
		return p.repo.UpdateCaseStatus(ctx, e.AggregateID, e.Status, e.ChangedAt)
	default:
		return nil
	}
}

// exportRecipients — получатели без идентификаторов людей.
func exportRecipients(recipients domain.Recipients) []ports.ExportRecipient {
	out := make([]ports.ExportRecipient, 0, len(recipients))
	for _, r := range recipients {
		var hash string
		switch rr := r.(type) {
		case domain.AltinnRecipient:
			hash = pseudonym(rr.OrgNumber, rr.ServiceCode, rr.ServiceEdition)
		case domain.LeaderRecipient:
			hash = pseudonym(rr.OrgNumber, rr.LeaderID, rr.EmployeeID)
		default:
			continue
		}
		out = append(out, ports.ExportRecipient{Kind: r.Kind(), OrgNumber: r.Org(), Hash: hash})
	}
	return out
}
