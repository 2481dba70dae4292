package domain

import (
	"encoding/json"
	"fmt"
)

// Recipient — получатель уведомления. Реализации: AltinnRecipient, LeaderRecipient.
type Recipient interface {
	Kind() string
	Org() string
}

const (
	RecipientAltinn = "altinn"
	RecipientLeader = "leader"
)

// AltinnRecipient — все, у кого в организации есть доступ к сервису (code + edition).
type AltinnRecipient struct {
	OrgNumber      string `json:"orgNumber"`
	ServiceCode    string `json:"serviceCode"`
	ServiceEdition string `json:"serviceEdition"`
}

// LeaderRecipient — конкретный руководитель конкретного сотрудника.
type LeaderRecipient struct {
	OrgNumber  string `json:"orgNumber"`
	LeaderID   string `json:"leaderId"`
	EmployeeID string `json:"employeeId"`
}

func (AltinnRecipient) Kind() string { return RecipientAltinn }
func (r AltinnRecipient) Org() string { return r.OrgNumber }
func (LeaderRecipient) Kind() string { return RecipientLeader }
func (r LeaderRecipient) Org() string { return r.OrgNumber }

// Recipients — список получателей с дискриминатором "@type" у каждого элемента.
type Recipients []Recipient

func (rs Recipients) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(rs))
	for _, r := range rs {
		raw, err := withType(r.Kind(), r)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func (rs *Recipients) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(Recipients, 0, len(raws))
	for i, raw := range raws {
		var probe struct {
			Type string `json:"@type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return fmt.Errorf("recipient[%d]: %w", i, err)
		}
		switch probe.Type {
		case RecipientAltinn:
			var r AltinnRecipient
			if err := json.Unmarshal(raw, &r); err != nil {
				return fmt.Errorf("recipient[%d]: %w", i, err)
			}
			out = append(out, r)
		case RecipientLeader:
			var r LeaderRecipient
			if err := json.Unmarshal(raw, &r); err != nil {
				return fmt.Errorf("recipient[%d]: %w", i, err)
			}
			out = append(out, r)
		default:
			return fmt.Errorf("recipient[%d]: unknown recipient type %q", i, probe.Type)
		}
	}
	*rs = out
	return nil
}
