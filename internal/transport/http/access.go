package rest

import (
	"fmt"
	"strings"

	"github.com/Gunvolt24/notifier/internal/domain"
)

// maxAccessEntries — верхняя граница числа доступов в одном запросе.
const maxAccessEntries = 500

// parseAccess — разбор значений вида "org:code:edition".
func parseAccess(values []string) ([]domain.AltinnAccess, error) {
	if len(values) > maxAccessEntries {
		return nil, fmt.Errorf("too many access entries: %d > %d", len(values), maxAccessEntries)
	}
	out := make([]domain.AltinnAccess, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid access %q: want org:code:edition", v)
		}
		out = append(out, domain.AltinnAccess{OrgNumber: parts[0], ServiceCode: parts[1], ServiceEdition: parts[2]})
	}
	return out, nil
}
