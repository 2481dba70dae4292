package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// pseudonym — sha256 от частей идентификатора; в аналитику и выгрузку не попадают сами идентификаторы.
func pseudonym(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
