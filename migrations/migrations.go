// Package migrations — SQL-схема read-моделей (goose).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
