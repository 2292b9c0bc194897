// Пакет migrations — SQL-миграции goose, встроенные в бинарник.
package migrations

import "embed"

// FS — файлы миграций (*.sql).
//
//go:embed *.sql
var FS embed.FS
