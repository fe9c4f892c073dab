package postgresql

import (
	"database/sql"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate применяет все миграции из каталога migrations при старте приложения.
func Migrate(dsn string, migrationDir string) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("не удалось открыть соединение для миграций: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось установить диалект goose: %v", err)
	}

	if err := goose.Up(db, migrationDir); err != nil {
		log.Fatalf("не удалось применить миграции: %v", err)
	}
}
