package testutil

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/migrate"
)

// OpenDB abre o banco apontado por DATABASE_URL para testes de integração.
// Sem a variável definida o teste é pulado, não falha.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL não definida, pulando teste de integração")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrindo banco: %v", err)
	}
	return db
}

// MustMigrate aplica as migrações a partir da raiz do repositório.
func MustMigrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := migrate.Run(context.Background(), db, "../../migrations"); err != nil {
		t.Fatalf("aplicando migrações: %v", err)
	}
}
