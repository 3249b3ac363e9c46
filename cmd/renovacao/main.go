package main

import (
	"context"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/agenda"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/config"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/migrate"
)

// Job de cron: estende as cadeias recorrentes para a agenda nunca secar.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL não definida")
	}
	ctx := context.Background()
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("db.DB: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	if err := migrate.Run(ctx, db, "migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	agora := time.Now()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
	criadas, err := agenda.RenovarSessoes(ctx, db, hoje)
	if err != nil {
		log.Fatalf("[renovacao] %v", err)
	}
	log.Printf("[renovacao] concluída: criadas=%d data=%s", criadas, hoje.Format("2006-01-02"))
	os.Exit(0)
}
