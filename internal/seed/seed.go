package seed

import (
	"context"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/agenda"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// Run popula dados de demonstração quando SEED_DEMO=true. Idempotente: se
// já existe qualquer cliente, não faz nada.
func Run(ctx context.Context, db *gorm.DB) error {
	if os.Getenv("SEED_DEMO") != "true" {
		return nil
	}
	clientes, err := repo.ListClientes(ctx, db)
	if err != nil {
		return err
	}
	if len(clientes) > 0 {
		return nil
	}

	valor := 150.0
	telefone := "(11) 99999-0000"
	clienteID, err := repo.CreateCliente(ctx, db, &repo.Cliente{
		Nome:        "Cliente Demonstração",
		CpfCnpj:     "000.000.000-00",
		Telefone:    &telefone,
		ValorPadrao: &valor,
		Ativo:       true,
	})
	if err != nil {
		return err
	}

	// Uma cadeia semanal de 8 semanas começando na próxima segunda.
	hoje := time.Now()
	inicio := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC)
	for inicio.Weekday() != time.Monday {
		inicio = inicio.AddDate(0, 0, 1)
	}
	s := &repo.Sessao{
		ClienteID:       clienteID,
		Data:            inicio,
		Horario:         "10:00:00",
		TipoAtendimento: "psicoterapia",
		Frequencia:      agenda.FrequenciaSemanal,
		Valor:           &valor,
	}
	if _, err := agenda.CriarSessao(ctx, db, s, 8*7); err != nil {
		return err
	}
	log.Printf("[seed] dados de demonstração criados (cliente %d)", clienteID)
	return nil
}
