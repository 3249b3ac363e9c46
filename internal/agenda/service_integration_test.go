//go:build integration

package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/testutil"
)

func TestAgendaIntegracao(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.MustMigrate(t, db)
	ctx := context.Background()

	clienteID, err := repo.CreateCliente(ctx, db, &repo.Cliente{
		Nome: "Cliente Agenda Teste", CpfCnpj: "000.000.000-00", Ativo: true,
	})
	if err != nil {
		t.Fatalf("criando cliente: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.DeleteCliente(ctx, db, clienteID)
	})

	// Datas bem no futuro para não esbarrar em dados reais do banco.
	inicio := time.Date(2031, 1, 6, 0, 0, 0, 0, time.UTC)
	valor := 120.0

	t.Run("criar cadeia semanal", func(t *testing.T) {
		s := &repo.Sessao{
			ClienteID: clienteID, Data: inicio, Horario: "08:00",
			TipoAtendimento: "psicoterapia", Frequencia: FrequenciaSemanal, Valor: &valor,
		}
		criada, err := CriarSessao(ctx, db, s, 28)
		if err != nil {
			t.Fatalf("criando sessão: %v", err)
		}
		if criada.ID == 0 || criada.RepeticaoID == nil {
			t.Fatalf("sessão sem id ou sem cadeia: %+v", criada)
		}
		irmas, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		// âncora + 4 semanas dentro do horizonte de 28 dias
		if len(irmas) != 5 {
			t.Fatalf("esperava 5 sessões na cadeia, veio %d", len(irmas))
		}
	})

	t.Run("slot ocupado rejeita criação", func(t *testing.T) {
		s := &repo.Sessao{
			ClienteID: clienteID, Data: inicio, Horario: "08:00",
			TipoAtendimento: "psicoterapia", Frequencia: FrequenciaAvulsa, Valor: &valor,
		}
		if _, err := CriarSessao(ctx, db, s, 28); !errors.Is(err, ErrConflitoHorario) {
			t.Fatalf("esperava ErrConflitoHorario, veio %v", err)
		}
	})

	t.Run("cascata de horário", func(t *testing.T) {
		irmas, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		alvo := irmas[0]
		novo := alvo
		novo.Horario = "09:30"
		if _, err := AtualizarSessao(ctx, db, alvo.ID, &novo, Flags{DataHorario: true}); err != nil {
			t.Fatalf("cascata de horário: %v", err)
		}
		depois, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range depois {
			if repo.TimeStringToHHMM(s.Horario) != "09:30" {
				t.Fatalf("sessão %d ficou em %s", s.ID, s.Horario)
			}
		}
	})

	t.Run("cascata de data desloca a cadeia", func(t *testing.T) {
		irmas, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		alvo := irmas[0]
		novo := alvo
		novo.Data = alvo.Data.AddDate(0, 0, 1)
		if _, err := AtualizarSessao(ctx, db, alvo.ID, &novo, Flags{DataHorario: true}); err != nil {
			t.Fatalf("cascata de data: %v", err)
		}
		depois, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range depois {
			esperada := irmas[i].Data.AddDate(0, 0, 1)
			if !s.Data.Equal(esperada) {
				t.Fatalf("sessão %d em %s, esperava %s", s.ID, s.Data.Format("2006-01-02"), esperada.Format("2006-01-02"))
			}
		}
	})

	t.Run("excluir cadeia a partir do alvo", func(t *testing.T) {
		irmas, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		// apaga da segunda em diante
		n, err := ExcluirSessao(ctx, db, irmas[1].ID, true)
		if err != nil {
			t.Fatalf("excluindo cadeia: %v", err)
		}
		if n != int64(len(irmas)-1) {
			t.Fatalf("esperava remover %d, removeu %d", len(irmas)-1, n)
		}
		restantes, err := repo.ListSessoesByCliente(ctx, db, clienteID)
		if err != nil {
			t.Fatal(err)
		}
		if len(restantes) != 1 {
			t.Fatalf("esperava sobrar 1, sobrou %d", len(restantes))
		}
	})
}
