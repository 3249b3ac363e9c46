package agenda

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

func cadeiaSemanal(inicio time.Time, horario string, n int) (repo.Sessao, []repo.Sessao) {
	rep := uuid.New()
	valor := 100.0
	alvo := repo.Sessao{
		ID: 1, ClienteID: 1, Data: inicio, Horario: horario,
		TipoAtendimento: "psicoterapia", Frequencia: FrequenciaSemanal,
		Valor: &valor, RepeticaoID: &rep,
	}
	futuras := make([]repo.Sessao, n)
	for i := range futuras {
		futuras[i] = alvo
		futuras[i].ID = int64(i + 2)
		futuras[i].Data = inicio.AddDate(0, 0, 7*(i+1))
	}
	return alvo, futuras
}

func TestPlanejaCascataFrequenciaReencaixaIrmas(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 3)
	novo := atual
	novo.Frequencia = FrequenciaMensal

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{Frequencias: true})

	want := []time.Time{dia(2025, 4, 3), dia(2025, 5, 3), dia(2025, 6, 3)}
	for i := range plano {
		if !plano[i].Data.Equal(want[i]) {
			t.Errorf("plano[%d].Data = %s, esperava %s", i, plano[i].Data.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
		if plano[i].Frequencia != FrequenciaMensal {
			t.Errorf("plano[%d].Frequencia = %q", i, plano[i].Frequencia)
		}
		if plano[i].ID != futuras[i].ID {
			t.Errorf("plano[%d] trocou de linha: id %d -> %d", i, futuras[i].ID, plano[i].ID)
		}
		if causas[i] != CausaFrequencia {
			t.Errorf("causas[%d] = %v, esperava CausaFrequencia", i, causas[i])
		}
	}
}

func TestPlanejaCascataDataDeslocaPeloDelta(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 2)
	novo := atual
	novo.Data = dia(2025, 3, 5) // +2 dias

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{DataHorario: true})

	want := []time.Time{dia(2025, 3, 12), dia(2025, 3, 19)}
	for i := range plano {
		if !plano[i].Data.Equal(want[i]) {
			t.Errorf("plano[%d].Data = %s, esperava %s", i, plano[i].Data.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
		if causas[i] != CausaData {
			t.Errorf("causas[%d] = %v, esperava CausaData", i, causas[i])
		}
	}
}

func TestPlanejaCascataHorarioEmBloco(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 2)
	novo := atual
	novo.Horario = "16:30"

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{DataHorario: true})

	for i := range plano {
		if plano[i].Horario != "16:30:00" {
			t.Errorf("plano[%d].Horario = %q", i, plano[i].Horario)
		}
		if !plano[i].Data.Equal(futuras[i].Data) {
			t.Errorf("plano[%d] mudou de data sem mudança de data no alvo", i)
		}
		if causas[i] != CausaHorario {
			t.Errorf("causas[%d] = %v, esperava CausaHorario", i, causas[i])
		}
	}
}

func TestPlanejaCascataDataEHorarioJuntos(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 2)
	novo := atual
	novo.Data = dia(2025, 3, 4)
	novo.Horario = "09:00:00"

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{DataHorario: true})

	for i := range plano {
		if !plano[i].Data.Equal(futuras[i].Data.AddDate(0, 0, 1)) {
			t.Errorf("plano[%d].Data = %s", i, plano[i].Data.Format("2006-01-02"))
		}
		if plano[i].Horario != "09:00:00" {
			t.Errorf("plano[%d].Horario = %q", i, plano[i].Horario)
		}
		// A data domina a atribuição da causa.
		if causas[i] != CausaData {
			t.Errorf("causas[%d] = %v, esperava CausaData", i, causas[i])
		}
	}
}

func TestPlanejaCascataValores(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 2)
	novo := atual
	novoValor := 150.0
	novo.Valor = &novoValor

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{Valores: true})

	for i := range plano {
		if plano[i].Valor == nil || *plano[i].Valor != 150.0 {
			t.Errorf("plano[%d].Valor não propagado", i)
		}
		if !plano[i].Data.Equal(futuras[i].Data) || plano[i].Horario != futuras[i].Horario {
			t.Errorf("plano[%d] reposicionado por mudança de valor", i)
		}
		if causas[i] != CausaNenhuma {
			t.Errorf("causas[%d] = %v, valor não reposiciona slot", i, causas[i])
		}
	}
}

// Flag desligada: a mudança fica só no alvo, irmãs intactas.
func TestPlanejaCascataSemFlagsNaoPropaga(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 2)
	novo := atual
	novo.Data = dia(2025, 3, 10)
	novo.Horario = "16:00:00"
	novo.Frequencia = FrequenciaMensal
	novoValor := 999.0
	novo.Valor = &novoValor

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{})

	for i := range plano {
		if !plano[i].Data.Equal(futuras[i].Data) || plano[i].Horario != futuras[i].Horario ||
			plano[i].Frequencia != futuras[i].Frequencia || *plano[i].Valor != *futuras[i].Valor {
			t.Errorf("plano[%d] mudou sem flag", i)
		}
		if causas[i] != CausaNenhuma {
			t.Errorf("causas[%d] = %v", i, causas[i])
		}
	}
}

// Flag ligada mas campo igual: nada a propagar.
func TestPlanejaCascataFlagSemMudancaNaoPropaga(t *testing.T) {
	atual, futuras := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 2)
	novo := atual

	plano, causas := planejaCascata(&atual, &novo, futuras, Flags{Frequencias: true, DataHorario: true, Valores: true})

	for i := range plano {
		if !plano[i].Data.Equal(futuras[i].Data) || plano[i].Horario != futuras[i].Horario {
			t.Errorf("plano[%d] reposicionado sem mudança", i)
		}
		if causas[i] != CausaNenhuma {
			t.Errorf("causas[%d] = %v", i, causas[i])
		}
	}
}

func TestErroDaCausa(t *testing.T) {
	atual, _ := cadeiaSemanal(dia(2025, 3, 3), "14:00:00", 0)
	novo := atual

	if err := erroDaCausa(CausaFrequencia, &atual, &novo, Flags{}); err != ErrConflitoFrequenciaFutura {
		t.Errorf("CausaFrequencia -> %v", err)
	}
	if err := erroDaCausa(CausaData, &atual, &novo, Flags{}); err != ErrConflitoDataFutura {
		t.Errorf("CausaData -> %v", err)
	}
	if err := erroDaCausa(CausaHorario, &atual, &novo, Flags{}); err != ErrConflitoHorarioFuturo {
		t.Errorf("CausaHorario -> %v", err)
	}

	// Irmã intacta atropelada: o culpado vem das flags e do que mudou.
	novo.Frequencia = FrequenciaMensal
	if err := erroDaCausa(CausaNenhuma, &atual, &novo, Flags{Frequencias: true}); err != ErrConflitoFrequenciaFutura {
		t.Errorf("atropelo por frequência -> %v", err)
	}
	novo = atual
	novo.Data = dia(2025, 3, 4)
	if err := erroDaCausa(CausaNenhuma, &atual, &novo, Flags{DataHorario: true}); err != ErrConflitoDataFutura {
		t.Errorf("atropelo por data -> %v", err)
	}
	novo = atual
	if err := erroDaCausa(CausaNenhuma, &atual, &novo, Flags{DataHorario: true}); err != ErrConflitoHorarioFuturo {
		t.Errorf("atropelo por horário -> %v", err)
	}
}
