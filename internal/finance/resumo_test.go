package finance

import (
	"testing"
	"time"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

func dia(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sessao(data time.Time, valor float64, realizada, paga bool) repo.Sessao {
	return repo.Sessao{Data: data, Valor: &valor, FoiRealizada: realizada, FoiPaga: paga}
}

func TestAgregaPeriodo(t *testing.T) {
	hoje := dia(2025, 3, 20)
	sessoes := []repo.Sessao{
		sessao(dia(2025, 3, 3), 100, true, true),
		sessao(dia(2025, 3, 10), 100, true, true),
		sessao(dia(2025, 3, 17), 100, true, true),
		sessao(dia(2025, 3, 18), 50, true, false),
		sessao(dia(2025, 3, 24), 100, false, false),
		sessao(dia(2025, 3, 31), 100, false, false),
	}

	r := agregaPeriodo(sessoes, hoje)

	if r.Sessoes != 4 {
		t.Errorf("sessoes = %d, esperava 4", r.Sessoes)
	}
	if r.Recebido != 300 {
		t.Errorf("recebido = %v, esperava 300", r.Recebido)
	}
	if r.AReceber != 50 {
		t.Errorf("a_receber = %v, esperava 50", r.AReceber)
	}
	if r.Futuras != 2 {
		t.Errorf("futuras = %d, esperava 2", r.Futuras)
	}
}

// Paga adiantado, ainda não realizada: conta em recebido, não em a_receber.
func TestAgregaPeriodoPagaAdiantado(t *testing.T) {
	hoje := dia(2025, 3, 20)
	r := agregaPeriodo([]repo.Sessao{sessao(dia(2025, 3, 25), 80, false, true)}, hoje)
	if r.Recebido != 80 {
		t.Errorf("recebido = %v, esperava 80", r.Recebido)
	}
	if r.AReceber != 0 {
		t.Errorf("a_receber = %v, esperava 0", r.AReceber)
	}
	if r.Sessoes != 0 {
		t.Errorf("sessoes = %d, esperava 0", r.Sessoes)
	}
}

func TestAgregaPeriodoValorNulo(t *testing.T) {
	hoje := dia(2025, 3, 20)
	r := agregaPeriodo([]repo.Sessao{
		{Data: dia(2025, 3, 3), FoiRealizada: true, FoiPaga: true},
	}, hoje)
	if r.Recebido != 0 || r.Sessoes != 1 {
		t.Errorf("resumo = %+v", r)
	}
}

func TestAgregaPeriodoHojeContaComoFutura(t *testing.T) {
	hoje := dia(2025, 3, 20)
	r := agregaPeriodo([]repo.Sessao{sessao(hoje, 100, false, false)}, hoje)
	if r.Futuras != 1 {
		t.Errorf("sessão de hoje deveria contar como futura, futuras = %d", r.Futuras)
	}
}

func TestMesPeriodo(t *testing.T) {
	de, ate := MesPeriodo(2025, time.February)
	if !de.Equal(dia(2025, 2, 1)) || !ate.Equal(dia(2025, 2, 28)) {
		t.Errorf("fevereiro/2025 = [%s, %s]", de.Format("2006-01-02"), ate.Format("2006-01-02"))
	}
	de, ate = MesPeriodo(2024, time.February)
	if !ate.Equal(dia(2024, 2, 29)) {
		t.Errorf("fevereiro/2024 termina em %s", ate.Format("2006-01-02"))
	}
	de, ate = MesPeriodo(2025, time.December)
	if !de.Equal(dia(2025, 12, 1)) || !ate.Equal(dia(2025, 12, 31)) {
		t.Errorf("dezembro/2025 = [%s, %s]", de.Format("2006-01-02"), ate.Format("2006-01-02"))
	}
}
