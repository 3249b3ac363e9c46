package finance

import (
	"testing"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

func TestSessoesFaturaveis(t *testing.T) {
	sessoes := []repo.Sessao{
		sessao(dia(2025, 3, 3), 100, true, true),
		sessao(dia(2025, 3, 10), 100, true, false),
		sessao(dia(2025, 3, 17), 100, false, true),
		sessao(dia(2025, 3, 24), 100, false, false),
	}
	fat := sessoesFaturaveis(sessoes)
	if len(fat) != 1 {
		t.Fatalf("esperava 1 faturável, veio %d", len(fat))
	}
	if !fat[0].Data.Equal(dia(2025, 3, 3)) {
		t.Errorf("faturável errada: %s", fat[0].Data.Format("2006-01-02"))
	}
}

func TestFormatoDataRecibo(t *testing.T) {
	if got := dia(2025, 3, 3).Format("02/01/2006"); got != "03/03/2025" {
		t.Fatalf("data do recibo = %q", got)
	}
	if got := dia(2025, 12, 1).Format("02/01/2006"); got != "01/12/2025" {
		t.Fatalf("data do recibo = %q", got)
	}
}
