package agenda

import (
	"time"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// Flags controla o que a atualização de uma sessão propaga para as irmãs
// futuras da mesma cadeia. Cada flag só tem efeito se o campo correspondente
// de fato mudou.
type Flags struct {
	Frequencias bool // atualizar_futuras_frequencias
	DataHorario bool // atualizar_futuras_data_horario
	Valores     bool // atualizar_valores_futuros
}

// Causa identifica qual mudança reposicionou o slot de uma irmã, para o
// conflito ser reportado com a mensagem certa.
type Causa int

const (
	CausaNenhuma Causa = iota
	CausaFrequencia
	CausaData
	CausaHorario
)

func mesmaData(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func mesmoValor(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// planejaCascata aplica as mudanças de `novo` sobre as irmãs futuras,
// devolvendo-as já com os novos campos e a causa do reposicionamento de cada
// uma. As irmãs chegam em ordem cronológica e mantêm identidade de linha:
// a cascata de frequência reencaixa as MESMAS sessões na nova cadência
// ancorada na data do alvo, a de data desloca todas pelo mesmo delta de dias
// e a de horário troca o horário em bloco. Nada é gravado aqui.
func planejaCascata(atual, novo *repo.Sessao, futuras []repo.Sessao, flags Flags) ([]repo.Sessao, []Causa) {
	freqMudou := novo.Frequencia != atual.Frequencia
	dataMudou := !mesmaData(novo.Data, atual.Data)
	horarioMudou := NormalizaHorario(novo.Horario) != NormalizaHorario(atual.Horario)
	valorMudou := !mesmoValor(novo.Valor, atual.Valor)

	plano := make([]repo.Sessao, len(futuras))
	copy(plano, futuras)
	causas := make([]Causa, len(futuras))

	switch {
	case flags.Frequencias && freqMudou && Recorrente(novo.Frequencia):
		novas := ExpandN(novo.Data, novo.Frequencia, len(plano))
		for i := range plano {
			plano[i].Data = novas[i]
			plano[i].Frequencia = novo.Frequencia
			causas[i] = CausaFrequencia
		}
	case flags.DataHorario && dataMudou:
		delta := int(novo.Data.Sub(atual.Data).Hours() / 24)
		for i := range plano {
			plano[i].Data = plano[i].Data.AddDate(0, 0, delta)
			causas[i] = CausaData
		}
	}

	if flags.DataHorario && horarioMudou {
		for i := range plano {
			plano[i].Horario = NormalizaHorario(novo.Horario)
			if causas[i] == CausaNenhuma {
				causas[i] = CausaHorario
			}
		}
	}

	if flags.Valores && valorMudou {
		for i := range plano {
			plano[i].Valor = novo.Valor
		}
	}

	return plano, causas
}
