package finance

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// Resumo é o painel financeiro de um período.
//
//	sessoes        quantas foram realizadas no período
//	recebido       soma do valor das sessões pagas no período
//	a_receber      soma do valor das realizadas ainda não pagas no período
//	futuras        quantas do período ainda estão por vir
//	nao_realizadas pendências globais: sessões passadas nunca marcadas
//	               como realizadas, independente do período consultado
type Resumo struct {
	Sessoes       int     `json:"sessoes"`
	Recebido      float64 `json:"recebido"`
	AReceber      float64 `json:"a_receber"`
	Futuras       int     `json:"futuras"`
	NaoRealizadas int64   `json:"nao_realizadas"`
}

func valorOuZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// agregaPeriodo computa os campos do período a partir das sessões carregadas.
// Pagamento e realização são independentes: uma sessão paga adiantado conta
// em recebido mesmo sem ter sido realizada.
func agregaPeriodo(sessoes []repo.Sessao, hoje time.Time) Resumo {
	var r Resumo
	for _, s := range sessoes {
		if s.FoiRealizada {
			r.Sessoes++
		}
		if s.FoiPaga {
			r.Recebido += valorOuZero(s.Valor)
		}
		if s.FoiRealizada && !s.FoiPaga {
			r.AReceber += valorOuZero(s.Valor)
		}
		if !s.Data.Before(hoje) {
			r.Futuras++
		}
	}
	return r
}

// ResumoFinanceiro agrega o período [de, ate] e anexa as pendências globais.
func ResumoFinanceiro(ctx context.Context, db *gorm.DB, de, ate, hoje time.Time) (*Resumo, error) {
	sessoes, err := repo.ListSessoesEntre(ctx, db, de, ate)
	if err != nil {
		return nil, err
	}
	r := agregaPeriodo(sessoes, hoje)
	pendentes, err := repo.CountSessoesNaoRealizadasAntes(ctx, db, hoje)
	if err != nil {
		return nil, err
	}
	r.NaoRealizadas = pendentes
	return &r, nil
}

// MesPeriodo devolve o primeiro e o último dia do mês.
func MesPeriodo(ano int, mes time.Month) (time.Time, time.Time) {
	de := time.Date(ano, mes, 1, 0, 0, 0, 0, time.UTC)
	return de, de.AddDate(0, 1, -1)
}
