package finance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// Preview resume o que entraria num recibo do mês: sessões realizadas e
// pagas do cliente, com as datas no formato que o recibo imprime.
type Preview struct {
	Quantidade int      `json:"quantidade"`
	ValorTotal float64  `json:"valor_total"`
	Datas      []string `json:"datas"`
}

// ReciboLinha agrupa as sessões do recibo por tipo de atendimento.
type ReciboLinha struct {
	TipoAtendimento string  `json:"tipo_atendimento"`
	Quantidade      int     `json:"quantidade"`
	ValorPago       float64 `json:"valor_pago"`
}

type Recibo struct {
	Cliente    string        `json:"cliente"`
	CpfCnpj    string        `json:"cpf_cnpj"`
	Periodo    string        `json:"periodo"`
	Linhas     []ReciboLinha `json:"linhas"`
	ValorTotal float64       `json:"valor_total"`
}

func sessoesFaturaveis(sessoes []repo.Sessao) []repo.Sessao {
	var out []repo.Sessao
	for _, s := range sessoes {
		if s.FoiRealizada && s.FoiPaga {
			out = append(out, s)
		}
	}
	return out
}

// PreviewRecibo monta a prévia do recibo do cliente no mês.
func PreviewRecibo(ctx context.Context, db *gorm.DB, clienteID int64, ano int, mes time.Month) (*Preview, error) {
	de, ate := MesPeriodo(ano, mes)
	sessoes, err := repo.ListSessoesDoClienteEntre(ctx, db, clienteID, de, ate)
	if err != nil {
		return nil, err
	}
	p := &Preview{Datas: []string{}}
	for _, s := range sessoesFaturaveis(sessoes) {
		p.Quantidade++
		p.ValorTotal += valorOuZero(s.Valor)
		p.Datas = append(p.Datas, s.Data.Format("02/01/2006"))
	}
	return p, nil
}

// MontaRecibo monta o recibo detalhado do cliente no mês, agrupando por tipo
// de atendimento e somando o que foi efetivamente pago (tabela pagamentos);
// sessões pagas sem pagamento lançado entram pelo valor da sessão.
func MontaRecibo(ctx context.Context, db *gorm.DB, clienteID int64, ano int, mes time.Month) (*Recibo, error) {
	cliente, err := repo.ClienteByID(ctx, db, clienteID)
	if err != nil {
		return nil, err
	}
	de, ate := MesPeriodo(ano, mes)
	sessoes, err := repo.ListSessoesDoClienteEntre(ctx, db, clienteID, de, ate)
	if err != nil {
		return nil, err
	}
	faturaveis := sessoesFaturaveis(sessoes)

	ids := make([]int64, 0, len(faturaveis))
	for _, s := range faturaveis {
		ids = append(ids, s.ID)
	}
	pagamentos, err := repo.ListPagamentosDasSessoes(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	pagoPorSessao := make(map[int64]float64, len(pagamentos))
	for _, p := range pagamentos {
		pagoPorSessao[p.SessaoID] += p.ValorPago
	}

	porTipo := make(map[string]*ReciboLinha)
	total := 0.0
	for _, s := range faturaveis {
		pago, ok := pagoPorSessao[s.ID]
		if !ok {
			pago = valorOuZero(s.Valor)
		}
		linha := porTipo[s.TipoAtendimento]
		if linha == nil {
			linha = &ReciboLinha{TipoAtendimento: s.TipoAtendimento}
			porTipo[s.TipoAtendimento] = linha
		}
		linha.Quantidade++
		linha.ValorPago += pago
		total += pago
	}

	linhas := make([]ReciboLinha, 0, len(porTipo))
	for _, l := range porTipo {
		linhas = append(linhas, *l)
	}
	sort.Slice(linhas, func(i, j int) bool { return linhas[i].TipoAtendimento < linhas[j].TipoAtendimento })

	return &Recibo{
		Cliente:    cliente.Nome,
		CpfCnpj:    cliente.CpfCnpj,
		Periodo:    fmt.Sprintf("%02d/%d", mes, ano),
		Linhas:     linhas,
		ValorTotal: total,
	}, nil
}
