package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/finance"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// proximaSessaoResp é a linha dos painéis de agenda. As chaves cliente,
// telefone, data (DD/MM/YYYY) e horario (HH:MM) são o contrato que o front
// lê; id, cliente_id e valor são aditivos.
type proximaSessaoResp struct {
	ID              int64    `json:"id"`
	ClienteID       int64    `json:"cliente_id"`
	Cliente         string   `json:"cliente"`
	Telefone        *string  `json:"telefone"`
	Data            string   `json:"data"`
	Horario         string   `json:"horario"`
	TipoAtendimento string   `json:"tipo_atendimento"`
	Valor           *float64 `json:"valor"`
}

func proximaSessaoJSON(s *repo.SessaoComCliente) proximaSessaoResp {
	return proximaSessaoResp{
		ID: s.ID, ClienteID: s.ClienteID, Cliente: s.ClienteNome,
		Telefone: s.ClienteTelefone, Data: s.Data.Format("02/01/2006"),
		Horario: repo.TimeStringToHHMM(s.Horario), TipoAtendimento: s.TipoAtendimento,
		Valor: s.Valor,
	}
}

// ResumoFinanceiro agrega o mês consultado (?mes=&ano=, padrão o corrente).
// A resposta fica em cache; qualquer escrita na agenda invalida o prefixo.
func (h *Handler) ResumoFinanceiro(w http.ResponseWriter, r *http.Request) {
	agora := time.Now()
	ano, mes, err := queryMesAno(r, agora)
	if err != nil {
		writeErro(w, http.StatusBadRequest, err.Error())
		return
	}
	chave := fmt.Sprintf("dashboard:resumo:%04d-%02d", ano, mes)
	if body := h.Cache.Get(chave); body != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
		return
	}
	de, ate := finance.MesPeriodo(ano, mes)
	resumo, err := finance.ResumoFinanceiro(r.Context(), h.DB, de, ate, hojeUTC())
	if err != nil {
		log.Printf("[api] resumo financeiro %04d-%02d: %v", ano, mes, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	body, err := json.Marshal(resumo)
	if err != nil {
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	h.Cache.Set(chave, body)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// ProximasSessoes lista as sessões dos próximos 7 dias ainda não
// realizadas, com nome e telefone do cliente.
func (h *Handler) ProximasSessoes(w http.ResponseWriter, r *http.Request) {
	hoje := hojeUTC()
	list, err := repo.ListSessoesComClienteEntre(r.Context(), h.DB, hoje, hoje.AddDate(0, 0, 7))
	if err != nil {
		log.Printf("[api] próximas sessões: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := []proximaSessaoResp{}
	for i := range list {
		if list[i].FoiRealizada {
			continue
		}
		out = append(out, proximaSessaoJSON(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// proximoDiaUtil devolve o dia seguinte, pulando o fim de semana: na
// sexta-feira o lembrete de "amanhã" já mira a segunda.
func proximoDiaUtil(hoje time.Time) time.Time {
	if hoje.Weekday() == time.Friday {
		return hoje.AddDate(0, 0, 3)
	}
	return hoje.AddDate(0, 0, 1)
}

// SessoesAmanha lista as sessões ainda não realizadas do próximo dia útil.
func (h *Handler) SessoesAmanha(w http.ResponseWriter, r *http.Request) {
	alvo := proximoDiaUtil(hojeUTC())
	list, err := repo.ListSessoesComClienteEntre(r.Context(), h.DB, alvo, alvo)
	if err != nil {
		log.Printf("[api] sessões de amanhã: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := []proximaSessaoResp{}
	for i := range list {
		if list[i].FoiRealizada {
			continue
		}
		out = append(out, proximaSessaoJSON(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
