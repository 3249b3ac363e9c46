package api

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/cache"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/config"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

type Handler struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache *cache.TTL
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErro responde {"erro": msg}. O front compara as mensagens de conflito
// por igualdade, então elas saem exatamente como o motor as produziu.
func writeErro(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"erro": msg})
}

type clienteResp struct {
	ID          int64    `json:"id"`
	Nome        string   `json:"nome"`
	CpfCnpj     string   `json:"cpf_cnpj"`
	Endereco    *string  `json:"endereco"`
	Telefone    *string  `json:"telefone"`
	Email       *string  `json:"email"`
	ValorPadrao *float64 `json:"valor_padrao"`
	Ativo       bool     `json:"ativo"`
}

func clienteJSON(c *repo.Cliente) clienteResp {
	return clienteResp{
		ID: c.ID, Nome: c.Nome, CpfCnpj: c.CpfCnpj, Endereco: c.Endereco,
		Telefone: c.Telefone, Email: c.Email, ValorPadrao: c.ValorPadrao, Ativo: c.Ativo,
	}
}

type sessaoResp struct {
	ID              int64    `json:"id"`
	ClienteID       int64    `json:"cliente_id"`
	Data            string   `json:"data"`
	Horario         string   `json:"horario"`
	TipoAtendimento string   `json:"tipo_atendimento"`
	Frequencia      string   `json:"frequencia"`
	FoiRealizada    bool     `json:"foi_realizada"`
	FoiPaga         bool     `json:"foi_paga"`
	Valor           *float64 `json:"valor"`
	Observacoes     *string  `json:"observacoes"`
	RepeticaoID     *string  `json:"repeticao_id"`
	CriadoEm        string   `json:"criado_em,omitempty"`
}

func sessaoJSON(s *repo.Sessao) sessaoResp {
	resp := sessaoResp{
		ID:              s.ID,
		ClienteID:       s.ClienteID,
		Data:            s.Data.Format("2006-01-02"),
		Horario:         repo.TimeStringToHHMM(s.Horario),
		TipoAtendimento: s.TipoAtendimento,
		Frequencia:      s.Frequencia,
		FoiRealizada:    s.FoiRealizada,
		FoiPaga:         s.FoiPaga,
		Valor:           s.Valor,
		Observacoes:     s.Observacoes,
	}
	if s.RepeticaoID != nil {
		rid := s.RepeticaoID.String()
		resp.RepeticaoID = &rid
	}
	if !s.CriadoEm.IsZero() {
		resp.CriadoEm = s.CriadoEm.Format(time.RFC3339)
	}
	return resp
}

func sessoesJSON(list []repo.Sessao) []sessaoResp {
	out := make([]sessaoResp, len(list))
	for i := range list {
		out[i] = sessaoJSON(&list[i])
	}
	return out
}
