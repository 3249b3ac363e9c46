package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/agenda"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

type sessaoRequest struct {
	ClienteID       int64    `json:"cliente_id"`
	Data            string   `json:"data"`
	Horario         string   `json:"horario"`
	TipoAtendimento string   `json:"tipo_atendimento"`
	Frequencia      string   `json:"frequencia"`
	FoiRealizada    bool     `json:"foi_realizada"`
	FoiPaga         bool     `json:"foi_paga"`
	Valor           *float64 `json:"valor"`
	Observacoes     *string  `json:"observacoes"`

	// Flags de cascata, só consideradas na atualização.
	AtualizarFuturasFrequencias bool `json:"atualizar_futuras_frequencias"`
	AtualizarFuturasDataHorario bool `json:"atualizar_futuras_data_horario"`
	AtualizarValoresFuturos     bool `json:"atualizar_valores_futuros"`
}

// paraSessao valida e converte o corpo na linha da agenda. Devolve a
// mensagem de erro de validação, vazia quando ok.
func (req *sessaoRequest) paraSessao() (*repo.Sessao, string) {
	req.TipoAtendimento = strings.TrimSpace(req.TipoAtendimento)
	if req.ClienteID <= 0 {
		return nil, "cliente_id é obrigatório"
	}
	if req.TipoAtendimento == "" {
		return nil, "tipo_atendimento é obrigatório"
	}
	if !agenda.FrequenciaValida(req.Frequencia) {
		return nil, agenda.ErrFrequenciaInvalida.Error()
	}
	data, err := ParseData(req.Data)
	if err != nil {
		return nil, err.Error()
	}
	horario, err := ParseHorario(req.Horario)
	if err != nil {
		return nil, err.Error()
	}
	if req.Valor != nil && *req.Valor < 0 {
		return nil, agenda.ErrValorNegativo.Error()
	}
	return &repo.Sessao{
		ClienteID:       req.ClienteID,
		Data:            data,
		Horario:         horario,
		TipoAtendimento: req.TipoAtendimento,
		Frequencia:      req.Frequencia,
		FoiRealizada:    req.FoiRealizada,
		FoiPaga:         req.FoiPaga,
		Valor:           req.Valor,
		Observacoes:     req.Observacoes,
	}, ""
}

// respondeErroAgenda mapeia os erros do motor nos status da API: conflitos
// em 409 com a mensagem literal, validação em 400, sessão sumida em 404.
func respondeErroAgenda(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeErro(w, http.StatusNotFound, "sessão não encontrada")
	case agenda.EhConflito(err):
		writeErro(w, http.StatusConflict, err.Error())
	case errors.Is(err, agenda.ErrValorNegativo), errors.Is(err, agenda.ErrFrequenciaInvalida):
		writeErro(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[api] agenda: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
	}
}

func (h *Handler) ListSessoes(w http.ResponseWriter, r *http.Request) {
	list, err := repo.ListSessoes(r.Context(), h.DB)
	if err != nil {
		log.Printf("[api] listando sessões: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, sessoesJSON(list))
}

func (h *Handler) GetSessao(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	s, err := repo.SessaoByID(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "sessão não encontrada")
		return
	}
	if err != nil {
		log.Printf("[api] buscando sessão %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, sessaoJSON(s))
}

// CreateSessao grava a sessão e, se recorrente, a cadeia futura inteira.
// Qualquer conflito devolve 409 sem gravar nada.
func (h *Handler) CreateSessao(w http.ResponseWriter, r *http.Request) {
	var req sessaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	s, msg := req.paraSessao()
	if msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := repo.ClienteByID(r.Context(), h.DB, s.ClienteID); errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	} else if err != nil {
		log.Printf("[api] buscando cliente %d: %v", s.ClienteID, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	criada, err := agenda.CriarSessao(r.Context(), h.DB, s, h.Cfg.RecorrenciaHorizonteDias)
	if err != nil {
		respondeErroAgenda(w, err)
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusCreated, sessaoJSON(criada))
}

// UpdateSessao grava a sessão e propaga as mudanças para a cadeia futura
// conforme as flags do corpo.
func (h *Handler) UpdateSessao(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req sessaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	s, msg := req.paraSessao()
	if msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	flags := agenda.Flags{
		Frequencias: req.AtualizarFuturasFrequencias,
		DataHorario: req.AtualizarFuturasDataHorario,
		Valores:     req.AtualizarValoresFuturos,
	}
	atualizada, err := agenda.AtualizarSessao(r.Context(), h.DB, id, s, flags)
	if err != nil {
		respondeErroAgenda(w, err)
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusOK, sessaoJSON(atualizada))
}

// DeleteSessao remove a sessão; com ?delete_all=true remove também toda a
// cadeia futura a partir dela.
func (h *Handler) DeleteSessao(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	apagarFuturas := r.URL.Query().Get("delete_all") == "true"
	removidas, err := agenda.ExcluirSessao(r.Context(), h.DB, id, apagarFuturas)
	if err != nil {
		respondeErroAgenda(w, err)
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mensagem":  "sessão removida",
		"removidas": removidas,
	})
}
