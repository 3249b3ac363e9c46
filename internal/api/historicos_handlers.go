package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

type historicoRequest struct {
	ClienteID int64  `json:"cliente_id"`
	Data      string `json:"data"`
	Tipo      string `json:"tipo"`
	Conteudo  string `json:"conteudo"`
}

type historicoResp struct {
	ID        int64  `json:"id"`
	ClienteID int64  `json:"cliente_id"`
	Data      string `json:"data"`
	Tipo      string `json:"tipo"`
	Conteudo  string `json:"conteudo"`
}

func historicoJSON(h *repo.Historico) historicoResp {
	return historicoResp{
		ID: h.ID, ClienteID: h.ClienteID, Data: h.Data.Format("2006-01-02"),
		Tipo: h.Tipo, Conteudo: h.Conteudo,
	}
}

func (req *historicoRequest) valida() (*repo.Historico, string) {
	req.Tipo = strings.TrimSpace(req.Tipo)
	req.Conteudo = strings.TrimSpace(req.Conteudo)
	if req.ClienteID <= 0 {
		return nil, "cliente_id é obrigatório"
	}
	if req.Tipo != "sessao" && req.Tipo != "supervisao" {
		return nil, "tipo deve ser sessao ou supervisao"
	}
	if req.Conteudo == "" {
		return nil, "conteudo é obrigatório"
	}
	data, err := ParseData(req.Data)
	if err != nil {
		return nil, err.Error()
	}
	return &repo.Historico{ClienteID: req.ClienteID, Data: data, Tipo: req.Tipo, Conteudo: req.Conteudo}, ""
}

func (h *Handler) ListHistoricos(w http.ResponseWriter, r *http.Request) {
	list, err := repo.ListHistoricos(r.Context(), h.DB)
	if err != nil {
		log.Printf("[api] listando históricos: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := make([]historicoResp, len(list))
	for i := range list {
		out[i] = historicoJSON(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) ListHistoricosDoCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	list, err := repo.ListHistoricosByCliente(r.Context(), h.DB, id)
	if err != nil {
		log.Printf("[api] listando históricos do cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := make([]historicoResp, len(list))
	for i := range list {
		out[i] = historicoJSON(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateHistorico(w http.ResponseWriter, r *http.Request) {
	var req historicoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	novo, msg := req.valida()
	if msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := repo.ClienteByID(r.Context(), h.DB, novo.ClienteID); errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	} else if err != nil {
		log.Printf("[api] buscando cliente %d: %v", novo.ClienteID, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	id, err := repo.CreateHistorico(r.Context(), h.DB, novo)
	if err != nil {
		log.Printf("[api] criando histórico: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	novo.ID = id
	writeJSON(w, http.StatusCreated, historicoJSON(novo))
}

func (h *Handler) UpdateHistorico(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req historicoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	atual, err := repo.HistoricoByID(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "histórico não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] buscando histórico %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	if req.ClienteID == 0 {
		req.ClienteID = atual.ClienteID
	}
	novo, msg := req.valida()
	if msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	novo.ID = id
	novo.ClienteID = atual.ClienteID
	if err := repo.UpdateHistorico(r.Context(), h.DB, novo); err != nil {
		log.Printf("[api] atualizando histórico %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, historicoJSON(novo))
}

func (h *Handler) DeleteHistorico(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	err = repo.DeleteHistorico(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "histórico não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] removendo histórico %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "histórico removido"})
}
