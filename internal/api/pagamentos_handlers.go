package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

type pagamentoRequest struct {
	SessaoID       int64   `json:"sessao_id"`
	ValorPago      float64 `json:"valor_pago"`
	FormaPagamento *string `json:"forma_pagamento"`
	Observacoes    *string `json:"observacoes"`
}

type pagamentoResp struct {
	ID             int64     `json:"id"`
	SessaoID       int64     `json:"sessao_id"`
	ValorPago      float64   `json:"valor_pago"`
	FormaPagamento *string   `json:"forma_pagamento"`
	DataPagamento  time.Time `json:"data_pagamento"`
	Observacoes    *string   `json:"observacoes"`
}

func pagamentoJSON(p *repo.Pagamento) pagamentoResp {
	return pagamentoResp{
		ID: p.ID, SessaoID: p.SessaoID, ValorPago: p.ValorPago,
		FormaPagamento: p.FormaPagamento, DataPagamento: p.DataPagamento,
		Observacoes: p.Observacoes,
	}
}

func (h *Handler) ListPagamentos(w http.ResponseWriter, r *http.Request) {
	list, err := repo.ListPagamentos(r.Context(), h.DB)
	if err != nil {
		log.Printf("[api] listando pagamentos: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := make([]pagamentoResp, len(list))
	for i := range list {
		out[i] = pagamentoJSON(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetPagamento(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	p, err := repo.PagamentoByID(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "pagamento não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] buscando pagamento %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, pagamentoJSON(p))
}

func (h *Handler) UpdatePagamento(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req pagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	if req.ValorPago < 0 {
		writeErro(w, http.StatusBadRequest, "valor_pago não pode ser negativo")
		return
	}
	atual, err := repo.PagamentoByID(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "pagamento não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] buscando pagamento %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	atual.ValorPago = req.ValorPago
	atual.FormaPagamento = req.FormaPagamento
	atual.Observacoes = req.Observacoes
	if err := repo.UpdatePagamento(r.Context(), h.DB, atual); err != nil {
		log.Printf("[api] atualizando pagamento %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusOK, pagamentoJSON(atual))
}

func (h *Handler) ListPagamentosDaSessao(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	list, err := repo.ListPagamentosBySessao(r.Context(), h.DB, id)
	if err != nil {
		log.Printf("[api] listando pagamentos da sessão %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := make([]pagamentoResp, len(list))
	for i := range list {
		out[i] = pagamentoJSON(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// CreatePagamento lança um pagamento e marca a sessão como paga.
func (h *Handler) CreatePagamento(w http.ResponseWriter, r *http.Request) {
	var req pagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	if req.SessaoID <= 0 {
		writeErro(w, http.StatusBadRequest, "sessao_id é obrigatório")
		return
	}
	if req.ValorPago < 0 {
		writeErro(w, http.StatusBadRequest, "valor_pago não pode ser negativo")
		return
	}
	p := repo.Pagamento{
		SessaoID: req.SessaoID, ValorPago: req.ValorPago,
		FormaPagamento: req.FormaPagamento, Observacoes: req.Observacoes,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sessao, err := repo.SessaoByIDForUpdate(r.Context(), tx, req.SessaoID)
		if err != nil {
			return err
		}
		id, err := repo.CreatePagamento(r.Context(), tx, &p)
		if err != nil {
			return err
		}
		p.ID = id
		if !sessao.FoiPaga {
			sessao.FoiPaga = true
			if err := repo.UpdateSessao(r.Context(), tx, sessao); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "sessão não encontrada")
		return
	}
	if err != nil {
		log.Printf("[api] criando pagamento: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	p.DataPagamento = time.Now()
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusCreated, pagamentoJSON(&p))
}

func (h *Handler) DeletePagamento(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	err = repo.DeletePagamento(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "pagamento não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] removendo pagamento %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "pagamento removido"})
}
