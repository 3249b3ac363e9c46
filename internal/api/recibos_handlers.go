package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/finance"
)

func queryClienteMesAno(r *http.Request) (int64, int, time.Month, string) {
	clienteID, err := strconv.ParseInt(r.URL.Query().Get("cliente_id"), 10, 64)
	if err != nil || clienteID <= 0 {
		return 0, 0, 0, "cliente_id é obrigatório"
	}
	ano, mes, err := queryMesAno(r, time.Now())
	if err != nil {
		return 0, 0, 0, err.Error()
	}
	return clienteID, ano, mes, ""
}

// PreviewRecibo resume o que entraria no recibo do cliente no mês:
// quantidade, total e as datas das sessões realizadas e pagas.
func (h *Handler) PreviewRecibo(w http.ResponseWriter, r *http.Request) {
	clienteID, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	ano, mes, err := queryMesAnoObrigatorios(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, err.Error())
		return
	}
	preview, err := finance.PreviewRecibo(r.Context(), h.DB, clienteID, ano, mes)
	if err != nil {
		log.Printf("[api] preview de recibo cliente %d %02d/%d: %v", clienteID, mes, ano, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// Recibo monta o recibo detalhado do mês, agrupado por tipo de atendimento.
func (h *Handler) Recibo(w http.ResponseWriter, r *http.Request) {
	clienteID, ano, mes, msg := queryClienteMesAno(r)
	if msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	recibo, err := finance.MontaRecibo(r.Context(), h.DB, clienteID, ano, mes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] recibo cliente %d %02d/%d: %v", clienteID, mes, ano, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, recibo)
}
