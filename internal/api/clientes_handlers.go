package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

type clienteRequest struct {
	Nome        string   `json:"nome"`
	CpfCnpj     string   `json:"cpf_cnpj"`
	Endereco    *string  `json:"endereco"`
	Telefone    *string  `json:"telefone"`
	Email       *string  `json:"email"`
	ValorPadrao *float64 `json:"valor_padrao"`
	Ativo       *bool    `json:"ativo"`
}

func (req *clienteRequest) valida() string {
	req.Nome = strings.TrimSpace(req.Nome)
	req.CpfCnpj = strings.TrimSpace(req.CpfCnpj)
	if req.Nome == "" {
		return "nome é obrigatório"
	}
	if req.CpfCnpj == "" {
		return "cpf_cnpj é obrigatório"
	}
	if req.ValorPadrao != nil && *req.ValorPadrao < 0 {
		return "valor_padrao não pode ser negativo"
	}
	return ""
}

func (h *Handler) ListClientes(w http.ResponseWriter, r *http.Request) {
	list, err := repo.ListClientes(r.Context(), h.DB)
	if err != nil {
		log.Printf("[api] listando clientes: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := make([]clienteResp, len(list))
	for i := range list {
		out[i] = clienteJSON(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// ClientesPorNome busca por nome parcial, sem diferenciar maiúsculas.
func (h *Handler) ClientesPorNome(w http.ResponseWriter, r *http.Request) {
	nome := strings.TrimSpace(mux.Vars(r)["nome"])
	if nome == "" {
		writeErro(w, http.StatusBadRequest, "nome é obrigatório")
		return
	}
	list, err := repo.ClientesByNome(r.Context(), h.DB, nome)
	if err != nil {
		log.Printf("[api] buscando clientes por nome: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	out := make([]clienteResp, len(list))
	for i := range list {
		out[i] = clienteJSON(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	c, err := repo.ClienteByID(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] buscando cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, clienteJSON(c))
}

func (h *Handler) CreateCliente(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	if msg := req.valida(); msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	c := repo.Cliente{
		Nome: req.Nome, CpfCnpj: req.CpfCnpj, Endereco: req.Endereco,
		Telefone: req.Telefone, Email: req.Email, ValorPadrao: req.ValorPadrao,
		Ativo: true,
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	id, err := repo.CreateCliente(r.Context(), h.DB, &c)
	if err != nil {
		log.Printf("[api] criando cliente: %v", err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	c.ID = id
	writeJSON(w, http.StatusCreated, clienteJSON(&c))
}

func (h *Handler) UpdateCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	if msg := req.valida(); msg != "" {
		writeErro(w, http.StatusBadRequest, msg)
		return
	}
	atual, err := repo.ClienteByID(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] buscando cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	c := repo.Cliente{
		ID: id, Nome: req.Nome, CpfCnpj: req.CpfCnpj, Endereco: req.Endereco,
		Telefone: req.Telefone, Email: req.Email, ValorPadrao: req.ValorPadrao,
		Ativo: atual.Ativo,
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := repo.UpdateCliente(r.Context(), h.DB, &c); err != nil {
		log.Printf("[api] atualizando cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusOK, clienteJSON(&c))
}

// DeleteCliente remove o cliente e, via cascata do banco, todas as suas
// sessões, históricos e pagamentos.
func (h *Handler) DeleteCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	err = repo.DeleteCliente(r.Context(), h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	}
	if err != nil {
		log.Printf("[api] removendo cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	h.Cache.DeletePrefix("dashboard:")
	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "cliente removido"})
}

// ListSessoesDoCliente devolve todas as sessões do cliente, em ordem
// cronológica.
func (h *Handler) ListSessoesDoCliente(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := repo.ClienteByID(r.Context(), h.DB, id); errors.Is(err, gorm.ErrRecordNotFound) {
		writeErro(w, http.StatusNotFound, "cliente não encontrado")
		return
	} else if err != nil {
		log.Printf("[api] buscando cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	list, err := repo.ListSessoesByCliente(r.Context(), h.DB, id)
	if err != nil {
		log.Printf("[api] listando sessões do cliente %d: %v", id, err)
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, sessoesJSON(list))
}
