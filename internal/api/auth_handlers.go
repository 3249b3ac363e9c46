package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/auth"
)

type LoginRequest struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// credenciaisValidas confere usuário e senha contra o usuário único do
// ambiente. Com APP_PASSWORD_HASH presente compara via bcrypt; senão cai
// na comparação direta com APP_PASSWORD (ambiente de desenvolvimento).
func (h *Handler) credenciaisValidas(usuario, senha string) bool {
	if usuario != h.Cfg.AppUsername {
		return false
	}
	if h.Cfg.AppPasswordHash != "" {
		return auth.CheckPassword(h.Cfg.AppPasswordHash, senha)
	}
	return h.Cfg.AppPassword != "" && senha == h.Cfg.AppPassword
}

func (h *Handler) emiteTokens(usuario string) (*TokenResponse, error) {
	access, err := auth.BuildJWT(h.Cfg.JWTSecret, usuario, auth.TokenAccess, auth.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.BuildJWT(h.Cfg.JWTSecret, usuario, auth.TokenRefresh, auth.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(auth.AccessTokenTTL),
	}, nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	req.Usuario = strings.TrimSpace(req.Usuario)
	if !h.credenciaisValidas(req.Usuario, req.Senha) {
		writeErro(w, http.StatusUnauthorized, "usuário ou senha incorretos")
		return
	}
	tokens, err := h.emiteTokens(req.Usuario)
	if err != nil {
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErro(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	claims, err := auth.ParseJWT(h.Cfg.JWTSecret, req.RefreshToken)
	if err != nil || claims.TokenType != auth.TokenRefresh {
		writeErro(w, http.StatusUnauthorized, "token inválido")
		return
	}
	tokens, err := h.emiteTokens(claims.Username)
	if err != nil {
		writeErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
