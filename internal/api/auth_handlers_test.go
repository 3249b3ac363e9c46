package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/config"
)

func handlerTeste() *Handler {
	return &Handler{
		Cfg: &config.Config{
			JWTSecret:   []byte("segredo-de-teste-com-32-bytes!!!"),
			AppUsername: "mariana",
			AppPassword: "senha123",
		},
	}
}

func TestLoginOk(t *testing.T) {
	h := handlerTeste()
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"usuario":"mariana","senha":"senha123"}`))
	w := httptest.NewRecorder()
	h.Login(w, r)
	if w.Code != 200 {
		t.Fatalf("status = %d, corpo %s", w.Code, w.Body.String())
	}
	var resp TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("tokens vazios")
	}
}

func TestLoginSenhaErrada(t *testing.T) {
	h := handlerTeste()
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"usuario":"mariana","senha":"errada"}`))
	w := httptest.NewRecorder()
	h.Login(w, r)
	if w.Code != 401 {
		t.Fatalf("status = %d, esperava 401", w.Code)
	}
}

func TestRefreshComAccessTokenFalha(t *testing.T) {
	h := handlerTeste()

	// login para pegar os tokens
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"usuario":"mariana","senha":"senha123"}`))
	w := httptest.NewRecorder()
	h.Login(w, r)
	var tokens TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tokens); err != nil {
		t.Fatal(err)
	}

	// access token no lugar do refresh é rejeitado
	r = httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(`{"refresh_token":"`+tokens.AccessToken+`"}`))
	w = httptest.NewRecorder()
	h.Refresh(w, r)
	if w.Code != 401 {
		t.Fatalf("status = %d, esperava 401", w.Code)
	}

	// o refresh de verdade passa
	r = httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(`{"refresh_token":"`+tokens.RefreshToken+`"}`))
	w = httptest.NewRecorder()
	h.Refresh(w, r)
	if w.Code != 200 {
		t.Fatalf("status = %d, corpo %s", w.Code, w.Body.String())
	}
}
