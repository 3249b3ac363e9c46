package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// As chaves e os formatos desta linha são lidos pelo front: cliente,
// telefone, data em DD/MM/YYYY e horario em HH:MM.
func TestProximaSessaoJSON(t *testing.T) {
	telefone := "(11) 99999-0000"
	valor := 150.0
	s := repo.SessaoComCliente{
		ID: 3, ClienteID: 7, ClienteNome: "Ana", ClienteTelefone: &telefone,
		Data:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Horario: "14:00:00", TipoAtendimento: "psicoterapia", Valor: &valor,
	}

	raw, err := json.Marshal(proximaSessaoJSON(&s))
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}

	if body["cliente"] != "Ana" {
		t.Errorf("cliente = %v", body["cliente"])
	}
	if body["telefone"] != telefone {
		t.Errorf("telefone = %v", body["telefone"])
	}
	if body["data"] != "03/03/2025" {
		t.Errorf("data = %v, esperava DD/MM/YYYY", body["data"])
	}
	if body["horario"] != "14:00" {
		t.Errorf("horario = %v, esperava HH:MM", body["horario"])
	}
	if body["tipo_atendimento"] != "psicoterapia" {
		t.Errorf("tipo_atendimento = %v", body["tipo_atendimento"])
	}
}
