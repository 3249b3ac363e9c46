package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseData(t *testing.T) {
	d, err := ParseData("2025-03-03")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 3 {
		t.Fatalf("data errada: %v", d)
	}
	if d.Location() != time.UTC {
		t.Fatalf("data deveria ser UTC, veio %v", d.Location())
	}

	for _, s := range []string{"", "03/03/2025", "2025-13-01", "2025-02-30", "amanhã"} {
		if _, err := ParseData(s); err == nil {
			t.Errorf("ParseData(%q) deveria falhar", s)
		}
	}
}

func TestParseHorario(t *testing.T) {
	casos := map[string]string{
		"14:00":    "14:00:00",
		"14:00:30": "14:00:30",
		"00:00":    "00:00:00",
		"23:59":    "23:59:00",
		" 09:15 ":  "09:15:00",
	}
	for in, want := range casos {
		got, err := ParseHorario(in)
		if err != nil {
			t.Errorf("ParseHorario(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseHorario(%q) = %q, esperava %q", in, got, want)
		}
	}
	for _, s := range []string{"", "24:00", "14:60", "9:00", "14h00", "14:00:60"} {
		if _, err := ParseHorario(s); err == nil {
			t.Errorf("ParseHorario(%q) deveria falhar", s)
		}
	}
}

func TestQueryMesAno(t *testing.T) {
	agora := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

	r := httptest.NewRequest("GET", "/dashboard/resumo-financeiro", nil)
	ano, mes, err := queryMesAno(r, agora)
	if err != nil || ano != 2025 || mes != time.March {
		t.Fatalf("padrão = %d/%d (%v), esperava 2025/3", ano, mes, err)
	}

	r = httptest.NewRequest("GET", "/dashboard/resumo-financeiro?mes=1&ano=2024", nil)
	ano, mes, err = queryMesAno(r, agora)
	if err != nil || ano != 2024 || mes != time.January {
		t.Fatalf("explicito = %d/%d (%v), esperava 2024/1", ano, mes, err)
	}

	for _, q := range []string{"?mes=0", "?mes=13", "?mes=abc", "?ano=1999", "?ano=x"} {
		r = httptest.NewRequest("GET", "/dashboard/resumo-financeiro"+q, nil)
		if _, _, err := queryMesAno(r, agora); err == nil {
			t.Errorf("queryMesAno(%q) deveria falhar", q)
		}
	}
}

func TestQueryMesAnoObrigatorios(t *testing.T) {
	r := httptest.NewRequest("GET", "/recibos/preview/1?mes=2&ano=2025", nil)
	ano, mes, err := queryMesAnoObrigatorios(r)
	if err != nil || ano != 2025 || mes != time.February {
		t.Fatalf("= %d/%d (%v), esperava 2025/2", ano, mes, err)
	}

	for _, q := range []string{"", "?mes=2", "?ano=2025", "?mes=13&ano=2025"} {
		r = httptest.NewRequest("GET", "/recibos/preview/1"+q, nil)
		if _, _, err := queryMesAnoObrigatorios(r); err == nil {
			t.Errorf("queryMesAnoObrigatorios(%q) deveria falhar", q)
		}
	}
}

func TestProximoDiaUtil(t *testing.T) {
	sexta := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	if got := proximoDiaUtil(sexta); got.Weekday() != time.Monday || got.Day() != 24 {
		t.Fatalf("sexta -> %s %s", got.Weekday(), got.Format("2006-01-02"))
	}
	quinta := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	if got := proximoDiaUtil(quinta); got.Weekday() != time.Friday || got.Day() != 21 {
		t.Fatalf("quinta -> %s %s", got.Weekday(), got.Format("2006-01-02"))
	}
}
