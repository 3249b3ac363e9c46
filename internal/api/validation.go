package api

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

var (
	ErrDataInvalida    = errors.New("data inválida, use YYYY-MM-DD")
	ErrHorarioInvalido = errors.New("horário inválido, use HH:MM")
)

var horarioRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// ParseData interpreta "YYYY-MM-DD" como data pura (UTC, meia-noite), a
// mesma forma com que o DATE volta do banco.
func ParseData(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrDataInvalida
	}
	return t, nil
}

// ParseHorario aceita "HH:MM" ou "HH:MM:SS" e devolve "HH:MM:SS".
func ParseHorario(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !horarioRegex.MatchString(s) {
		return "", ErrHorarioInvalido
	}
	if len(s) == 5 {
		return s + ":00", nil
	}
	return s, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// queryMesAno lê ?mes= e ?ano= com o mês e ano atuais como padrão.
func queryMesAno(r *http.Request, agora time.Time) (int, time.Month, error) {
	ano := agora.Year()
	mes := agora.Month()
	if v := r.URL.Query().Get("ano"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2100 {
			return 0, 0, errors.New("ano inválido")
		}
		ano = n
	}
	if v := r.URL.Query().Get("mes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, errors.New("mês inválido")
		}
		mes = time.Month(n)
	}
	return ano, mes, nil
}

// queryMesAnoObrigatorios exige ?mes= e ?ano= na query, sem padrão.
func queryMesAnoObrigatorios(r *http.Request) (int, time.Month, error) {
	q := r.URL.Query()
	if q.Get("mes") == "" || q.Get("ano") == "" {
		return 0, 0, errors.New("mes e ano são obrigatórios")
	}
	return queryMesAno(r, time.Now())
}

// hojeUTC é a data de hoje truncada, comparável com os DATE do banco.
func hojeUTC() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
