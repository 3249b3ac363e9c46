package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlotOcupado indica violação do índice único (data, horario) em sessoes.
// É o backstop do motor de conflitos: escritas concorrentes que passam pela
// checagem em memória ainda falham aqui.
var ErrSlotOcupado = errors.New("slot ocupado")

const pgUniqueViolation = "23505"

func mapSlotUnique(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrSlotOcupado
	}
	return err
}
