package agenda

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// Slot é um par (data, horario) candidato a ocupação na agenda.
type Slot struct {
	Data    time.Time
	Horario string
}

// NormalizaHorario aceita "HH:MM" ou "HH:MM:SS" e devolve sempre "HH:MM:SS",
// a forma gravada no banco.
func NormalizaHorario(h string) string {
	h = strings.TrimSpace(h)
	if len(h) == 5 {
		return h + ":00"
	}
	return h
}

func slotKey(data time.Time, horario string) string {
	return data.Format("2006-01-02") + " " + NormalizaHorario(horario)
}

// SlotDisponivel informa se (data, horario) está livre. excluirID ignora uma
// sessão existente (0 = nenhuma), para a própria linha não contar como
// conflito numa atualização.
func SlotDisponivel(ctx context.Context, db *gorm.DB, data time.Time, horario string, excluirID int64) (bool, error) {
	var excluir []int64
	if excluirID != 0 {
		excluir = []int64{excluirID}
	}
	ocupados, err := repo.ListSlotsNasDatas(ctx, db, []time.Time{data}, excluir)
	if err != nil {
		return false, err
	}
	chave := slotKey(data, horario)
	for _, o := range ocupados {
		if slotKey(o.Data, o.Horario) == chave {
			return false, nil
		}
	}
	return true, nil
}

// verificaConflitos valida um conjunto de slots que será gravado de uma vez:
// contra o que já existe no banco (fora os ids do próprio conjunto) e entre
// si. Devolve o índice do primeiro candidato em conflito, ou -1.
func verificaConflitos(ctx context.Context, db *gorm.DB, candidatos []Slot, excluirIDs []int64) (int, error) {
	if len(candidatos) == 0 {
		return -1, nil
	}
	datas := make([]time.Time, 0, len(candidatos))
	for _, c := range candidatos {
		datas = append(datas, c.Data)
	}
	ocupados, err := repo.ListSlotsNasDatas(ctx, db, datas, excluirIDs)
	if err != nil {
		return -1, err
	}
	banco := make(map[string]struct{}, len(ocupados))
	for _, o := range ocupados {
		banco[slotKey(o.Data, o.Horario)] = struct{}{}
	}
	vistos := make(map[string]int, len(candidatos))
	for i, c := range candidatos {
		chave := slotKey(c.Data, c.Horario)
		if _, ok := banco[chave]; ok {
			return i, nil
		}
		if j, ok := vistos[chave]; ok {
			// Duplicata interna: aponta o candidato mais tardio, que é o
			// que foi reposicionado para cima do outro.
			if i > j {
				return i, nil
			}
			return j, nil
		}
		vistos[chave] = i
	}
	return -1, nil
}
