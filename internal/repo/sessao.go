package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sessao é uma ocorrência concreta na agenda. RepeticaoID liga as
// ocorrências geradas por um mesmo agendamento recorrente (a cadeia);
// sessões avulsas têm RepeticaoID nulo.
// Horario é string ("HH:MM:SS"); o driver devolve TIME do Postgres como string.
type Sessao struct {
	ID              int64
	ClienteID       int64
	Data            time.Time
	Horario         string
	TipoAtendimento string
	Frequencia      string
	FoiRealizada    bool
	FoiPaga         bool
	Valor           *float64
	Observacoes     *string
	RepeticaoID     *uuid.UUID
	CriadoEm        time.Time
}

// TimeStringToHHMM devolve "HH:MM" de um TIME do banco ("HH:MM:SS" ou "HH:MM").
func TimeStringToHHMM(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

const sessaoCols = `id, cliente_id, data, horario::text AS horario, tipo_atendimento, frequencia,
	foi_realizada, foi_paga, valor, observacoes, repeticao_id, criado_em`

func ListSessoes(ctx context.Context, db *gorm.DB) ([]Sessao, error) {
	var list []Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT ` + sessaoCols + `
		FROM sessoes
		ORDER BY data, horario
	`).Scan(&list).Error
	return list, err
}

func SessaoByID(ctx context.Context, db *gorm.DB, id int64) (*Sessao, error) {
	var s Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT `+sessaoCols+`
		FROM sessoes
		WHERE id = ?
	`, id).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

// SessaoByIDForUpdate carrega a sessão travando a linha (FOR UPDATE).
// Usada dentro da transação de cascata para serializar escritores.
func SessaoByIDForUpdate(ctx context.Context, db *gorm.DB, id int64) (*Sessao, error) {
	var s Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT `+sessaoCols+`
		FROM sessoes
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func ListSessoesByCliente(ctx context.Context, db *gorm.DB, clienteID int64) ([]Sessao, error) {
	var list []Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT `+sessaoCols+`
		FROM sessoes
		WHERE cliente_id = ?
		ORDER BY data, horario
	`, clienteID).Scan(&list).Error
	return list, err
}

// ListSessoesFuturasDaCadeia devolve as irmãs futuras da cadeia
// (data >= from, excluindo a própria sessão), travadas FOR UPDATE,
// em ordem cronológica.
func ListSessoesFuturasDaCadeia(ctx context.Context, db *gorm.DB, repeticaoID uuid.UUID, from time.Time, excluirID int64) ([]Sessao, error) {
	var list []Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT `+sessaoCols+`
		FROM sessoes
		WHERE repeticao_id = ? AND data >= ? AND id <> ?
		ORDER BY data, horario
		FOR UPDATE
	`, repeticaoID, from, excluirID).Scan(&list).Error
	return list, err
}

// UltimaSessaoDaCadeia devolve a ocorrência mais tardia de cada cadeia.
// Usada pela renovação para saber de onde continuar gerando.
func UltimasSessoesPorCadeia(ctx context.Context, db *gorm.DB) ([]Sessao, error) {
	var list []Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (repeticao_id) ` + sessaoCols + `
		FROM sessoes
		WHERE repeticao_id IS NOT NULL
		ORDER BY repeticao_id, data DESC, horario DESC
	`).Scan(&list).Error
	return list, err
}

// SlotOcupado é uma linha mínima para checagem de conflito.
type SlotOcupado struct {
	ID      int64
	Data    time.Time
	Horario string
}

// ListSlotsNasDatas devolve os slots já cadastrados em qualquer das datas,
// excluindo os ids informados (os membros do próprio conjunto em validação).
func ListSlotsNasDatas(ctx context.Context, db *gorm.DB, datas []time.Time, excluirIDs []int64) ([]SlotOcupado, error) {
	if len(datas) == 0 {
		return nil, nil
	}
	q := `SELECT id, data, horario::text AS horario FROM sessoes WHERE data IN ?`
	args := []interface{}{datas}
	if len(excluirIDs) > 0 {
		q += ` AND id NOT IN ?`
		args = append(args, excluirIDs)
	}
	var list []SlotOcupado
	err := db.WithContext(ctx).Raw(q, args...).Scan(&list).Error
	return list, err
}

// ListSessoesDoClienteEntre devolve as sessões do cliente no período
// (inclusivo nas duas pontas). Base dos recibos.
func ListSessoesDoClienteEntre(ctx context.Context, db *gorm.DB, clienteID int64, from, to time.Time) ([]Sessao, error) {
	var list []Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT `+sessaoCols+`
		FROM sessoes
		WHERE cliente_id = ? AND data >= ? AND data <= ?
		ORDER BY data, horario
	`, clienteID, from, to).Scan(&list).Error
	return list, err
}

// CountSessoesNaoRealizadasAntes conta as sessões passadas ainda não
// marcadas como realizadas, sem recorte de período.
func CountSessoesNaoRealizadasAntes(ctx context.Context, db *gorm.DB, hoje time.Time) (int64, error) {
	var res struct{ N int64 }
	err := db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS n FROM sessoes WHERE data < ? AND NOT foi_realizada
	`, hoje).Scan(&res).Error
	return res.N, err
}

func ListSessoesEntre(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Sessao, error) {
	var list []Sessao
	err := db.WithContext(ctx).Raw(`
		SELECT `+sessaoCols+`
		FROM sessoes
		WHERE data >= ? AND data <= ?
		ORDER BY data, horario
	`, from, to).Scan(&list).Error
	return list, err
}

func CreateSessao(ctx context.Context, db *gorm.DB, s *Sessao) (int64, error) {
	var res struct{ ID int64 }
	err := db.WithContext(ctx).Raw(`
		INSERT INTO sessoes (cliente_id, data, horario, tipo_atendimento, frequencia,
			foi_realizada, foi_paga, valor, observacoes, repeticao_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id
	`, s.ClienteID, s.Data, s.Horario, s.TipoAtendimento, s.Frequencia,
		s.FoiRealizada, s.FoiPaga, s.Valor, s.Observacoes, s.RepeticaoID).Scan(&res).Error
	if err != nil {
		return 0, mapSlotUnique(err)
	}
	return res.ID, nil
}

func UpdateSessao(ctx context.Context, db *gorm.DB, s *Sessao) error {
	result := db.WithContext(ctx).Exec(`
		UPDATE sessoes
		SET cliente_id = ?, data = ?, horario = ?, tipo_atendimento = ?, frequencia = ?,
			foi_realizada = ?, foi_paga = ?, valor = ?, observacoes = ?
		WHERE id = ?
	`, s.ClienteID, s.Data, s.Horario, s.TipoAtendimento, s.Frequencia,
		s.FoiRealizada, s.FoiPaga, s.Valor, s.Observacoes, s.ID)
	if result.Error != nil {
		return mapSlotUnique(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSessaoAgenda grava apenas os campos propagáveis de uma irmã da
// cadeia (data, horario, frequencia, valor).
func UpdateSessaoAgenda(ctx context.Context, db *gorm.DB, s *Sessao) error {
	result := db.WithContext(ctx).Exec(`
		UPDATE sessoes
		SET data = ?, horario = ?, frequencia = ?, valor = ?
		WHERE id = ?
	`, s.Data, s.Horario, s.Frequencia, s.Valor, s.ID)
	if result.Error != nil {
		return mapSlotUnique(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func DeleteSessao(ctx context.Context, db *gorm.DB, id int64) error {
	result := db.WithContext(ctx).Exec(`DELETE FROM sessoes WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSessoesDaCadeiaAPartirDe remove todas as ocorrências da cadeia com
// data >= from (inclui a própria sessão alvo). Devolve quantas caíram.
func DeleteSessoesDaCadeiaAPartirDe(ctx context.Context, db *gorm.DB, repeticaoID uuid.UUID, from time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(`
		DELETE FROM sessoes WHERE repeticao_id = ? AND data >= ?
	`, repeticaoID, from)
	return result.RowsAffected, result.Error
}
