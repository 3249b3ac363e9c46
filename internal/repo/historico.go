package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Historico é uma anotação de prontuário do cliente, tipo "sessao" ou
// "supervisao". Não referencia sessões — é uma linha do tempo própria.
type Historico struct {
	ID        int64
	ClienteID int64
	Data      time.Time
	Tipo      string
	Conteudo  string
}

func ListHistoricos(ctx context.Context, db *gorm.DB) ([]Historico, error) {
	var list []Historico
	err := db.WithContext(ctx).Raw(`
		SELECT id, cliente_id, data, tipo, conteudo
		FROM historicos
		ORDER BY data DESC, id DESC
	`).Scan(&list).Error
	return list, err
}

func HistoricoByID(ctx context.Context, db *gorm.DB, id int64) (*Historico, error) {
	var h Historico
	err := db.WithContext(ctx).Raw(`
		SELECT id, cliente_id, data, tipo, conteudo FROM historicos WHERE id = ?
	`, id).Scan(&h).Error
	if err != nil {
		return nil, err
	}
	if h.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &h, nil
}

func ListHistoricosByCliente(ctx context.Context, db *gorm.DB, clienteID int64) ([]Historico, error) {
	var list []Historico
	err := db.WithContext(ctx).Raw(`
		SELECT id, cliente_id, data, tipo, conteudo
		FROM historicos
		WHERE cliente_id = ?
		ORDER BY data DESC, id DESC
	`, clienteID).Scan(&list).Error
	return list, err
}

func CreateHistorico(ctx context.Context, db *gorm.DB, h *Historico) (int64, error) {
	var res struct{ ID int64 }
	err := db.WithContext(ctx).Raw(`
		INSERT INTO historicos (cliente_id, data, tipo, conteudo)
		VALUES (?, ?, ?, ?) RETURNING id
	`, h.ClienteID, h.Data, h.Tipo, h.Conteudo).Scan(&res).Error
	return res.ID, err
}

func UpdateHistorico(ctx context.Context, db *gorm.DB, h *Historico) error {
	result := db.WithContext(ctx).Exec(`
		UPDATE historicos SET data = ?, tipo = ?, conteudo = ? WHERE id = ?
	`, h.Data, h.Tipo, h.Conteudo, h.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func DeleteHistorico(ctx context.Context, db *gorm.DB, id int64) error {
	result := db.WithContext(ctx).Exec(`DELETE FROM historicos WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
