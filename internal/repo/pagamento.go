package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Pagamento struct {
	ID             int64
	SessaoID       int64
	ValorPago      float64
	FormaPagamento *string
	DataPagamento  time.Time
	Observacoes    *string
}

func ListPagamentos(ctx context.Context, db *gorm.DB) ([]Pagamento, error) {
	var list []Pagamento
	err := db.WithContext(ctx).Raw(`
		SELECT id, sessao_id, valor_pago, forma_pagamento, data_pagamento, observacoes
		FROM pagamentos
		ORDER BY data_pagamento DESC
	`).Scan(&list).Error
	return list, err
}

func PagamentoByID(ctx context.Context, db *gorm.DB, id int64) (*Pagamento, error) {
	var p Pagamento
	err := db.WithContext(ctx).Raw(`
		SELECT id, sessao_id, valor_pago, forma_pagamento, data_pagamento, observacoes
		FROM pagamentos
		WHERE id = ?
	`, id).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func ListPagamentosBySessao(ctx context.Context, db *gorm.DB, sessaoID int64) ([]Pagamento, error) {
	var list []Pagamento
	err := db.WithContext(ctx).Raw(`
		SELECT id, sessao_id, valor_pago, forma_pagamento, data_pagamento, observacoes
		FROM pagamentos
		WHERE sessao_id = ?
		ORDER BY data_pagamento
	`, sessaoID).Scan(&list).Error
	return list, err
}

// ListPagamentosDasSessoes devolve os pagamentos de um conjunto de sessões
// (para o recibo detalhado, que soma o que foi efetivamente pago).
func ListPagamentosDasSessoes(ctx context.Context, db *gorm.DB, sessaoIDs []int64) ([]Pagamento, error) {
	if len(sessaoIDs) == 0 {
		return nil, nil
	}
	var list []Pagamento
	err := db.WithContext(ctx).Raw(`
		SELECT id, sessao_id, valor_pago, forma_pagamento, data_pagamento, observacoes
		FROM pagamentos
		WHERE sessao_id IN ?
		ORDER BY data_pagamento
	`, sessaoIDs).Scan(&list).Error
	return list, err
}

func CreatePagamento(ctx context.Context, db *gorm.DB, p *Pagamento) (int64, error) {
	var res struct{ ID int64 }
	err := db.WithContext(ctx).Raw(`
		INSERT INTO pagamentos (sessao_id, valor_pago, forma_pagamento, observacoes)
		VALUES (?, ?, ?, ?) RETURNING id
	`, p.SessaoID, p.ValorPago, p.FormaPagamento, p.Observacoes).Scan(&res).Error
	return res.ID, err
}

func UpdatePagamento(ctx context.Context, db *gorm.DB, p *Pagamento) error {
	result := db.WithContext(ctx).Exec(`
		UPDATE pagamentos SET valor_pago = ?, forma_pagamento = ?, observacoes = ? WHERE id = ?
	`, p.ValorPago, p.FormaPagamento, p.Observacoes, p.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func DeletePagamento(ctx context.Context, db *gorm.DB, id int64) error {
	result := db.WithContext(ctx).Exec(`DELETE FROM pagamentos WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
