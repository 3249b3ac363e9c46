package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Cliente struct {
	ID          int64
	Nome        string
	CpfCnpj     string
	Endereco    *string
	Telefone    *string
	Email       *string
	ValorPadrao *float64
	Ativo       bool
	CriadoEm    time.Time
}

func ListClientes(ctx context.Context, db *gorm.DB) ([]Cliente, error) {
	var list []Cliente
	err := db.WithContext(ctx).Raw(`
		SELECT id, nome, cpf_cnpj, endereco, telefone, email, valor_padrao, ativo, criado_em
		FROM clientes
		ORDER BY nome
	`).Scan(&list).Error
	return list, err
}

func ClienteByID(ctx context.Context, db *gorm.DB, id int64) (*Cliente, error) {
	var c Cliente
	err := db.WithContext(ctx).Raw(`
		SELECT id, nome, cpf_cnpj, endereco, telefone, email, valor_padrao, ativo, criado_em
		FROM clientes
		WHERE id = ?
	`, id).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func ClientesByNome(ctx context.Context, db *gorm.DB, nome string) ([]Cliente, error) {
	var list []Cliente
	err := db.WithContext(ctx).Raw(`
		SELECT id, nome, cpf_cnpj, endereco, telefone, email, valor_padrao, ativo, criado_em
		FROM clientes
		WHERE nome ILIKE ?
		ORDER BY nome
	`, "%"+nome+"%").Scan(&list).Error
	return list, err
}

func CreateCliente(ctx context.Context, db *gorm.DB, c *Cliente) (int64, error) {
	var res struct{ ID int64 }
	err := db.WithContext(ctx).Raw(`
		INSERT INTO clientes (nome, cpf_cnpj, endereco, telefone, email, valor_padrao, ativo)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id
	`, c.Nome, c.CpfCnpj, c.Endereco, c.Telefone, c.Email, c.ValorPadrao, c.Ativo).Scan(&res).Error
	return res.ID, err
}

func UpdateCliente(ctx context.Context, db *gorm.DB, c *Cliente) error {
	result := db.WithContext(ctx).Exec(`
		UPDATE clientes
		SET nome = ?, cpf_cnpj = ?, endereco = ?, telefone = ?, email = ?, valor_padrao = ?, ativo = ?
		WHERE id = ?
	`, c.Nome, c.CpfCnpj, c.Endereco, c.Telefone, c.Email, c.ValorPadrao, c.Ativo, c.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCliente remove o cliente. Sessões, históricos e pagamentos ligados
// caem junto via ON DELETE CASCADE.
func DeleteCliente(ctx context.Context, db *gorm.DB, id int64) error {
	result := db.WithContext(ctx).Exec(`DELETE FROM clientes WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
