package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// SessaoComCliente é a linha dos painéis do dashboard: a sessão já com o
// nome e o telefone do cliente, para não fazer N consultas.
type SessaoComCliente struct {
	ID              int64
	ClienteID       int64
	ClienteNome     string
	ClienteTelefone *string
	Data            time.Time
	Horario         string
	TipoAtendimento string
	FoiRealizada    bool
	FoiPaga         bool
	Valor           *float64
}

func ListSessoesComClienteEntre(ctx context.Context, db *gorm.DB, from, to time.Time) ([]SessaoComCliente, error) {
	var list []SessaoComCliente
	err := db.WithContext(ctx).Raw(`
		SELECT s.id, s.cliente_id, c.nome AS cliente_nome, c.telefone AS cliente_telefone,
			s.data, s.horario::text AS horario, s.tipo_atendimento,
			s.foi_realizada, s.foi_paga, s.valor
		FROM sessoes s
		JOIN clientes c ON c.id = s.cliente_id
		WHERE s.data >= ? AND s.data <= ?
		ORDER BY s.data, s.horario
	`, from, to).Scan(&list).Error
	return list, err
}
