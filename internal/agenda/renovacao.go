package agenda

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

// Quantos passos além da última ocorrência cada renovação tenta gerar.
const passosRenovacao = 4

// RenovarSessoes estende as cadeias recorrentes: para cada cadeia, parte da
// ocorrência mais tardia e gera até 4 passos adiante, pulando datas que já
// passaram e slots ocupados (a dona pode ter encaixado outra coisa ali).
// Devolve quantas sessões foram criadas.
func RenovarSessoes(ctx context.Context, db *gorm.DB, hoje time.Time) (int, error) {
	criadas := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		ultimas, err := repo.UltimasSessoesPorCadeia(ctx, tx)
		if err != nil {
			return err
		}
		for _, ultima := range ultimas {
			if !Recorrente(ultima.Frequencia) {
				continue
			}
			for _, data := range ExpandN(ultima.Data, ultima.Frequencia, passosRenovacao) {
				if !data.After(hoje) {
					continue
				}
				livre, err := SlotDisponivel(ctx, tx, data, ultima.Horario, 0)
				if err != nil {
					return err
				}
				if !livre {
					log.Printf("[renovacao] slot %s %s ocupado, pulando", data.Format("2006-01-02"), repo.TimeStringToHHMM(ultima.Horario))
					continue
				}
				nova := repo.Sessao{
					ClienteID:       ultima.ClienteID,
					Data:            data,
					Horario:         ultima.Horario,
					TipoAtendimento: ultima.TipoAtendimento,
					Frequencia:      ultima.Frequencia,
					Valor:           ultima.Valor,
					RepeticaoID:     ultima.RepeticaoID,
				}
				if _, err := repo.CreateSessao(ctx, tx, &nova); err != nil {
					return err
				}
				criadas++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return criadas, nil
}
