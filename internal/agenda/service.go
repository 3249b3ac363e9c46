package agenda

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/repo"
)

func validaSessao(s *repo.Sessao) error {
	if !FrequenciaValida(s.Frequencia) {
		return ErrFrequenciaInvalida
	}
	if s.Valor != nil && *s.Valor < 0 {
		return ErrValorNegativo
	}
	return nil
}

// CriarSessao grava a sessão e, se a frequência for recorrente, a cadeia de
// ocorrências futuras até o horizonte (em dias). Tudo ou nada: qualquer
// conflito em qualquer ocorrência aborta a transação sem gravar nada.
// Devolve a sessão âncora com o id preenchido.
func CriarSessao(ctx context.Context, db *gorm.DB, s *repo.Sessao, horizonteDias int) (*repo.Sessao, error) {
	if err := validaSessao(s); err != nil {
		return nil, err
	}
	s.Horario = NormalizaHorario(s.Horario)

	var futuras []time.Time
	if Recorrente(s.Frequencia) {
		rep := uuid.New()
		s.RepeticaoID = &rep
		limite := s.Data.AddDate(0, 0, horizonteDias)
		futuras = Expand(s.Data, s.Frequencia, limite)
	} else {
		s.RepeticaoID = nil
	}

	candidatos := make([]Slot, 0, 1+len(futuras))
	candidatos = append(candidatos, Slot{Data: s.Data, Horario: s.Horario})
	for _, d := range futuras {
		candidatos = append(candidatos, Slot{Data: d, Horario: s.Horario})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		idx, err := verificaConflitos(ctx, tx, candidatos, nil)
		if err != nil {
			return err
		}
		if idx == 0 {
			return ErrConflitoHorario
		}
		if idx > 0 {
			return ErrConflitoFrequenciaFutura
		}

		id, err := repo.CreateSessao(ctx, tx, s)
		if err != nil {
			return mapSlotErr(err, ErrConflitoHorario)
		}
		s.ID = id

		for _, d := range futuras {
			irma := repo.Sessao{
				ClienteID:       s.ClienteID,
				Data:            d,
				Horario:         s.Horario,
				TipoAtendimento: s.TipoAtendimento,
				Frequencia:      s.Frequencia,
				Valor:           s.Valor,
				RepeticaoID:     s.RepeticaoID,
			}
			if _, err := repo.CreateSessao(ctx, tx, &irma); err != nil {
				return mapSlotErr(err, ErrConflitoFrequenciaFutura)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// AtualizarSessao grava a sessão alvo e propaga as mudanças para as irmãs
// futuras conforme as flags, tudo numa transação com as linhas travadas.
// O conjunto inteiro (alvo + cadeia futura) é validado contra a agenda antes
// de qualquer escrita; o erro devolvido aponta a mudança que causou o
// conflito.
func AtualizarSessao(ctx context.Context, db *gorm.DB, id int64, novo *repo.Sessao, flags Flags) (*repo.Sessao, error) {
	if err := validaSessao(novo); err != nil {
		return nil, err
	}
	novo.Horario = NormalizaHorario(novo.Horario)

	var final *repo.Sessao
	err := db.Transaction(func(tx *gorm.DB) error {
		atual, err := repo.SessaoByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		var futuras []repo.Sessao
		if atual.RepeticaoID != nil && (flags.Frequencias || flags.DataHorario || flags.Valores) {
			futuras, err = repo.ListSessoesFuturasDaCadeia(ctx, tx, *atual.RepeticaoID, atual.Data, atual.ID)
			if err != nil {
				return err
			}
		}

		plano, causas := planejaCascata(atual, novo, futuras, flags)

		// Valida o estado final da cadeia inteira de uma vez. Irmãs não
		// reposicionadas também entram: o alvo (ou outra irmã) pode ter
		// sido movido para cima do slot de uma delas.
		candidatos := make([]Slot, 0, 1+len(plano))
		candidatos = append(candidatos, Slot{Data: novo.Data, Horario: novo.Horario})
		excluir := make([]int64, 0, 1+len(plano))
		excluir = append(excluir, atual.ID)
		for _, p := range plano {
			candidatos = append(candidatos, Slot{Data: p.Data, Horario: p.Horario})
			excluir = append(excluir, p.ID)
		}
		idx, err := verificaConflitos(ctx, tx, candidatos, excluir)
		if err != nil {
			return err
		}
		if idx == 0 {
			return ErrConflitoHorario
		}
		if idx > 0 {
			return erroDaCausa(causas[idx-1], atual, novo, flags)
		}

		if len(plano) > 0 {
			// Reposicionar a cadeia troca slots entre as próprias linhas;
			// a unicidade só precisa valer no commit.
			if err := tx.Exec(`SET CONSTRAINTS uq_sessoes_data_horario DEFERRED`).Error; err != nil {
				return err
			}
		}

		novo.ID = atual.ID
		novo.RepeticaoID = atual.RepeticaoID
		if err := repo.UpdateSessao(ctx, tx, novo); err != nil {
			return mapSlotErr(err, ErrConflitoHorario)
		}
		for i := range plano {
			if err := repo.UpdateSessaoAgenda(ctx, tx, &plano[i]); err != nil {
				return mapSlotErr(err, erroDaCausa(causas[i], atual, novo, flags))
			}
		}
		final = novo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// erroDaCausa traduz a causa do reposicionamento no erro de conflito certo.
// Irmã não reposicionada que colide foi atropelada por outra mudança; o
// culpado é o que as flags mandaram propagar.
func erroDaCausa(c Causa, atual, novo *repo.Sessao, flags Flags) error {
	switch c {
	case CausaFrequencia:
		return ErrConflitoFrequenciaFutura
	case CausaData:
		return ErrConflitoDataFutura
	case CausaHorario:
		return ErrConflitoHorarioFuturo
	}
	if flags.Frequencias && novo.Frequencia != atual.Frequencia {
		return ErrConflitoFrequenciaFutura
	}
	if flags.DataHorario && !mesmaData(novo.Data, atual.Data) {
		return ErrConflitoDataFutura
	}
	return ErrConflitoHorarioFuturo
}

// mapSlotErr converte a violação de unicidade do banco (corrida perdida para
// outro escritor) no erro de conflito do chamador.
func mapSlotErr(err, conflito error) error {
	if errors.Is(err, repo.ErrSlotOcupado) {
		return conflito
	}
	return err
}

// ExcluirSessao remove a sessão. Com apagarFuturas, remove também todas as
// ocorrências futuras da mesma cadeia (data >= data do alvo). Devolve
// quantas linhas caíram.
func ExcluirSessao(ctx context.Context, db *gorm.DB, id int64, apagarFuturas bool) (int64, error) {
	var removidas int64
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := repo.SessaoByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if apagarFuturas && s.RepeticaoID != nil {
			removidas, err = repo.DeleteSessoesDaCadeiaAPartirDe(ctx, tx, *s.RepeticaoID, s.Data)
			return err
		}
		if err := repo.DeleteSessao(ctx, tx, id); err != nil {
			return err
		}
		removidas = 1
		return nil
	})
	return removidas, err
}
