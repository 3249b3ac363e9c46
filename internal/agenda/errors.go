package agenda

import "errors"

// Erros de conflito devolvidos pelo motor da agenda. As mensagens vão
// literalmente no corpo {"erro": ...} e o front as compara por igualdade,
// então o texto não pode mudar.
var (
	ErrConflitoHorario = errors.New("Já existe uma sessão cadastrada para esse horário")

	ErrConflitoFrequenciaFutura = errors.New("Com a frequência selecionada vai haver conflitos de horário no futuro, selecione outra frequência e/ou horário")

	ErrConflitoDataFutura = errors.New("Com a nova data haverá conflitos de sessões futuras. Altere a data ou desmarque a atualização em cadeia.")

	ErrConflitoHorarioFuturo = errors.New("Com o novo horário haverá conflitos de sessões futuras. Altere o horário ou desmarque a atualização em cadeia.")

	ErrValorNegativo = errors.New("Valor não pode ser negativo")

	ErrFrequenciaInvalida = errors.New("Frequência inválida")
)

// EhConflito diz se o erro é um conflito de agenda (responde 409).
func EhConflito(err error) bool {
	return errors.Is(err, ErrConflitoHorario) ||
		errors.Is(err, ErrConflitoFrequenciaFutura) ||
		errors.Is(err, ErrConflitoDataFutura) ||
		errors.Is(err, ErrConflitoHorarioFuturo)
}
