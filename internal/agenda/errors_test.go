package agenda

import "testing"

// O front compara estas mensagens por igualdade estrita na criação e por
// substring na atualização; qualquer caractere a mais (até pontuação final)
// quebra o tratamento do conflito na tela.
func TestMensagensDeConflitoLiterais(t *testing.T) {
	casos := map[error]string{
		ErrConflitoHorario:          "Já existe uma sessão cadastrada para esse horário",
		ErrConflitoFrequenciaFutura: "Com a frequência selecionada vai haver conflitos de horário no futuro, selecione outra frequência e/ou horário",
		ErrConflitoDataFutura:       "Com a nova data haverá conflitos de sessões futuras. Altere a data ou desmarque a atualização em cadeia.",
		ErrConflitoHorarioFuturo:    "Com o novo horário haverá conflitos de sessões futuras. Altere o horário ou desmarque a atualização em cadeia.",
	}
	for err, want := range casos {
		if err.Error() != want {
			t.Errorf("mensagem = %q, esperava %q", err.Error(), want)
		}
	}
}
